package admin

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/seekauth/internal/common"
	"github.com/dmitrijs2005/seekauth/internal/inputx"
)

// Exit codes of the admin CLI.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Verbs understood by Run.
const (
	VerbAddUser    = "add_user"
	VerbUpdatePw   = "update_pw"
	VerbDeleteUser = "delete_user"
	VerbOwnerOf    = "owner_of"
)

const usage = `usage:
  admin [flags] add_user <username> [password]
  admin [flags] update_pw <username> [new_password]
  admin [flags] delete_user <username>
  admin [flags] owner_of <machine_id>

A password left off the command line is read from stdin.`

// Run executes one verb. args are the positional arguments (verb first).
func Run(ctx context.Context, svc *Service, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return ExitUsage
	}

	verb, rest := args[0], args[1:]

	var err error
	switch verb {
	case VerbAddUser, VerbUpdatePw:
		if len(rest) < 1 || len(rest) > 2 {
			fmt.Fprintln(stderr, usage)
			return ExitUsage
		}
		userName := rest[0]
		var password string
		if len(rest) == 2 {
			password = rest[1]
		} else if password, err = readPassword(stdin, stderr); err != nil {
			fmt.Fprintf(stderr, "error reading password: %v\n", err)
			return ExitFailure
		}
		if verb == VerbAddUser {
			err = svc.AddUser(ctx, userName, password)
		} else {
			err = svc.UpdatePassword(ctx, userName, password)
		}
	case VerbDeleteUser:
		if len(rest) != 1 {
			fmt.Fprintln(stderr, usage)
			return ExitUsage
		}
		err = svc.DeleteUser(ctx, rest[0])
	case VerbOwnerOf:
		if len(rest) != 1 {
			fmt.Fprintln(stderr, usage)
			return ExitUsage
		}
		var owner string
		if owner, err = svc.OwnerOf(ctx, rest[0]); err == nil {
			fmt.Fprintln(stdout, owner)
			return ExitOK
		}
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s\n", verb, usage)
		return ExitUsage
	}

	if err != nil {
		fmt.Fprintf(stderr, "%s failed: %s\n", verb, describe(err))
		return ExitFailure
	}
	fmt.Fprintln(stdout, "OK")
	return ExitOK
}

func readPassword(stdin io.Reader, prompt io.Writer) (string, error) {
	r := inputx.NewReader(stdin, prompt)
	pw, err := r.Secret("Password: ")
	if err != nil {
		return "", err
	}
	if r.Interactive() {
		again, err := r.Secret("Repeat password: ")
		if err != nil {
			return "", err
		}
		if again != pw {
			return "", errors.New("passwords do not match")
		}
	}
	return pw, nil
}

func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		return "user already exists"
	case errors.Is(err, common.ErrorNotFound):
		return "not found"
	}
	return err.Error()
}
