package auth

import (
	"fmt"

	"github.com/dmitrijs2005/seekauth/internal/common"
)

// Credentials is the triple presented by a client.
type Credentials struct {
	UserName  string
	Password  string
	MachineID string
}

// Validate reports a common.ErrorRequestFormat for any empty field.
func (c Credentials) Validate() error {
	switch {
	case c.UserName == "":
		return fmt.Errorf("%w: missing %s", common.ErrorRequestFormat, common.KeyUsername)
	case c.Password == "":
		return fmt.Errorf("%w: missing %s", common.ErrorRequestFormat, common.KeyPassword)
	case c.MachineID == "":
		return fmt.Errorf("%w: missing %s", common.ErrorRequestFormat, common.KeyMachineID)
	}
	return nil
}

// Verdict is the outcome of an evaluation.
type Verdict int

const (
	Denied Verdict = iota
	Allowed
)

func (v Verdict) String() string {
	if v == Allowed {
		return "allowed"
	}
	return "denied"
}
