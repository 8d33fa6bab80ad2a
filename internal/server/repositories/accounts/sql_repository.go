package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/seekauth/internal/common"
	"github.com/dmitrijs2005/seekauth/internal/dbx"
	"github.com/dmitrijs2005/seekauth/internal/server/models"
)

// SQLRepository implements Repository on database/sql. The queries are
// written with '?' placeholders and rewritten to $N for postgres.
type SQLRepository struct {
	db       dbx.DBTX
	numbered bool
}

func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, numbered: true}
}

func (r *SQLRepository) q(query string) string {
	if !r.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func (r *SQLRepository) Create(ctx context.Context, account *models.Account) error {
	query :=
		`INSERT INTO accounts (username, password_hash)
		 VALUES (?, ?)`

	_, err := r.db.ExecContext(ctx, r.q(query), account.UserName, account.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) GetByUserName(ctx context.Context, userName string) (*models.Account, error) {
	query :=
		`SELECT username, password_hash, machine_id FROM accounts
		 WHERE username = ?`

	return r.getOne(ctx, query, userName)
}

func (r *SQLRepository) GetByMachineID(ctx context.Context, machineID string) (*models.Account, error) {
	query :=
		`SELECT username, password_hash, machine_id FROM accounts
		 WHERE machine_id = ?`

	return r.getOne(ctx, query, machineID)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg string) (*models.Account, error) {
	var (
		account   models.Account
		machineID sql.NullString
	)
	err := r.db.QueryRowContext(ctx, r.q(query), arg).Scan(&account.UserName, &account.PasswordHash, &machineID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	account.MachineID = machineID.String
	return &account, nil
}

func (r *SQLRepository) UpdatePassword(ctx context.Context, userName string, passwordHash string) error {
	query :=
		`UPDATE accounts SET password_hash = ?
		 WHERE username = ?`

	return r.execOne(ctx, common.ErrorNotFound, query, passwordHash, userName)
}

// BindMachine sets machine_id only while the row is unbound and still holds
// passwordHash. Zero affected rows yields common.ErrorStale; callers check
// existence beforehand. A machine id held by another row yields
// common.ErrorMachineTaken.
func (r *SQLRepository) BindMachine(ctx context.Context, userName, passwordHash, machineID string) error {
	query :=
		`UPDATE accounts SET machine_id = ?
		 WHERE username = ? AND password_hash = ? AND machine_id IS NULL`

	err := r.execOne(ctx, common.ErrorStale, query, machineID, userName, passwordHash)
	if err != nil && isUniqueViolation(err) {
		return common.ErrorMachineTaken
	}
	return err
}

func (r *SQLRepository) Delete(ctx context.Context, userName string) error {
	query := `DELETE FROM accounts WHERE username = ?`

	return r.execOne(ctx, common.ErrorNotFound, query, userName)
}

func (r *SQLRepository) execOne(ctx context.Context, noRows error, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, r.q(query), args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return noRows
	}
	return nil
}
