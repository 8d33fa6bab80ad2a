package accounts

import (
	"context"

	"github.com/dmitrijs2005/seekauth/internal/server/models"
)

// Repository persists accounts. Implementations translate sql.ErrNoRows and
// zero-row updates into common.ErrorNotFound, and a conditional bind that
// matched nothing into common.ErrorStale.
type Repository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByUserName(ctx context.Context, userName string) (*models.Account, error)
	GetByMachineID(ctx context.Context, machineID string) (*models.Account, error)
	UpdatePassword(ctx context.Context, userName string, passwordHash string) error
	BindMachine(ctx context.Context, userName, passwordHash, machineID string) error
	Delete(ctx context.Context, userName string) error
}
