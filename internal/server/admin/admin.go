// Package admin manages account lifecycle outside the request path: adding
// users, changing passwords and deleting users. Machine bindings are never
// touched here except that deleting an account releases its binding.
package admin

import (
	"context"

	"github.com/dmitrijs2005/seekauth/internal/logging"
	"github.com/dmitrijs2005/seekauth/internal/server/models"
)

// AccountStore is the mutating half of the credential store.
type AccountStore interface {
	Create(ctx context.Context, userName, password string) error
	UpdatePassword(ctx context.Context, userName, password string) error
	Delete(ctx context.Context, userName string) error
	OwnerOf(ctx context.Context, machineID string) (*models.Account, error)
}

type Service struct {
	store AccountStore
	log   logging.Logger
}

func NewService(s AccountStore, log logging.Logger) *Service {
	return &Service{store: s, log: log.With("module", "admin")}
}

// AddUser creates an unbound account. Store errors are returned unchanged.
func (s *Service) AddUser(ctx context.Context, userName, password string) error {
	if err := s.store.Create(ctx, userName, password); err != nil {
		s.log.Warn(ctx, "add user failed", "username", userName, "error", err)
		return err
	}
	s.log.Info(ctx, "user added", "username", userName)
	return nil
}

func (s *Service) UpdatePassword(ctx context.Context, userName, password string) error {
	if err := s.store.UpdatePassword(ctx, userName, password); err != nil {
		s.log.Warn(ctx, "update password failed", "username", userName, "error", err)
		return err
	}
	s.log.Info(ctx, "password updated", "username", userName)
	return nil
}

func (s *Service) DeleteUser(ctx context.Context, userName string) error {
	if err := s.store.Delete(ctx, userName); err != nil {
		s.log.Warn(ctx, "delete user failed", "username", userName, "error", err)
		return err
	}
	s.log.Info(ctx, "user deleted", "username", userName)
	return nil
}

// OwnerOf returns the username bound to machineID.
func (s *Service) OwnerOf(ctx context.Context, machineID string) (string, error) {
	a, err := s.store.OwnerOf(ctx, machineID)
	if err != nil {
		return "", err
	}
	return a.UserName, nil
}
