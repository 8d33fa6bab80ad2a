// Package store is the credential store: accounts keyed by username, each
// with a password hash and at most one bound machine id.
//
// Mutations run in a transaction and return only after commit. Reads share
// a RWMutex with writes so a lookup never observes a half-applied binding.
// Per-username locks serialise admin operations against in-flight
// evaluations of the same account; see LockUser.
package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/seekauth/internal/common"
	"github.com/dmitrijs2005/seekauth/internal/cryptox"
	"github.com/dmitrijs2005/seekauth/internal/dbx"
	"github.com/dmitrijs2005/seekauth/internal/server/models"
	"github.com/dmitrijs2005/seekauth/internal/server/repositories/repomanager"
)

type Store struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      cryptox.PasswordHasher

	mu    sync.RWMutex
	users *userLocks

	decoyOnce sync.Once
	decoyHash string
}

func New(db *sql.DB, m repomanager.RepositoryManager, hasher cryptox.PasswordHasher) *Store {
	return &Store{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		users:       newUserLocks(),
	}
}

// LockUser blocks until no other evaluation or admin operation holds
// userName. The returned func releases it and is safe to call twice.
// Create, UpdatePassword and Delete take this lock themselves, so callers
// holding it must not invoke them for the same name.
func (s *Store) LockUser(userName string) (unlock func()) {
	return s.users.lock(userName)
}

// CheckPassword verifies password against the account's stored hash.
func (s *Store) CheckPassword(account *models.Account, password string) bool {
	return s.hasher.Check(password, account.PasswordHash)
}

// CheckDecoy burns the same hashing work as CheckPassword for callers that
// found no account, so response timing does not reveal unknown usernames.
func (s *Store) CheckDecoy(password string) {
	s.decoyOnce.Do(func() {
		s.decoyHash, _ = s.hasher.Hash(rand.Text())
	})
	s.hasher.Check(password, s.decoyHash)
}

// Create stores a new unbound account. It fails with common.ErrorAlreadyExists
// when userName is taken.
func (s *Store) Create(ctx context.Context, userName, password string) error {
	if userName == "" || password == "" {
		return fmt.Errorf("%w: username and password must be non-empty", common.ErrorValidation)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash error: %w", err)
	}

	defer s.LockUser(userName)()
	s.mu.Lock()
	defer s.mu.Unlock()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)
		_, err := repo.GetByUserName(ctx, userName)
		switch {
		case err == nil:
			return common.ErrorAlreadyExists
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}
		return repo.Create(ctx, &models.Account{UserName: userName, PasswordHash: hash})
	})
}

// UpdatePassword replaces the password hash, keeping any machine binding.
func (s *Store) UpdatePassword(ctx context.Context, userName, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password must be non-empty", common.ErrorValidation)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash error: %w", err)
	}

	defer s.LockUser(userName)()
	s.mu.Lock()
	defer s.mu.Unlock()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Accounts(tx).UpdatePassword(ctx, userName, hash)
	})
}

// Delete removes the account and releases its machine id.
func (s *Store) Delete(ctx context.Context, userName string) error {
	defer s.LockUser(userName)()
	s.mu.Lock()
	defer s.mu.Unlock()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Accounts(tx).Delete(ctx, userName)
	})
}

// Lookup returns the account or common.ErrorNotFound.
func (s *Store) Lookup(ctx context.Context, userName string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.repomanager.Accounts(s.db).GetByUserName(ctx, userName)
}

// OwnerOf returns the account bound to machineID or common.ErrorNotFound.
func (s *Store) OwnerOf(ctx context.Context, machineID string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.repomanager.Accounts(s.db).GetByMachineID(ctx, machineID)
}

// BindMachine binds machineID to account, the state the caller verified the
// password against. The ownership check and the write happen under the store
// write lock in one transaction, and the write only applies while the stored
// row still carries the verified password hash and no binding, so a change
// made by another process in between is detected rather than overwritten.
//
// Errors: common.ErrorNotFound for a missing account, common.ErrorAlreadyBound
// when the account already has a binding, common.ErrorStale when the password
// changed since account was read, common.ErrorMachineTaken when another
// account owns machineID.
func (s *Store) BindMachine(ctx context.Context, account *models.Account, machineID string) error {
	if machineID == "" {
		return fmt.Errorf("%w: machine id must be non-empty", common.ErrorValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		current, err := repo.GetByUserName(ctx, account.UserName)
		if err != nil {
			return err
		}
		if current.Bound() {
			return common.ErrorAlreadyBound
		}
		if current.PasswordHash != account.PasswordHash {
			return common.ErrorStale
		}

		owner, err := repo.GetByMachineID(ctx, machineID)
		switch {
		case err == nil:
			if owner.UserName != account.UserName {
				return common.ErrorMachineTaken
			}
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		return repo.BindMachine(ctx, account.UserName, account.PasswordHash, machineID)
	})
}
