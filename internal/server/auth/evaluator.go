// Package auth decides whether a (username, password, machine id) triple is
// authorised, binding the machine id to the account on its first successful
// use.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/seekauth/internal/common"
	"github.com/dmitrijs2005/seekauth/internal/logging"
	"github.com/dmitrijs2005/seekauth/internal/server/metrics"
	"github.com/dmitrijs2005/seekauth/internal/server/models"
)

// Internal denial reasons. They are logged, never returned to the caller.
const (
	ReasonUnknownUser     = "unknown_user"
	ReasonBadPassword     = "bad_password"
	ReasonMachineMismatch = "machine_mismatch"
	ReasonMachineTaken    = "machine_taken"
	ReasonAccountChanged  = "account_changed"
)

// CredentialStore is the part of the credential store the evaluator needs.
type CredentialStore interface {
	LockUser(userName string) (unlock func())
	Lookup(ctx context.Context, userName string) (*models.Account, error)
	CheckPassword(account *models.Account, password string) bool
	CheckDecoy(password string)
	BindMachine(ctx context.Context, account *models.Account, machineID string) error
}

type Evaluator struct {
	store   CredentialStore
	log     logging.Logger
	metrics *metrics.Metrics
}

// NewEvaluator builds an Evaluator; m may be nil.
func NewEvaluator(s CredentialStore, log logging.Logger, m *metrics.Metrics) *Evaluator {
	return &Evaluator{store: s, log: log.With("module", "auth"), metrics: m}
}

// Evaluate returns Allowed or Denied. A non-nil error means no verdict was
// reached: common.ErrorRequestFormat for invalid input, common.ErrorInternal
// for store failures and broken invariants. The evaluation holds the
// account's user lock throughout, so admin changes made through this store
// wait for it. Changes made by another process between the password check
// and the binding make the binding fail and the check is denied.
func (e *Evaluator) Evaluate(ctx context.Context, c Credentials) (Verdict, error) {
	start := time.Now()

	v, err := e.evaluate(ctx, c)

	outcome := v.String()
	switch {
	case errors.Is(err, common.ErrorRequestFormat):
		outcome = metrics.OutcomeBadRequest
	case err != nil:
		outcome = metrics.OutcomeError
	}
	e.metrics.ObserveCheck(outcome, time.Since(start))

	return v, err
}

func (e *Evaluator) evaluate(ctx context.Context, c Credentials) (Verdict, error) {
	if err := c.Validate(); err != nil {
		return Denied, err
	}

	unlock := e.store.LockUser(c.UserName)
	defer unlock()

	account, err := e.store.Lookup(ctx, c.UserName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			e.store.CheckDecoy(c.Password)
			return e.deny(ctx, c, ReasonUnknownUser), nil
		}
		e.log.Error(ctx, "account lookup failed", "username", c.UserName, "error", err)
		return Denied, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if !e.store.CheckPassword(account, c.Password) {
		return e.deny(ctx, c, ReasonBadPassword), nil
	}

	if account.Bound() {
		if account.MachineID != c.MachineID {
			return e.deny(ctx, c, ReasonMachineMismatch), nil
		}
		e.log.Debug(ctx, "check allowed", "username", c.UserName)
		return Allowed, nil
	}

	err = e.store.BindMachine(ctx, account, c.MachineID)
	switch {
	case err == nil:
		e.metrics.IncBindings()
		e.log.Info(ctx, "machine bound", "username", c.UserName, "machine_id", c.MachineID)
		return Allowed, nil
	case errors.Is(err, common.ErrorMachineTaken):
		return e.deny(ctx, c, ReasonMachineTaken), nil
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorStale):
		// Deleted or given a new password by another process after the
		// password was checked.
		return e.deny(ctx, c, ReasonAccountChanged), nil
	case errors.Is(err, common.ErrorAlreadyBound):
		e.log.Error(ctx, "invariant violation: account bound during evaluation", "username", c.UserName)
		return Denied, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	default:
		e.log.Error(ctx, "machine binding failed", "username", c.UserName, "error", err)
		return Denied, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
}

func (e *Evaluator) deny(ctx context.Context, c Credentials, reason string) Verdict {
	e.log.Info(ctx, "check denied", "username", c.UserName, "machine_id", c.MachineID, "reason", reason)
	return Denied
}
