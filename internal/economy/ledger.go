package economy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/progression"
	"github.com/habitquest/habitquest-go/internal/repository"
)

// LedgerEntry is one requested balance change
type LedgerEntry struct {
	UserID    string
	Amount    int
	Reason    string
	Reference string
	At        time.Time
}

// ProcessGoldTransaction applies a signed gold change inside tx. The profile
// row is locked and the balance may never go below zero. A reference the user
// already recorded replays the stored row with applied=false, before any
// balance check.
func ProcessGoldTransaction(ctx context.Context, tx repository.ProgressionTx, entry LedgerEntry) (*domain.GoldTransaction, bool, error) {
	profile, err := tx.GetProfileForUpdate(ctx, entry.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, false, err
		}
		return nil, false, domain.NewStoreUnavailable(err, ErrMsgGetProfileFailed)
	}

	if prior, err := priorTransaction(ctx, tx, entry); err != nil || prior != nil {
		return prior, false, err
	}

	balance := profile.Gold + entry.Amount
	if balance < 0 {
		return nil, false, domain.NewInsufficientResource(domain.ErrInsufficientFunds,
			fmt.Sprintf(ErrMsgInsufficientFundsFmt, -entry.Amount, profile.Gold))
	}

	txn := &domain.GoldTransaction{
		UserID:       entry.UserID,
		Amount:       entry.Amount,
		Reason:       entry.Reason,
		Reference:    entry.Reference,
		BalanceAfter: balance,
		CreatedAt:    entry.At,
	}
	recorded, err := tx.RecordGoldTransaction(ctx, txn)
	if err != nil {
		return nil, false, domain.NewStoreUnavailable(err, ErrMsgRecordTransactionFailed)
	}
	if !recorded {
		// Lost an insert race on the reference; report what won
		prior, err := priorTransaction(ctx, tx, entry)
		if err == nil && prior == nil {
			err = domain.NewStoreUnavailable(domain.ErrLedgerRefNotFound, ErrMsgLookupReferenceFailed)
		}
		return prior, false, err
	}

	outcome := progression.Apply(profile.Progression(), domain.ProgressionDelta{Gold: entry.Amount})
	if err := tx.UpdateProgression(ctx, entry.UserID, outcome); err != nil {
		return nil, false, domain.NewStoreUnavailable(err, ErrMsgUpdateBalanceFailed)
	}
	return txn, true, nil
}

// priorTransaction returns the user's stored row for entry's reference, or nil
func priorTransaction(ctx context.Context, tx repository.ProgressionTx, entry LedgerEntry) (*domain.GoldTransaction, error) {
	prior, err := tx.GetGoldTransactionByReference(ctx, entry.UserID, entry.Reference)
	switch {
	case errors.Is(err, domain.ErrLedgerRefNotFound):
		return nil, nil
	case err != nil:
		return nil, domain.NewStoreUnavailable(err, ErrMsgLookupReferenceFailed)
	}
	return prior, nil
}
