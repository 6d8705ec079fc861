package economy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/event"
	"github.com/habitquest/habitquest-go/internal/logger"
	"github.com/habitquest/habitquest-go/internal/repository"
)

// Service defines the interface for gold operations
type Service interface {
	Spend(ctx context.Context, userID string, amount int, reference string) (*domain.GoldTransaction, error)
	Grant(ctx context.Context, userID string, amount int, reason, reference string) (*domain.GoldTransaction, error)
	History(ctx context.Context, userID string, limit int) ([]domain.GoldTransaction, error)
}

type service struct {
	repo      repository.Profile
	publisher event.Publisher
	now       func() time.Time
}

// NewService creates a new economy service
func NewService(repo repository.Profile, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// Spend debits gold. A repeated reference returns the original result without charging again.
func (s *service) Spend(ctx context.Context, userID string, amount int, reference string) (*domain.GoldTransaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	txn, applied, err := s.process(ctx, LedgerEntry{
		UserID:    userID,
		Amount:    -amount,
		Reason:    domain.GoldReasonSpend,
		Reference: referenceOrNew(reference),
		At:        s.now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			logger.FromContext(ctx).Info(LogMsgSpendRejected, "user_id", userID, "amount", amount)
		}
		return nil, err
	}

	if applied {
		logger.FromContext(ctx).Info(LogMsgGoldSpent, "user_id", userID, "amount", amount, "balance", txn.BalanceAfter)
	}
	return txn, nil
}

// Grant credits gold for an administrative or purchase reason
func (s *service) Grant(ctx context.Context, userID string, amount int, reason, reference string) (*domain.GoldTransaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if reason == "" {
		reason = domain.GoldReasonGrant
	}

	txn, applied, err := s.process(ctx, LedgerEntry{
		UserID:    userID,
		Amount:    amount,
		Reason:    reason,
		Reference: referenceOrNew(reference),
		At:        s.now(),
	})
	if err != nil {
		return nil, err
	}

	if applied {
		logger.FromContext(ctx).Info(LogMsgGoldGranted, "user_id", userID, "amount", amount, "reason", reason)
	}
	return txn, nil
}

func (s *service) History(ctx context.Context, userID string, limit int) ([]domain.GoldTransaction, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		logger.FromContext(ctx).Debug(LogMsgHistoryLimitClamp, "requested", limit, "max", MaxHistoryLimit)
		limit = MaxHistoryLimit
	}

	txns, err := s.repo.ListGoldTransactions(ctx, userID, limit)
	if err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgListTransactionsFailed)
	}
	return txns, nil
}

func (s *service) process(ctx context.Context, entry LedgerEntry) (*domain.GoldTransaction, bool, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, false, domain.NewStoreUnavailable(err, ErrMsgBeginTransactionFailed)
	}
	defer repository.SafeRollback(ctx, tx)

	txn, applied, err := ProcessGoldTransaction(ctx, tx, entry)
	if err != nil {
		return nil, false, err
	}
	if !applied {
		logger.FromContext(ctx).Info(LogMsgDuplicateRef, "user_id", entry.UserID, "reference", entry.Reference)
		return txn, false, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, domain.NewStoreUnavailable(err, ErrMsgCommitTransactionFailed)
	}
	s.publisher.PublishWithRetry(ctx, event.NewGoldChangedEvent(txn))
	return txn, true, nil
}

// validateAmount validates a spend or grant amount
func validateAmount(amount int) error {
	if amount <= 0 {
		return domain.NewValidationFailure(domain.ErrInvalidInput, fmt.Sprintf(ErrMsgInvalidAmountFmt, amount))
	}
	if amount > MaxTransactionAmount {
		return domain.NewValidationFailure(domain.ErrInvalidInput, fmt.Sprintf(ErrMsgAmountExceedsMaxFmt, amount, MaxTransactionAmount))
	}
	return nil
}

func referenceOrNew(ref string) string {
	if ref != "" {
		return ref
	}
	return uuid.NewString()
}
