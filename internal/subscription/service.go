package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/economy"
	"github.com/habitquest/habitquest-go/internal/event"
	"github.com/habitquest/habitquest-go/internal/logger"
	"github.com/habitquest/habitquest-go/internal/repository"
)

// Service defines the interface for founder and purchase operations
type Service interface {
	ReserveFounderSpot(ctx context.Context, userID string) (*domain.FounderReservation, error)
	Availability(ctx context.Context) (domain.FounderAvailability, error)

	// HandleWebhook verifies and applies a payment provider event.
	// Events of other types return (nil, nil).
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*domain.Purchase, error)

	// ExpireReservations is called by the scheduler
	ExpireReservations(ctx context.Context) (int64, error)
}

// Config holds founder program settings
type Config struct {
	Slots          int
	ReservationTTL time.Duration
	WebhookSecret  string
}

type service struct {
	repo      repository.Founder
	publisher event.Publisher
	cfg       Config
	cache     *AvailabilityCache
	now       func() time.Time
}

// NewService creates a new subscription service
func NewService(repo repository.Founder, publisher event.Publisher, cfg Config) Service {
	if cfg.Slots <= 0 {
		cfg.Slots = DefaultFounderSlots
	}
	if cfg.ReservationTTL <= 0 {
		cfg.ReservationTTL = DefaultReservationTTL
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		cfg:       cfg,
		cache:     NewAvailabilityCache(AvailabilityCacheTTL),
		now:       time.Now,
	}
}

func (s *service) ReserveFounderSpot(ctx context.Context, userID string) (*domain.FounderReservation, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgBeginTxFailed)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.LockFounderSlots(ctx); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgLockFailed)
	}

	profile, err := tx.GetProfileForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, domain.NewStoreUnavailable(err, ErrMsgLoadProfileFailed)
	}
	if profile.IsFounder {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyFounder, userID)
	}

	existing, err := tx.GetActiveReservation(ctx, userID, now)
	switch {
	case err == nil:
		log.Info(LogMsgReservationReused, "user_id", userID, "reservation_id", existing.ID)
		return existing, nil
	case !errors.Is(err, domain.ErrReservationNotFound):
		return nil, domain.NewStoreUnavailable(err, ErrMsgCountFailed)
	}

	confirmed, reserved, err := tx.CountSlots(ctx, now)
	if err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgCountFailed)
	}
	if confirmed+reserved >= s.cfg.Slots {
		log.Info(LogMsgSoldOut, "user_id", userID, "confirmed", confirmed, "reserved", reserved)
		return nil, domain.NewInsufficientResource(domain.ErrFounderSoldOut, fmt.Sprintf(ErrMsgSoldOutFmt, s.cfg.Slots))
	}

	r := &domain.FounderReservation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    domain.ReservationPending,
		ExpiresAt: now.Add(s.cfg.ReservationTTL),
		CreatedAt: now,
	}
	if err := tx.CreateReservation(ctx, r); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgReserveFailed)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgCommitFailed)
	}
	s.cache.Invalidate()

	log.Info(LogMsgSpotReserved, "user_id", userID, "reservation_id", r.ID, "expires_at", r.ExpiresAt)
	return r, nil
}

func (s *service) Availability(ctx context.Context) (domain.FounderAvailability, error) {
	if a, ok := s.cache.Get(); ok {
		return a, nil
	}

	confirmed, reserved, err := s.repo.CountSlots(ctx, s.now())
	if err != nil {
		return domain.FounderAvailability{}, domain.NewStoreUnavailable(err, ErrMsgCountFailed)
	}

	a := domain.FounderAvailability{
		Total:     s.cfg.Slots,
		Confirmed: confirmed,
		Reserved:  reserved,
		Remaining: max(0, s.cfg.Slots-confirmed-reserved),
	}
	s.cache.Set(a)
	return a, nil
}

func (s *service) HandleWebhook(ctx context.Context, payload []byte, signature string) (*domain.Purchase, error) {
	log := logger.FromContext(ctx)

	evt, err := webhook.ConstructEventWithOptions(payload, signature, s.cfg.WebhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidWebhookSignature, err)
	}

	if string(evt.Type) != StripeCheckoutCompleted {
		log.Debug(LogMsgWebhookIgnored, "type", evt.Type, "event_id", evt.ID)
		return nil, nil
	}

	purchase, err := parsePurchase(evt)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgBeginTxFailed)
	}
	defer repository.SafeRollback(ctx, tx)

	first, err := tx.MarkWebhookProcessed(ctx, evt.ID, string(evt.Type))
	if err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgMarkWebhookFailed)
	}
	if !first {
		log.Info(LogMsgWebhookDuplicate, "event_id", evt.ID)
		return purchase, fmt.Errorf("%w: %s", domain.ErrWebhookAlreadyHandled, evt.ID)
	}

	switch purchase.Kind {
	case domain.PurchaseKindFounder:
		return s.applyFounder(ctx, tx, purchase)
	default:
		return s.applyGold(ctx, tx, purchase)
	}
}

func (s *service) applyFounder(ctx context.Context, tx repository.FounderTx, p *domain.Purchase) (*domain.Purchase, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	if err := tx.LockFounderSlots(ctx); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgLockFailed)
	}
	profile, err := tx.GetProfileForUpdate(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, domain.NewStoreUnavailable(err, ErrMsgLoadProfileFailed)
	}

	if profile.IsFounder {
		log.Warn(LogMsgAlreadyFounderPaid, "user_id", p.UserID, "event_id", p.EventID)
		if err := tx.Commit(ctx); err != nil {
			return nil, domain.NewStoreUnavailable(err, ErrMsgCommitFailed)
		}
		return p, nil
	}

	if p.ReservationID == "" {
		if r, err := tx.GetActiveReservation(ctx, p.UserID, now); err == nil {
			p.ReservationID = r.ID
		}
	}
	if p.ReservationID != "" {
		err := tx.ConfirmReservation(ctx, p.ReservationID, p.UserID, now)
		if err != nil && !errors.Is(err, domain.ErrReservationNotFound) {
			return nil, domain.NewStoreUnavailable(err, ErrMsgConfirmFailed)
		}
		if err != nil {
			// Payment already taken; the purchase is honored even if the hold lapsed
			log.Warn(LogMsgReservationMissing, "user_id", p.UserID, "reservation_id", p.ReservationID)
			p.ReservationID = ""
		}
	} else {
		log.Warn(LogMsgReservationMissing, "user_id", p.UserID)
	}

	if err := tx.SetFounder(ctx, p.UserID); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgConfirmFailed)
	}
	confirmed, reserved, err := tx.CountSlots(ctx, now)
	if err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgCountFailed)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgCommitFailed)
	}
	s.cache.Invalidate()

	remaining := max(0, s.cfg.Slots-confirmed-reserved)
	log.Info(LogMsgFounderConfirmed, "user_id", p.UserID, "remaining", remaining)
	s.publisher.PublishWithRetry(ctx, event.NewFounderClaimedEvent(p.UserID, profile.DisplayName, p.ReservationID, remaining))
	return p, nil
}

func (s *service) applyGold(ctx context.Context, tx repository.FounderTx, p *domain.Purchase) (*domain.Purchase, error) {
	txn, _, err := economy.ProcessGoldTransaction(ctx, tx, economy.LedgerEntry{
		UserID:    p.UserID,
		Amount:    p.GoldAmount,
		Reason:    domain.GoldReasonPurchase,
		Reference: GoldReferencePrefix + p.EventID,
		At:        s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgCommitFailed)
	}

	logger.FromContext(ctx).Info(LogMsgGoldPurchaseCredited, "user_id", p.UserID, "gold", p.GoldAmount, "balance", txn.BalanceAfter)
	s.publisher.PublishWithRetry(ctx, event.NewGoldPurchasedEvent(p.UserID, p.GoldAmount, txn.BalanceAfter))
	return p, nil
}

func (s *service) ExpireReservations(ctx context.Context) (int64, error) {
	n, err := s.repo.ExpireReservations(ctx, s.now())
	if err != nil {
		return 0, domain.NewStoreUnavailable(err, ErrMsgExpireFailed)
	}
	if n > 0 {
		s.cache.Invalidate()
		logger.FromContext(ctx).Info(LogMsgReservationsExpired, "count", n)
		s.publisher.PublishWithRetry(ctx, event.NewReservationsExpiredEvent(n))
	}
	return n, nil
}

// parsePurchase reads the checkout session metadata
func parsePurchase(evt stripe.Event) (*domain.Purchase, error) {
	var session stripe.CheckoutSession
	if evt.Data == nil {
		return nil, domain.NewValidationFailure(domain.ErrInvalidInput, fmt.Sprintf(ErrMsgDecodeSessionFmt, "no data"))
	}
	if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
		return nil, domain.NewValidationFailure(domain.ErrInvalidInput, fmt.Sprintf(ErrMsgDecodeSessionFmt, err))
	}

	p := &domain.Purchase{
		EventID:       evt.ID,
		Kind:          session.Metadata[MetadataKeyKind],
		UserID:        session.Metadata[MetadataKeyUserID],
		ReservationID: session.Metadata[MetadataKeyReservationID],
	}
	if p.UserID == "" {
		p.UserID = session.ClientReferenceID
	}
	if p.UserID == "" {
		return nil, domain.NewValidationFailure(domain.ErrInvalidInput, ErrMsgMissingUserID)
	}

	switch p.Kind {
	case domain.PurchaseKindFounder:
	case domain.PurchaseKindGold:
		raw := session.Metadata[MetadataKeyGoldAmount]
		amount, err := strconv.Atoi(raw)
		if err != nil || amount <= 0 || amount > economy.MaxTransactionAmount {
			return nil, domain.NewValidationFailure(domain.ErrInvalidInput, fmt.Sprintf(ErrMsgInvalidGoldAmount, raw))
		}
		p.GoldAmount = amount
	default:
		return nil, domain.NewValidationFailure(domain.ErrInvalidInput, fmt.Sprintf(ErrMsgUnknownKindFmt, p.Kind))
	}
	return p, nil
}
