package paymentsvc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/Kashh99/closet-backend/model"
	bookingrepo "github.com/Kashh99/closet-backend/repository/booking"
	striperepo "github.com/Kashh99/closet-backend/repository/stripe"
	"github.com/Kashh99/closet-backend/util/fault"
	"github.com/Kashh99/closet-backend/util/guard"
)

type IntentCreated struct {
	BookingID    int64  `json:"booking_id"`
	IntentID     string `json:"payment_intent_id"`
	ClientSecret string `json:"client_secret"`
}

type PaymentState struct {
	BookingID     int64               `json:"booking_id"`
	Status        model.BookingStatus `json:"status"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	IntentID      string              `json:"payment_intent_id,omitempty"`
}

type Service interface {
	CreateIntent(ctx context.Context, userID, bookingID int64) (*IntentCreated, error)
	Status(ctx context.Context, userID, bookingID int64) (*PaymentState, error)
	HandleWebhook(ctx context.Context, sigHeader string, raw []byte) error
}

type service struct {
	br       bookingrepo.Repo
	sp       striperepo.Repo
	currency string
	log      *slog.Logger
}

func New(br bookingrepo.Repo, sp striperepo.Repo, currency string, log *slog.Logger) Service {
	if currency == "" {
		currency = "usd"
	}
	return &service{br: br, sp: sp, currency: currency, log: log}
}

func (s *service) CreateIntent(ctx context.Context, userID, bookingID int64) (*IntentCreated, error) {
	b, err := s.br.ByID(ctx, bookingID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.New(fault.NotFound, "booking not found")
	}
	if err != nil {
		return nil, err
	}
	if err := guard.Owns(userID, b.RenterID, "only the renter can pay for a booking"); err != nil {
		return nil, err
	}
	if b.PaymentStatus == model.PaymentPaid {
		return nil, fault.New(fault.Conflict, "booking is already paid")
	}

	intent, err := s.sp.CreatePaymentIntent(ctx, striperepo.CreateIntentReq{
		AmountMinor: int64(math.Round(b.TotalPrice * 100)),
		Currency:    s.currency,
		BookingID:   b.ID,
		UserID:      userID,
	})
	if err != nil {
		return nil, fault.Wrap(fault.Upstream, "payment processor error", err)
	}

	if err := s.br.SetPaymentIntent(ctx, b.ID, intent.IntentID, model.PaymentPending); err != nil {
		return nil, err
	}

	return &IntentCreated{
		BookingID:    b.ID,
		IntentID:     intent.IntentID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (s *service) Status(ctx context.Context, userID, bookingID int64) (*PaymentState, error) {
	b, err := s.br.ByID(ctx, bookingID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.New(fault.NotFound, "booking not found")
	}
	if err != nil {
		return nil, err
	}
	if err := guard.Party(userID, "not authorized to access this booking", b.RenterID, b.OwnerID); err != nil {
		return nil, err
	}
	return &PaymentState{
		BookingID:     b.ID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		IntentID:      b.PaymentIntentID,
	}, nil
}

// webhookEvent is the slice of a Stripe event this service consumes.
type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string `json:"id"`
			Metadata struct {
				BookingID string `json:"bookingId"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// HandleWebhook reconciles booking payment state from a processor event.
// Signature verification runs before anything else: unverified events cause
// no reads and no writes. Reconciliation only assigns the payment-status
// field, so redelivered events are naturally idempotent, and the rental-axis
// status is never touched here.
func (s *service) HandleWebhook(ctx context.Context, sigHeader string, raw []byte) error {
	if err := s.sp.VerifyWebhookSignature(sigHeader, raw); err != nil {
		return fault.Wrap(fault.Upstream, "webhook signature verification failed", err)
	}

	var ev webhookEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return fault.Wrap(fault.Validation, "malformed webhook payload", err)
	}

	switch ev.Type {
	case "payment_intent.succeeded":
		return s.reconcile(ctx, ev, model.PaymentPaid)
	case "payment_intent.payment_failed":
		return s.reconcile(ctx, ev, model.PaymentFailed)
	case "charge.refunded":
		return s.reconcile(ctx, ev, model.PaymentRefunded)
	default:
		s.log.Info("ignoring webhook event", "type", ev.Type)
		return nil
	}
}

// reconcile locates the booking by metadata and assigns the payment status.
// Events that cannot be mapped to a booking are logged and dropped rather
// than surfaced as failures, so the processor does not retry them forever.
func (s *service) reconcile(ctx context.Context, ev webhookEvent, target model.PaymentStatus) error {
	bookingID, err := strconv.ParseInt(ev.Data.Object.Metadata.BookingID, 10, 64)
	if err != nil {
		s.log.Warn("webhook event without usable booking metadata",
			"type", ev.Type, "object_id", ev.Data.Object.ID)
		return nil
	}

	b, err := s.br.ByID(ctx, bookingID)
	if errors.Is(err, pgx.ErrNoRows) {
		s.log.Warn("webhook event for unknown booking",
			"type", ev.Type, "booking_id", bookingID)
		return nil
	}
	if err != nil {
		return err
	}

	// Refunds only apply to money actually captured.
	if target == model.PaymentRefunded && b.PaymentStatus != model.PaymentPaid {
		s.log.Warn("refund event for unpaid booking dropped",
			"booking_id", bookingID, "payment_status", b.PaymentStatus)
		return nil
	}

	if b.PaymentStatus == target {
		return nil
	}
	if err := s.br.SetPaymentStatus(ctx, bookingID, target); err != nil {
		return err
	}
	s.log.Info("booking payment status reconciled",
		"booking_id", bookingID, "payment_status", target, "event", ev.Type)
	return nil
}
