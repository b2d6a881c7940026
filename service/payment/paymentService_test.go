package paymentsvc_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/Kashh99/closet-backend/model"
	bookingrepo "github.com/Kashh99/closet-backend/repository/booking"
	striperepo "github.com/Kashh99/closet-backend/repository/stripe"
	paymentsvc "github.com/Kashh99/closet-backend/service/payment"
	"github.com/Kashh99/closet-backend/util/fault"
)

type bookingRepoMock struct {
	byIDFn             func(ctx context.Context, id int64) (*model.Booking, error)
	setPaymentIntentFn func(ctx context.Context, id int64, intentID string, status model.PaymentStatus) error
	setPaymentStatusFn func(ctx context.Context, id int64, status model.PaymentStatus) error
}

var _ bookingrepo.Repo = (*bookingRepoMock)(nil)

func (m *bookingRepoMock) Create(ctx context.Context, b *model.Booking) error { return nil }
func (m *bookingRepoMock) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	return m.byIDFn(ctx, id)
}
func (m *bookingRepoMock) ListForUser(ctx context.Context, userID int64, role bookingrepo.Role) ([]model.Booking, error) {
	return nil, nil
}
func (m *bookingRepoMock) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	return errors.New("unexpected rental-status write")
}
func (m *bookingRepoMock) SetPaymentIntent(ctx context.Context, id int64, intentID string, status model.PaymentStatus) error {
	if m.setPaymentIntentFn == nil {
		return nil
	}
	return m.setPaymentIntentFn(ctx, id, intentID, status)
}
func (m *bookingRepoMock) SetPaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	if m.setPaymentStatusFn == nil {
		return errors.New("unexpected payment-status write")
	}
	return m.setPaymentStatusFn(ctx, id, status)
}

type stripeMock struct {
	createFn func(ctx context.Context, req striperepo.CreateIntentReq) (*striperepo.CreateIntentResp, error)
	verifyFn func(sigHeader string, rawBody []byte) error
}

var _ striperepo.Repo = (*stripeMock)(nil)

func (m *stripeMock) CreatePaymentIntent(ctx context.Context, req striperepo.CreateIntentReq) (*striperepo.CreateIntentResp, error) {
	return m.createFn(ctx, req)
}
func (m *stripeMock) VerifyWebhookSignature(sigHeader string, rawBody []byte) error {
	if m.verifyFn == nil {
		return nil
	}
	return m.verifyFn(sigHeader, rawBody)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pendingBooking() *model.Booking {
	return &model.Booking{
		ID: 5, RenterID: 1, OwnerID: 2,
		TotalPrice:    24.5,
		Status:        model.BookingApproved,
		PaymentStatus: model.PaymentPending,
	}
}

func TestCreateIntent_NotFound(t *testing.T) {
	bm := &bookingRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
		return nil, pgx.ErrNoRows
	}}
	svc := paymentsvc.New(bm, &stripeMock{}, "usd", testLogger())

	_, err := svc.CreateIntent(context.Background(), 1, 404)
	require.Error(t, err)
	require.Equal(t, fault.NotFound, fault.KindOf(err))
}

func TestCreateIntent_RenterOnly(t *testing.T) {
	bm := &bookingRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
		return pendingBooking(), nil
	}}
	svc := paymentsvc.New(bm, &stripeMock{}, "usd", testLogger())

	// Not even the owner may pay.
	_, err := svc.CreateIntent(context.Background(), 2, 5)
	require.Error(t, err)
	require.Equal(t, fault.Forbidden, fault.KindOf(err))
}

func TestCreateIntent_AlreadyPaid(t *testing.T) {
	bm := &bookingRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
		b := pendingBooking()
		b.PaymentStatus = model.PaymentPaid
		return b, nil
	}}
	svc := paymentsvc.New(bm, &stripeMock{}, "usd", testLogger())

	_, err := svc.CreateIntent(context.Background(), 1, 5)
	require.Error(t, err)
	require.Equal(t, fault.Conflict, fault.KindOf(err))
}

func TestCreateIntent_Success(t *testing.T) {
	var stored string
	bm := &bookingRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return pendingBooking(), nil
		},
		setPaymentIntentFn: func(ctx context.Context, id int64, intentID string, status model.PaymentStatus) error {
			stored = intentID
			require.Equal(t, model.PaymentPending, status)
			return nil
		},
	}
	sm := &stripeMock{createFn: func(ctx context.Context, req striperepo.CreateIntentReq) (*striperepo.CreateIntentResp, error) {
		// 24.50 -> 2450 cents
		require.Equal(t, int64(2450), req.AmountMinor)
		require.Equal(t, "usd", req.Currency)
		require.Equal(t, int64(5), req.BookingID)
		require.Equal(t, int64(1), req.UserID)
		return &striperepo.CreateIntentResp{IntentID: "pi_123", ClientSecret: "pi_123_secret"}, nil
	}}
	svc := paymentsvc.New(bm, sm, "usd", testLogger())

	out, err := svc.CreateIntent(context.Background(), 1, 5)
	require.NoError(t, err)
	require.Equal(t, "pi_123", out.IntentID)
	require.Equal(t, "pi_123_secret", out.ClientSecret)
	require.Equal(t, "pi_123", stored)
}

func TestCreateIntent_ProviderDown(t *testing.T) {
	bm := &bookingRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
		return pendingBooking(), nil
	}}
	sm := &stripeMock{createFn: func(ctx context.Context, req striperepo.CreateIntentReq) (*striperepo.CreateIntentResp, error) {
		return nil, errors.New("connection refused")
	}}
	svc := paymentsvc.New(bm, sm, "usd", testLogger())

	_, err := svc.CreateIntent(context.Background(), 1, 5)
	require.Error(t, err)
	require.Equal(t, fault.Upstream, fault.KindOf(err))
}

func TestStatus_PartyOnly(t *testing.T) {
	bm := &bookingRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
		b := pendingBooking()
		b.PaymentIntentID = "pi_123"
		return b, nil
	}}
	svc := paymentsvc.New(bm, &stripeMock{}, "usd", testLogger())
	ctx := context.Background()

	st, err := svc.Status(ctx, 1, 5)
	require.NoError(t, err)
	require.Equal(t, model.PaymentPending, st.PaymentStatus)
	require.Equal(t, "pi_123", st.IntentID)

	_, err = svc.Status(ctx, 2, 5)
	require.NoError(t, err)

	_, err = svc.Status(ctx, 3, 5)
	require.Error(t, err)
	require.Equal(t, fault.Forbidden, fault.KindOf(err))
}

const succeededEvent = `{
	"type": "payment_intent.succeeded",
	"data": {"object": {"id": "pi_123", "metadata": {"bookingId": "5"}}}
}`

func TestWebhook_BadSignatureMutatesNothing(t *testing.T) {
	touched := false
	bm := &bookingRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			touched = true
			return pendingBooking(), nil
		},
		setPaymentStatusFn: func(ctx context.Context, id int64, status model.PaymentStatus) error {
			touched = true
			return nil
		},
	}
	sm := &stripeMock{verifyFn: func(sigHeader string, rawBody []byte) error {
		return errors.New("no matching webhook signature")
	}}
	svc := paymentsvc.New(bm, sm, "usd", testLogger())

	err := svc.HandleWebhook(context.Background(), "t=1,v1=bad", []byte(succeededEvent))
	require.Error(t, err)
	require.Equal(t, fault.Upstream, fault.KindOf(err))
	require.False(t, touched, "unverified event must not touch storage")
}

func TestWebhook_SucceededSetsPaid(t *testing.T) {
	var set model.PaymentStatus
	bm := &bookingRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return pendingBooking(), nil
		},
		setPaymentStatusFn: func(ctx context.Context, id int64, status model.PaymentStatus) error {
			require.Equal(t, int64(5), id)
			set = status
			return nil
		},
	}
	svc := paymentsvc.New(bm, &stripeMock{}, "usd", testLogger())

	err := svc.HandleWebhook(context.Background(), "t=1,v1=ok", []byte(succeededEvent))
	require.NoError(t, err)
	require.Equal(t, model.PaymentPaid, set)
}

func TestWebhook_SucceededReplayIsIdempotent(t *testing.T) {
	writes := 0
	bm := &bookingRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			b := pendingBooking()
			b.PaymentStatus = model.PaymentPaid
			return b, nil
		},
		setPaymentStatusFn: func(ctx context.Context, id int64, status model.PaymentStatus) error {
			writes++
			return nil
		},
	}
	svc := paymentsvc.New(bm, &stripeMock{}, "usd", testLogger())

	err := svc.HandleWebhook(context.Background(), "t=1,v1=ok", []byte(succeededEvent))
	require.NoError(t, err)
	require.Zero(t, writes, "replay of an applied event writes nothing")
}

func TestWebhook_FailedSetsFailed(t *testing.T) {
	var set model.PaymentStatus
	bm := &bookingRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return pendingBooking(), nil
		},
		setPaymentStatusFn: func(ctx context.Context, id int64, status model.PaymentStatus) error {
			set = status
			return nil
		},
	}
	svc := paymentsvc.New(bm, &stripeMock{}, "usd", testLogger())

	payload := `{"type":"payment_intent.payment_failed","data":{"object":{"id":"pi_1","metadata":{"bookingId":"5"}}}}`
	err := svc.HandleWebhook(context.Background(), "t=1,v1=ok", []byte(payload))
	require.NoError(t, err)
	require.Equal(t, model.PaymentFailed, set)
}

func TestWebhook_RefundRequiresPaid(t *testing.T) {
	payload := `{"type":"charge.refunded","data":{"object":{"id":"ch_1","metadata":{"bookingId":"5"}}}}`

	writes := 0
	bm := &bookingRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return pendingBooking(), nil
		},
		setPaymentStatusFn: func(ctx context.Context, id int64, status model.PaymentStatus) error {
			writes++
			return nil
		},
	}
	svc := paymentsvc.New(bm, &stripeMock{}, "usd", testLogger())

	err := svc.HandleWebhook(context.Background(), "t=1,v1=ok", []byte(payload))
	require.NoError(t, err)
	require.Zero(t, writes, "refund of an unpaid booking must be dropped")

	var set model.PaymentStatus
	bm.byIDFn = func(ctx context.Context, id int64) (*model.Booking, error) {
		b := pendingBooking()
		b.PaymentStatus = model.PaymentPaid
		return b, nil
	}
	bm.setPaymentStatusFn = func(ctx context.Context, id int64, status model.PaymentStatus) error {
		set = status
		return nil
	}
	err = svc.HandleWebhook(context.Background(), "t=1,v1=ok", []byte(payload))
	require.NoError(t, err)
	require.Equal(t, model.PaymentRefunded, set)
}

func TestWebhook_UnknownBookingDropped(t *testing.T) {
	bm := &bookingRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
		return nil, pgx.ErrNoRows
	}}
	svc := paymentsvc.New(bm, &stripeMock{}, "usd", testLogger())

	err := svc.HandleWebhook(context.Background(), "t=1,v1=ok", []byte(succeededEvent))
	require.NoError(t, err, "unknown bookings are logged and acknowledged")
}

func TestWebhook_UnhandledTypeIgnored(t *testing.T) {
	svc := paymentsvc.New(&bookingRepoMock{}, &stripeMock{}, "usd", testLogger())

	payload := `{"type":"customer.created","data":{"object":{"id":"cus_1","metadata":{}}}}`
	err := svc.HandleWebhook(context.Background(), "t=1,v1=ok", []byte(payload))
	require.NoError(t, err)
}

func TestWebhook_MalformedPayload(t *testing.T) {
	svc := paymentsvc.New(&bookingRepoMock{}, &stripeMock{}, "usd", testLogger())

	err := svc.HandleWebhook(context.Background(), "t=1,v1=ok", []byte("{not json"))
	require.Error(t, err)
	require.Equal(t, fault.Validation, fault.KindOf(err))
}
