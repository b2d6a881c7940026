package bookingsvc_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/Kashh99/closet-backend/model"
	bookingrepo "github.com/Kashh99/closet-backend/repository/booking"
	listingrepo "github.com/Kashh99/closet-backend/repository/listing"
	bookingsvc "github.com/Kashh99/closet-backend/service/booking"
	"github.com/Kashh99/closet-backend/util/fault"
)

type bookingRepoMock struct {
	createFn           func(ctx context.Context, b *model.Booking) error
	byIDFn             func(ctx context.Context, id int64) (*model.Booking, error)
	listForUserFn      func(ctx context.Context, userID int64, role bookingrepo.Role) ([]model.Booking, error)
	updateStatusFn     func(ctx context.Context, id int64, status model.BookingStatus) error
	setPaymentIntentFn func(ctx context.Context, id int64, intentID string, status model.PaymentStatus) error
	setPaymentStatusFn func(ctx context.Context, id int64, status model.PaymentStatus) error
}

var _ bookingrepo.Repo = (*bookingRepoMock)(nil)

func (m *bookingRepoMock) Create(ctx context.Context, b *model.Booking) error {
	if m.createFn == nil {
		b.ID = 1
		return nil
	}
	return m.createFn(ctx, b)
}
func (m *bookingRepoMock) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	return m.byIDFn(ctx, id)
}
func (m *bookingRepoMock) ListForUser(ctx context.Context, userID int64, role bookingrepo.Role) ([]model.Booking, error) {
	return m.listForUserFn(ctx, userID, role)
}
func (m *bookingRepoMock) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	if m.updateStatusFn == nil {
		return nil
	}
	return m.updateStatusFn(ctx, id, status)
}
func (m *bookingRepoMock) SetPaymentIntent(ctx context.Context, id int64, intentID string, status model.PaymentStatus) error {
	return m.setPaymentIntentFn(ctx, id, intentID, status)
}
func (m *bookingRepoMock) SetPaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	return m.setPaymentStatusFn(ctx, id, status)
}

type listingRepoMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.Listing, error)
}

var _ listingrepo.Repo = (*listingRepoMock)(nil)

func (m *listingRepoMock) Create(ctx context.Context, l *model.Listing) error { return nil }
func (m *listingRepoMock) ByID(ctx context.Context, id int64) (*model.Listing, error) {
	return m.byIDFn(ctx, id)
}
func (m *listingRepoMock) Update(ctx context.Context, l *model.Listing) error { return nil }
func (m *listingRepoMock) Delete(ctx context.Context, id int64) error         { return nil }
func (m *listingRepoMock) ListByOwner(ctx context.Context, ownerID int64) ([]model.Listing, error) {
	return nil, nil
}
func (m *listingRepoMock) ListActive(ctx context.Context, f listingrepo.Filter) ([]model.Listing, int64, error) {
	return nil, 0, nil
}

func activeListing() *model.Listing {
	return &model.Listing{ID: 10, OwnerID: 2, DailyPrice: 8, IsActive: true}
}

func TestCreate_BadDates(t *testing.T) {
	svc := bookingsvc.New(&bookingRepoMock{}, &listingRepoMock{})
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, model.CreateBookingReq{ListingID: 10, StartDate: "nope", EndDate: "2026-03-04"})
	require.Error(t, err)
	require.Equal(t, fault.Validation, fault.KindOf(err))

	_, err = svc.Create(ctx, 1, model.CreateBookingReq{ListingID: 10, StartDate: "2026-03-04", EndDate: "2026-03-04"})
	require.Error(t, err)
	require.Equal(t, fault.Validation, fault.KindOf(err))

	_, err = svc.Create(ctx, 1, model.CreateBookingReq{ListingID: 10, StartDate: "2026-03-05", EndDate: "2026-03-04"})
	require.Error(t, err)
	require.Equal(t, fault.Validation, fault.KindOf(err))
}

func TestCreate_ListingNotFound(t *testing.T) {
	lm := &listingRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Listing, error) {
		return nil, pgx.ErrNoRows
	}}
	svc := bookingsvc.New(&bookingRepoMock{}, lm)

	_, err := svc.Create(context.Background(), 1, model.CreateBookingReq{
		ListingID: 10, StartDate: "2026-03-01", EndDate: "2026-03-04",
	})
	require.Error(t, err)
	require.Equal(t, fault.NotFound, fault.KindOf(err))
}

func TestCreate_InactiveListing(t *testing.T) {
	lm := &listingRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Listing, error) {
		l := activeListing()
		l.IsActive = false
		return l, nil
	}}
	svc := bookingsvc.New(&bookingRepoMock{}, lm)

	_, err := svc.Create(context.Background(), 1, model.CreateBookingReq{
		ListingID: 10, StartDate: "2026-03-01", EndDate: "2026-03-04",
	})
	require.Error(t, err)
	require.Equal(t, fault.Conflict, fault.KindOf(err))
}

func TestCreate_OwnListing(t *testing.T) {
	lm := &listingRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Listing, error) {
		return activeListing(), nil
	}}
	svc := bookingsvc.New(&bookingRepoMock{}, lm)

	_, err := svc.Create(context.Background(), 2, model.CreateBookingReq{
		ListingID: 10, StartDate: "2026-03-01", EndDate: "2026-03-04",
	})
	require.Error(t, err)
	require.Equal(t, fault.Forbidden, fault.KindOf(err))
}

func TestCreate_PriceFromCeilingDays(t *testing.T) {
	lm := &listingRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Listing, error) {
		return activeListing(), nil
	}}
	var created *model.Booking
	bm := &bookingRepoMock{createFn: func(ctx context.Context, b *model.Booking) error {
		b.ID = 77
		created = b
		return nil
	}}
	svc := bookingsvc.New(bm, lm)

	// 2.5 days charges 3 days.
	b, err := svc.Create(context.Background(), 1, model.CreateBookingReq{
		ListingID: 10,
		StartDate: "2026-03-01T10:00:00Z",
		EndDate:   "2026-03-03T22:00:00Z",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, int64(77), b.ID)
	require.Equal(t, 3*8.0, b.TotalPrice)
	require.Equal(t, model.BookingRequested, b.Status)
	require.Equal(t, model.PaymentPending, b.PaymentStatus)
	require.Equal(t, int64(2), b.OwnerID)
	require.Equal(t, int64(1), b.RenterID)
}

func TestByID_PartyOnly(t *testing.T) {
	bm := &bookingRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
		return &model.Booking{ID: id, RenterID: 1, OwnerID: 2}, nil
	}}
	svc := bookingsvc.New(bm, &listingRepoMock{})
	ctx := context.Background()

	_, err := svc.ByID(ctx, 1, 5)
	require.NoError(t, err)
	_, err = svc.ByID(ctx, 2, 5)
	require.NoError(t, err)
	_, err = svc.ByID(ctx, 3, 5)
	require.Error(t, err)
	require.Equal(t, fault.Forbidden, fault.KindOf(err))
}

func TestUpdateStatus_RoleGates(t *testing.T) {
	booking := func(status model.BookingStatus) *model.Booking {
		return &model.Booking{ID: 5, RenterID: 1, OwnerID: 2, Status: status}
	}

	cases := []struct {
		name     string
		actor    int64
		from     model.BookingStatus
		target   model.BookingStatus
		wantKind fault.Kind
	}{
		{"owner approves", 2, model.BookingRequested, model.BookingApproved, ""},
		{"owner rejects", 2, model.BookingRequested, model.BookingRejected, ""},
		{"renter cannot approve", 1, model.BookingRequested, model.BookingApproved, fault.Forbidden},
		{"renter cancels", 1, model.BookingRequested, model.BookingCancelled, ""},
		{"owner cannot cancel", 2, model.BookingRequested, model.BookingCancelled, fault.Forbidden},
		{"renter completes", 1, model.BookingApproved, model.BookingCompleted, ""},
		{"owner completes", 2, model.BookingApproved, model.BookingCompleted, ""},
		{"stranger completes", 3, model.BookingApproved, model.BookingCompleted, fault.Forbidden},
		{"cannot complete from requested", 1, model.BookingRequested, model.BookingCompleted, fault.Conflict},
		{"cannot cancel completed", 1, model.BookingCompleted, model.BookingCancelled, fault.Conflict},
		{"cannot approve rejected", 2, model.BookingRejected, model.BookingApproved, fault.Conflict},
		// Actor is checked before state: a stranger on a terminal booking
		// still gets forbidden, not conflict.
		{"stranger on terminal booking", 3, model.BookingCompleted, model.BookingCancelled, fault.Forbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var persisted model.BookingStatus
			bm := &bookingRepoMock{
				byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
					return booking(tc.from), nil
				},
				updateStatusFn: func(ctx context.Context, id int64, status model.BookingStatus) error {
					persisted = status
					return nil
				},
			}
			svc := bookingsvc.New(bm, &listingRepoMock{})

			b, err := svc.UpdateStatus(context.Background(), tc.actor, 5, tc.target)
			if tc.wantKind == "" {
				require.NoError(t, err)
				require.Equal(t, tc.target, b.Status)
				require.Equal(t, tc.target, persisted)
				return
			}
			require.Error(t, err)
			require.Equal(t, tc.wantKind, fault.KindOf(err))
			require.Equal(t, model.BookingStatus(""), persisted, "denied transition must not persist")
		})
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	bm := &bookingRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
		return nil, pgx.ErrNoRows
	}}
	svc := bookingsvc.New(bm, &listingRepoMock{})

	_, err := svc.UpdateStatus(context.Background(), 1, 404, model.BookingCancelled)
	require.Error(t, err)
	require.Equal(t, fault.NotFound, fault.KindOf(err))
}
