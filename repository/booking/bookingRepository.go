package bookingrepo

import (
	"context"

	"github.com/Kashh99/closet-backend/model"
	"github.com/Kashh99/closet-backend/util/database"
)

// Role restricts booking listings to one side of the exchange.
type Role string

const (
	RoleRenter Role = "renter"
	RoleOwner  Role = "owner"
	RoleAny    Role = ""
)

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*model.Booking, error)
	ListForUser(ctx context.Context, userID int64, role Role) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error
	SetPaymentIntent(ctx context.Context, id int64, intentID string, status model.PaymentStatus) error
	SetPaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const bookingCols = `id, listing_id, renter_id, owner_id, start_date, end_date,
       total_price, status, payment_status, COALESCE(payment_intent_id,''),
       created_at, updated_at`

func (r *repo) Create(ctx context.Context, b *model.Booking) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO bookings
			(listing_id, renter_id, owner_id, start_date, end_date, total_price, status, payment_status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at`,
		b.ListingID, b.RenterID, b.OwnerID, b.StartDate, b.EndDate,
		b.TotalPrice, b.Status, b.PaymentStatus,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	b := &model.Booking{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT `+bookingCols+`
		FROM bookings
		WHERE id=$1`, id,
	).Scan(&b.ID, &b.ListingID, &b.RenterID, &b.OwnerID, &b.StartDate, &b.EndDate,
		&b.TotalPrice, &b.Status, &b.PaymentStatus, &b.PaymentIntentID,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) ListForUser(ctx context.Context, userID int64, role Role) ([]model.Booking, error) {
	var where string
	switch role {
	case RoleRenter:
		where = "renter_id=$1"
	case RoleOwner:
		where = "owner_id=$1"
	default:
		where = "(renter_id=$1 OR owner_id=$1)"
	}
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+bookingCols+`
		FROM bookings
		WHERE `+where+`
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.ListingID, &b.RenterID, &b.OwnerID,
			&b.StartDate, &b.EndDate, &b.TotalPrice, &b.Status, &b.PaymentStatus,
			&b.PaymentIntentID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE bookings
		SET status=$2, updated_at=NOW()
		WHERE id=$1`, id, status)
	return err
}

func (r *repo) SetPaymentIntent(ctx context.Context, id int64, intentID string, status model.PaymentStatus) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE bookings
		SET payment_intent_id=$2, payment_status=$3, updated_at=NOW()
		WHERE id=$1`, id, intentID, status)
	return err
}

// SetPaymentStatus is a plain field assignment so webhook redelivery stays
// idempotent.
func (r *repo) SetPaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE bookings
		SET payment_status=$2, updated_at=NOW()
		WHERE id=$1`, id, status)
	return err
}
