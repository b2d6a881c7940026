package reviewrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Kashh99/closet-backend/model"
	"github.com/Kashh99/closet-backend/util/database"
)

type Repo interface {
	Create(ctx context.Context, rv *model.Review) error
	ByID(ctx context.Context, id int64) (*model.Review, error)
	ExistsForBooking(ctx context.Context, bookingID, reviewerID int64) (bool, error)
	ListForReviewee(ctx context.Context, revieweeID int64) ([]model.Review, error)
	ListForListing(ctx context.Context, listingID int64) ([]model.Review, error)
	Update(ctx context.Context, rv *model.Review) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const reviewCols = `id, booking_id, reviewer_id, reviewee_id, listing_id,
       rating, comment, created_at, updated_at`

func (r *repo) Create(ctx context.Context, rv *model.Review) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO reviews (booking_id, reviewer_id, reviewee_id, listing_id, rating, comment)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at`,
		rv.BookingID, rv.ReviewerID, rv.RevieweeID, rv.ListingID, rv.Rating, rv.Comment,
	).Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Review, error) {
	rv := &model.Review{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT `+reviewCols+`
		FROM reviews
		WHERE id=$1`, id,
	).Scan(&rv.ID, &rv.BookingID, &rv.ReviewerID, &rv.RevieweeID, &rv.ListingID,
		&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *repo) ExistsForBooking(ctx context.Context, bookingID, reviewerID int64) (bool, error) {
	var one int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT 1 FROM reviews WHERE booking_id=$1 AND reviewer_id=$2`,
		bookingID, reviewerID,
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repo) ListForReviewee(ctx context.Context, revieweeID int64) ([]model.Review, error) {
	return r.list(ctx, `reviewee_id=$1`, revieweeID)
}

func (r *repo) ListForListing(ctx context.Context, listingID int64) ([]model.Review, error) {
	return r.list(ctx, `listing_id=$1`, listingID)
}

func (r *repo) list(ctx context.Context, where string, arg any) ([]model.Review, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+reviewCols+`
		FROM reviews
		WHERE `+where+`
		ORDER BY created_at DESC, id DESC`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.BookingID, &rv.ReviewerID, &rv.RevieweeID,
			&rv.ListingID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, rv *model.Review) error {
	return r.db.Pool.QueryRow(ctx, `
		UPDATE reviews
		SET rating=$2, comment=$3, updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at`,
		rv.ID, rv.Rating, rv.Comment,
	).Scan(&rv.UpdatedAt)
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	return err
}
