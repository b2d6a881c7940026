package reviewsvc

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Kashh99/closet-backend/model"
	bookingrepo "github.com/Kashh99/closet-backend/repository/booking"
	reviewrepo "github.com/Kashh99/closet-backend/repository/review"
	"github.com/Kashh99/closet-backend/util/fault"
	"github.com/Kashh99/closet-backend/util/guard"
)

type Service interface {
	Create(ctx context.Context, reviewerID int64, req model.CreateReviewReq) (*model.Review, error)
	ForUser(ctx context.Context, userID int64) ([]model.Review, error)
	ForListing(ctx context.Context, listingID int64) ([]model.Review, error)
	Update(ctx context.Context, actorID, id int64, req model.UpdateReviewReq) (*model.Review, error)
	Delete(ctx context.Context, actorID, id int64) error
}

type service struct {
	rr reviewrepo.Repo
	br bookingrepo.Repo
}

func New(rr reviewrepo.Repo, br bookingrepo.Repo) Service {
	return &service{rr: rr, br: br}
}

func (s *service) Create(ctx context.Context, reviewerID int64, req model.CreateReviewReq) (*model.Review, error) {
	b, err := s.br.ByID(ctx, req.BookingID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.New(fault.NotFound, "booking not found")
	}
	if err != nil {
		return nil, err
	}
	if err := guard.Owns(reviewerID, b.RenterID, "not authorized to review this booking"); err != nil {
		return nil, err
	}
	if b.Status != model.BookingCompleted {
		return nil, fault.New(fault.Conflict, "can only review completed bookings")
	}

	exists, err := s.rr.ExistsForBooking(ctx, b.ID, reviewerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fault.New(fault.Conflict, "you have already reviewed this booking")
	}

	rv := &model.Review{
		BookingID:  b.ID,
		ReviewerID: reviewerID,
		RevieweeID: b.OwnerID,
		ListingID:  b.ListingID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.rr.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) ForUser(ctx context.Context, userID int64) ([]model.Review, error) {
	return s.rr.ListForReviewee(ctx, userID)
}

func (s *service) ForListing(ctx context.Context, listingID int64) ([]model.Review, error) {
	return s.rr.ListForListing(ctx, listingID)
}

func (s *service) Update(ctx context.Context, actorID, id int64, req model.UpdateReviewReq) (*model.Review, error) {
	rv, err := s.rr.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.New(fault.NotFound, "review not found")
	}
	if err != nil {
		return nil, err
	}
	if err := guard.Owns(actorID, rv.ReviewerID, "not authorized to update this review"); err != nil {
		return nil, err
	}

	if req.Rating != nil {
		rv.Rating = *req.Rating
	}
	if req.Comment != nil {
		rv.Comment = *req.Comment
	}
	if err := s.rr.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) Delete(ctx context.Context, actorID, id int64) error {
	rv, err := s.rr.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return fault.New(fault.NotFound, "review not found")
	}
	if err != nil {
		return err
	}
	if err := guard.Owns(actorID, rv.ReviewerID, "not authorized to delete this review"); err != nil {
		return err
	}
	return s.rr.Delete(ctx, id)
}
