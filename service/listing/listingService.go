package listingsvc

import (
	"context"
	"errors"
	"math"

	"github.com/jackc/pgx/v5"

	"github.com/Kashh99/closet-backend/model"
	listingrepo "github.com/Kashh99/closet-backend/repository/listing"
	"github.com/Kashh99/closet-backend/util/fault"
	"github.com/Kashh99/closet-backend/util/guard"
)

// Page is one page of browse results.
type Page struct {
	Items       []model.Listing
	Count       int
	Total       int64
	TotalPages  int
	CurrentPage int
}

type Service interface {
	Create(ctx context.Context, ownerID int64, req model.CreateListingReq) (*model.Listing, error)
	ByID(ctx context.Context, id int64) (*model.Listing, error)
	Browse(ctx context.Context, f listingrepo.Filter) (*Page, error)
	Mine(ctx context.Context, ownerID int64) ([]model.Listing, error)
	Update(ctx context.Context, actorID, id int64, req model.UpdateListingReq) (*model.Listing, error)
	Delete(ctx context.Context, actorID, id int64) error
}

type service struct{ lr listingrepo.Repo }

func New(lr listingrepo.Repo) Service { return &service{lr: lr} }

func (s *service) Create(ctx context.Context, ownerID int64, req model.CreateListingReq) (*model.Listing, error) {
	if len(req.Images) == 0 {
		return nil, fault.New(fault.Validation, "at least one image is required")
	}

	l := &model.Listing{
		OwnerID:       ownerID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      model.Category(req.Category),
		Gender:        model.Gender(req.Gender),
		Size:          req.Size,
		Brand:         req.Brand,
		Condition:     model.Condition(req.Condition),
		DailyPrice:    req.DailyPrice,
		WeeklyPrice:   req.WeeklyPrice,
		DepositAmount: req.DepositAmount,
		Images:        req.Images,
		Tags:          req.Tags,
		Location:      req.Location,
		IsActive:      true,
	}
	if err := s.lr.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Listing, error) {
	l, err := s.lr.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.New(fault.NotFound, "listing not found")
	}
	return l, err
}

func (s *service) Browse(ctx context.Context, f listingrepo.Filter) (*Page, error) {
	items, total, err := s.lr.ListActive(ctx, f)
	if err != nil {
		return nil, err
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	return &Page{
		Items:       items,
		Count:       len(items),
		Total:       total,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
	}, nil
}

func (s *service) Mine(ctx context.Context, ownerID int64) ([]model.Listing, error) {
	return s.lr.ListByOwner(ctx, ownerID)
}

func (s *service) Update(ctx context.Context, actorID, id int64, req model.UpdateListingReq) (*model.Listing, error) {
	l, err := s.lr.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.New(fault.NotFound, "listing not found")
	}
	if err != nil {
		return nil, err
	}
	if err := guard.Owns(actorID, l.OwnerID, "not authorized to update this listing"); err != nil {
		return nil, err
	}

	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Category != nil {
		l.Category = model.Category(*req.Category)
	}
	if req.Gender != nil {
		l.Gender = model.Gender(*req.Gender)
	}
	if req.Size != nil {
		l.Size = *req.Size
	}
	if req.Brand != nil {
		l.Brand = *req.Brand
	}
	if req.Condition != nil {
		l.Condition = model.Condition(*req.Condition)
	}
	if req.DailyPrice != nil {
		l.DailyPrice = *req.DailyPrice
	}
	if req.WeeklyPrice != nil {
		l.WeeklyPrice = req.WeeklyPrice
	}
	if req.DepositAmount != nil {
		l.DepositAmount = *req.DepositAmount
	}
	if req.Images != nil {
		if len(req.Images) == 0 {
			return nil, fault.New(fault.Validation, "at least one image is required")
		}
		l.Images = req.Images
	}
	if req.Tags != nil {
		l.Tags = req.Tags
	}
	if req.Location != nil {
		l.Location = *req.Location
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}

	if err := s.lr.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) Delete(ctx context.Context, actorID, id int64) error {
	l, err := s.lr.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return fault.New(fault.NotFound, "listing not found")
	}
	if err != nil {
		return err
	}
	if err := guard.Owns(actorID, l.OwnerID, "not authorized to delete this listing"); err != nil {
		return err
	}
	return s.lr.Delete(ctx, id)
}
