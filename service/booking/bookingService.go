package bookingsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Kashh99/closet-backend/model"
	bookingrepo "github.com/Kashh99/closet-backend/repository/booking"
	listingrepo "github.com/Kashh99/closet-backend/repository/listing"
	"github.com/Kashh99/closet-backend/util/fault"
	"github.com/Kashh99/closet-backend/util/guard"
)

type Service interface {
	Create(ctx context.Context, renterID int64, req model.CreateBookingReq) (*model.Booking, error)
	ByID(ctx context.Context, actorID, id int64) (*model.Booking, error)
	ListMine(ctx context.Context, userID int64, role bookingrepo.Role) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, actorID, id int64, target model.BookingStatus) (*model.Booking, error)
}

type service struct {
	br bookingrepo.Repo
	lr listingrepo.Repo
}

func New(br bookingrepo.Repo, lr listingrepo.Repo) Service {
	return &service{br: br, lr: lr}
}

func (s *service) Create(ctx context.Context, renterID int64, req model.CreateBookingReq) (*model.Booking, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fault.New(fault.Validation, "start date must be a valid date")
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, fault.New(fault.Validation, "end date must be a valid date")
	}
	if !start.Before(end) {
		return nil, fault.New(fault.Validation, "end date must be after start date")
	}

	l, err := s.lr.ByID(ctx, req.ListingID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.New(fault.NotFound, "listing not found")
	}
	if err != nil {
		return nil, err
	}
	if !l.IsActive {
		return nil, fault.New(fault.Conflict, "this listing is not available for booking")
	}
	if l.OwnerID == renterID {
		return nil, fault.New(fault.Forbidden, "you cannot book your own listing")
	}

	days := model.RentalDays(start, end)
	if days < 1 {
		return nil, fault.New(fault.Validation, "booking must be for at least one day")
	}

	b := &model.Booking{
		ListingID:     l.ID,
		RenterID:      renterID,
		OwnerID:       l.OwnerID,
		StartDate:     start,
		EndDate:       end,
		TotalPrice:    float64(days) * l.DailyPrice,
		Status:        model.BookingRequested,
		PaymentStatus: model.PaymentPending,
	}
	if err := s.br.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) ByID(ctx context.Context, actorID, id int64) (*model.Booking, error) {
	b, err := s.br.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.New(fault.NotFound, "booking not found")
	}
	if err != nil {
		return nil, err
	}
	if err := guard.Party(actorID, "not authorized to access this booking", b.RenterID, b.OwnerID); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) ListMine(ctx context.Context, userID int64, role bookingrepo.Role) ([]model.Booking, error) {
	return s.br.ListForUser(ctx, userID, role)
}

// UpdateStatus applies one role-gated transition of the rental state machine.
// The actor check runs before the state check, and the status column is the
// sole mutation, written only after every precondition passes.
func (s *service) UpdateStatus(ctx context.Context, actorID, id int64, target model.BookingStatus) (*model.Booking, error) {
	b, err := s.br.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.New(fault.NotFound, "booking not found")
	}
	if err != nil {
		return nil, err
	}

	switch target {
	case model.BookingApproved, model.BookingRejected:
		if err := guard.Owns(actorID, b.OwnerID, "only the owner can approve or reject a booking"); err != nil {
			return nil, err
		}
	case model.BookingCancelled:
		if err := guard.Owns(actorID, b.RenterID, "only the renter can cancel a booking"); err != nil {
			return nil, err
		}
	case model.BookingCompleted:
		if err := guard.Party(actorID, "not authorized to update this booking", b.RenterID, b.OwnerID); err != nil {
			return nil, err
		}
	default:
		return nil, fault.New(fault.Validation, "invalid status")
	}

	if !model.CanTransition(b.Status, target) {
		return nil, fault.New(fault.Conflict,
			fmt.Sprintf("cannot move booking from %s to %s", b.Status, target))
	}

	if err := s.br.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	b.Status = target
	return b, nil
}

// parseDate accepts RFC3339 timestamps and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
