package usersvc

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Kashh99/closet-backend/model"
	userrepo "github.com/Kashh99/closet-backend/repository/user"
	"github.com/Kashh99/closet-backend/util/fault"
	"github.com/Kashh99/closet-backend/util/hash"
)

type Service interface {
	Profile(ctx context.Context, id int64) (*model.PublicProfile, error)
	UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileReq) (*model.User, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

type service struct{ ur userrepo.Repo }

func New(ur userrepo.Repo) Service { return &service{ur: ur} }

func (s *service) Profile(ctx context.Context, id int64) (*model.PublicProfile, error) {
	u, err := s.ur.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.New(fault.NotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	p := u.Public()
	return &p, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileReq) (*model.User, error) {
	u, err := s.ur.ByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.New(fault.NotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.ProfileImage != nil {
		u.ProfileImage = *req.ProfileImage
	}
	if req.Sizes != nil {
		u.Sizes = req.Sizes
	}

	if err := s.ur.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	u, err := s.ur.ByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fault.New(fault.NotFound, "user not found")
	}
	if err != nil {
		return err
	}

	if !hash.Check(u.PasswordHash, currentPassword) {
		return fault.New(fault.Forbidden, "current password is incorrect")
	}

	hashed, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.ur.UpdatePassword(ctx, userID, hashed)
}
