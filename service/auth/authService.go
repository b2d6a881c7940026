package authsvc

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Kashh99/closet-backend/model"
	resettokenrepo "github.com/Kashh99/closet-backend/repository/resettoken"
	userrepo "github.com/Kashh99/closet-backend/repository/user"
	"github.com/Kashh99/closet-backend/util/fault"
	"github.com/Kashh99/closet-backend/util/hash"
	jwtutil "github.com/Kashh99/closet-backend/util/jwt"
)

const resetTokenTTL = 15 * time.Minute

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
	Me(ctx context.Context, userID int64) (*model.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type service struct {
	ur     userrepo.Repo
	tokens resettokenrepo.Store
	secret string
	log    *slog.Logger
}

func New(ur userrepo.Repo, tokens resettokenrepo.Store, secret string, log *slog.Logger) Service {
	return &service{ur: ur, tokens: tokens, secret: secret, log: log}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        strings.TrimSpace(strings.ToLower(req.Email)),
		University:   req.University,
		PasswordHash: hashed,
	}

	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, "", derr
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, 24)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)
		if strings.Contains(cn, "users_email") || strings.Contains(msg, "email") {
			return fault.New(fault.Conflict, "email already registered")
		}
		return fault.New(fault.Conflict, "duplicate value")
	}
	return nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	u, err := s.ur.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", fault.New(fault.Forbidden, "invalid email or password")
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", fault.New(fault.Forbidden, "invalid email or password")
	}
	token, err := jwtutil.Issue(s.secret, u.ID, 24)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Me(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.New(fault.NotFound, "user not found")
	}
	return u, err
}

// ForgotPassword issues a one-shot reset token. The token is returned so the
// mail delivery path (out of scope here) can embed it; it is never logged in
// full.
func (s *service) ForgotPassword(ctx context.Context, email string) (string, error) {
	u, err := s.ur.ByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fault.New(fault.NotFound, "no account for that email")
	}
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err := s.tokens.Save(ctx, token, u.ID, resetTokenTTL); err != nil {
		return "", err
	}
	s.log.Info("password reset token issued", "user_id", u.ID)
	return token, nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.tokens.Consume(ctx, token)
	if errors.Is(err, resettokenrepo.ErrNotFound) {
		return fault.New(fault.Forbidden, "invalid or expired reset token")
	}
	if err != nil {
		return err
	}

	hashed, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.ur.UpdatePassword(ctx, userID, hashed)
}
