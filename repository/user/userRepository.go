package userrepo

import (
	"context"

	"github.com/Kashh99/closet-backend/model"
	"github.com/Kashh99/closet-backend/util/database"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, u *model.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const userCols = `id, first_name, last_name, email, password_hash, university,
       COALESCE(bio,''), COALESCE(profile_image,''), sizes, is_verified, created_at, updated_at`

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO users(first_name, last_name, email, password_hash, university)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at, updated_at`,
		u.FirstName, u.LastName, u.Email, u.PasswordHash, u.University,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.db.Pool.QueryRow(ctx, `
        SELECT `+userCols+`
        FROM users
        WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.University, &u.Bio, &u.ProfileImage, &u.Sizes, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	u := &model.User{}
	err := r.db.Pool.QueryRow(ctx, `
        SELECT `+userCols+`
        FROM users
        WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.University, &u.Bio, &u.ProfileImage, &u.Sizes, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) UpdateProfile(ctx context.Context, u *model.User) error {
	return r.db.Pool.QueryRow(ctx, `
		UPDATE users
		SET first_name=$2, last_name=$3, bio=$4, profile_image=$5, sizes=$6, updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at`,
		u.ID, u.FirstName, u.LastName, u.Bio, u.ProfileImage, u.Sizes,
	).Scan(&u.UpdatedAt)
}

func (r *repo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE users
		SET password_hash=$2, updated_at=NOW()
		WHERE id=$1`,
		id, passwordHash)
	return err
}
