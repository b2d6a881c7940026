package model

import "time"

type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	University   string    `json:"university"`
	Bio          string    `json:"bio,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	Sizes        []string  `json:"sizes,omitempty"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicProfile is the shape exposed to other users.
type PublicProfile struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	University   string    `json:"university"`
	Bio          string    `json:"bio,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	Sizes        []string  `json:"sizes,omitempty"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		University:   u.University,
		Bio:          u.Bio,
		ProfileImage: u.ProfileImage,
		Sizes:        u.Sizes,
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt,
	}
}

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	University string `json:"university" validate:"required"`
	Password   string `json:"password" validate:"required,min=6"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordReq struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordReq struct {
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateProfileReq struct {
	FirstName    *string `json:"first_name" validate:"omitempty,min=1"`
	LastName     *string `json:"last_name" validate:"omitempty,min=1"`
	Bio          *string  `json:"bio" validate:"omitempty,max=500"`
	ProfileImage *string  `json:"profile_image" validate:"omitempty,url"`
	Sizes        []string `json:"sizes" validate:"omitempty,dive,required"`
}

type ChangePasswordReq struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}
