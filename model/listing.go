package model

import "time"

type Category string

const (
	CategoryCasual      Category = "Casual"
	CategoryFormal      Category = "Formal"
	CategoryParty       Category = "Party"
	CategoryBusiness    Category = "Business"
	CategoryAthletic    Category = "Athletic"
	CategoryAccessories Category = "Accessories"
)

type Gender string

const (
	GenderMen    Gender = "Men"
	GenderWomen  Gender = "Women"
	GenderUnisex Gender = "Unisex"
)

type Condition string

const (
	ConditionNew     Condition = "New"
	ConditionLikeNew Condition = "Like New"
	ConditionGood    Condition = "Good"
	ConditionFair    Condition = "Fair"
)

type Location struct {
	Building string `json:"building,omitempty"`
	Details  string `json:"details,omitempty"`
}

type Listing struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"owner_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      Category  `json:"category"`
	Gender        Gender    `json:"gender"`
	Size          string    `json:"size"`
	Brand         string    `json:"brand,omitempty"`
	Condition     Condition `json:"condition"`
	DailyPrice    float64   `json:"daily_price"`
	WeeklyPrice   *float64  `json:"weekly_price,omitempty"`
	DepositAmount float64   `json:"deposit_amount"`
	Images        []string  `json:"images"`
	Tags          []string  `json:"tags,omitempty"`
	Location      Location  `json:"location"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateListingReq struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Category      string   `json:"category" validate:"required,oneof=Casual Formal Party Business Athletic Accessories"`
	Gender        string   `json:"gender" validate:"required,oneof=Men Women Unisex"`
	Size          string   `json:"size" validate:"required"`
	Brand         string   `json:"brand"`
	Condition     string   `json:"condition" validate:"required,oneof=New 'Like New' Good Fair"`
	DailyPrice    float64  `json:"daily_price" validate:"required,gt=0"`
	WeeklyPrice   *float64 `json:"weekly_price" validate:"omitempty,gt=0"`
	DepositAmount float64  `json:"deposit_amount" validate:"required,gte=0"`
	Images        []string `json:"images" validate:"required,min=1,dive,required"`
	Tags          []string `json:"tags"`
	Location      Location `json:"location"`
}

type UpdateListingReq struct {
	Title         *string   `json:"title" validate:"omitempty,min=1"`
	Description   *string   `json:"description" validate:"omitempty,min=1"`
	Category      *string   `json:"category" validate:"omitempty,oneof=Casual Formal Party Business Athletic Accessories"`
	Gender        *string   `json:"gender" validate:"omitempty,oneof=Men Women Unisex"`
	Size          *string   `json:"size" validate:"omitempty,min=1"`
	Brand         *string   `json:"brand"`
	Condition     *string   `json:"condition" validate:"omitempty,oneof=New 'Like New' Good Fair"`
	DailyPrice    *float64  `json:"daily_price" validate:"omitempty,gt=0"`
	WeeklyPrice   *float64  `json:"weekly_price" validate:"omitempty,gt=0"`
	DepositAmount *float64  `json:"deposit_amount" validate:"omitempty,gte=0"`
	Images        []string  `json:"images" validate:"omitempty,min=1,dive,required"`
	Tags          []string  `json:"tags"`
	Location      *Location `json:"location"`
	IsActive      *bool     `json:"is_active"`
}
