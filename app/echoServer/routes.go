package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	authctrl "github.com/Kashh99/closet-backend/app/echoServer/controller/auth"
	bookingctrl "github.com/Kashh99/closet-backend/app/echoServer/controller/booking"
	listingctrl "github.com/Kashh99/closet-backend/app/echoServer/controller/listing"
	paymentctrl "github.com/Kashh99/closet-backend/app/echoServer/controller/payment"
	reviewctrl "github.com/Kashh99/closet-backend/app/echoServer/controller/review"
	uploadctrl "github.com/Kashh99/closet-backend/app/echoServer/controller/upload"
	userctrl "github.com/Kashh99/closet-backend/app/echoServer/controller/user"
	"github.com/Kashh99/closet-backend/app/echoServer/jwtx"
)

type C struct {
	Auth    *authctrl.Controller
	User    *userctrl.Controller
	Listing *listingctrl.Controller
	Booking *bookingctrl.Controller
	Review  *reviewctrl.Controller
	Payment *paymentctrl.Controller
	Upload  *uploadctrl.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/api")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)
	pub.POST("/auth/forgot-password", c.Auth.ForgotPassword)
	pub.PUT("/auth/reset-password/:token", c.Auth.ResetPassword)

	pub.GET("/users/:id", c.User.Profile)

	pub.GET("/listings", c.Listing.Browse)
	pub.GET("/listings/:id", c.Listing.Detail)

	pub.GET("/reviews/user/:userId", c.Review.ForUser)
	pub.GET("/reviews/listing/:listingId", c.Review.ForListing)

	// The webhook stays public: it authenticates by signature over the raw
	// body, not by bearer token.
	pub.POST("/payments/webhook", c.Payment.HandleWebhook)

	// Auth
	auth := e.Group("/api")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	auth.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid, err := jwtx.UserIDFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
			}
			ctx.Set("user_id", uid)
			return next(ctx)
		}
	})

	auth.GET("/auth/me", c.Auth.Me)

	auth.PUT("/users/profile", c.User.UpdateProfile)
	auth.PUT("/users/password", c.User.ChangePassword)

	auth.GET("/listings/my/listings", c.Listing.Mine)
	auth.POST("/listings", c.Listing.Create)
	auth.PUT("/listings/:id", c.Listing.Update)
	auth.DELETE("/listings/:id", c.Listing.Delete)

	auth.GET("/bookings", c.Booking.ListMine)
	auth.GET("/bookings/:id", c.Booking.Detail)
	auth.POST("/bookings", c.Booking.Create)
	auth.PATCH("/bookings/:id/status", c.Booking.UpdateStatus)

	auth.POST("/reviews", c.Review.Create)
	auth.PUT("/reviews/:id", c.Review.Update)
	auth.DELETE("/reviews/:id", c.Review.Delete)

	auth.POST("/upload/single", c.Upload.Single)
	auth.POST("/upload/multiple", c.Upload.Multiple)

	auth.POST("/payments/create-payment-intent", c.Payment.CreateIntent)
	auth.GET("/payments/status/:bookingId", c.Payment.Status)
}
