// Package main College Closet API.
//
// @title           College Closet API
// @version         1.0
// @description     Peer-to-peer clothing rental for students (listings, bookings, reviews, payments).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Kashh99/closet-backend/app/echoServer"
	authctrl "github.com/Kashh99/closet-backend/app/echoServer/controller/auth"
	bookingctrl "github.com/Kashh99/closet-backend/app/echoServer/controller/booking"
	listingctrl "github.com/Kashh99/closet-backend/app/echoServer/controller/listing"
	paymentctrl "github.com/Kashh99/closet-backend/app/echoServer/controller/payment"
	reviewctrl "github.com/Kashh99/closet-backend/app/echoServer/controller/review"
	uploadctrl "github.com/Kashh99/closet-backend/app/echoServer/controller/upload"
	userctrl "github.com/Kashh99/closet-backend/app/echoServer/controller/user"
	"github.com/Kashh99/closet-backend/app/echoServer/validation"
	"github.com/Kashh99/closet-backend/config"
	bookingrepo "github.com/Kashh99/closet-backend/repository/booking"
	cloudinaryrepo "github.com/Kashh99/closet-backend/repository/cloudinary"
	listingrepo "github.com/Kashh99/closet-backend/repository/listing"
	resettokenrepo "github.com/Kashh99/closet-backend/repository/resettoken"
	reviewrepo "github.com/Kashh99/closet-backend/repository/review"
	striperepo "github.com/Kashh99/closet-backend/repository/stripe"
	userrepo "github.com/Kashh99/closet-backend/repository/user"
	authsvc "github.com/Kashh99/closet-backend/service/auth"
	bookingsvc "github.com/Kashh99/closet-backend/service/booking"
	listingsvc "github.com/Kashh99/closet-backend/service/listing"
	paymentsvc "github.com/Kashh99/closet-backend/service/payment"
	reviewsvc "github.com/Kashh99/closet-backend/service/review"
	uploadsvc "github.com/Kashh99/closet-backend/service/upload"
	usersvc "github.com/Kashh99/closet-backend/service/user"
	"github.com/Kashh99/closet-backend/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: pgx pool
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// redis holds short-lived password reset tokens
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	// repos
	ur := userrepo.New(db)
	lr := listingrepo.New(db)
	br := bookingrepo.New(db)
	rr := reviewrepo.New(db)
	tr := resettokenrepo.New(rdb)
	sp := striperepo.NewHTTP(cfg.StripeAPIKey, cfg.StripeWebhookSecret)
	cr := cloudinaryrepo.NewHTTP(cloudinaryrepo.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryFolder,
	})

	// services
	as := authsvc.New(ur, tr, cfg.JWTSecret, log)
	us := usersvc.New(ur)
	ls := listingsvc.New(lr)
	bs := bookingsvc.New(br, lr)
	rs := reviewsvc.New(rr, br)
	ps := paymentsvc.New(br, sp, cfg.StripeCurrency, log)
	ups := uploadsvc.New(cr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}
	listingC := &listingctrl.Controller{Svc: ls, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	reviewC := &reviewctrl.Controller{Svc: rs, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, V: v, Log: log}
	uploadC := &uploadctrl.Controller{Svc: ups, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "College Closet API",
			"endpoints": echo.Map{
				"auth":     "/api/auth",
				"users":    "/api/users",
				"listings": "/api/listings",
				"bookings": "/api/bookings",
				"reviews":  "/api/reviews",
				"payments": "/api/payments",
				"upload":   "/api/upload",
			},
		})
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":      "ok",
			"environment": cfg.Env,
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		User:    userC,
		Listing: listingC,
		Booking: bookingC,
		Review:  reviewC,
		Payment: paymentC,
		Upload:  uploadC,

		JWTSecret: cfg.JWTSecret,
	})

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "route not found"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "env", cfg.Env, "port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
