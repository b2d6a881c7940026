package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func Load() App {
	// .env is a local convenience; production supplies real env vars.
	_ = godotenv.Load()

	cfg := App{
		Port:        getenv("APP_PORT", "8080"),
		Env:         getenv("APP_ENV", "dev"),
		DatabaseURL: must("DATABASE_URL"),
		JWTSecret:   getenv("JWT_SECRET", "local_dev_secret"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),

		StripeAPIKey:        must("STRIPE_API_KEY"),
		StripeWebhookSecret: must("STRIPE_WEBHOOK_SECRET"),
		StripeCurrency:      getenv("STRIPE_CURRENCY", "usd"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    os.Getenv("CLOUDINARY_FOLDER"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
