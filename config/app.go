package config

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	Env         string `env:"APP_ENV" default:"dev"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	RedisAddr   string `env:"REDIS_ADDR" default:"localhost:6379"`

	StripeAPIKey        string `env:"STRIPE_API_KEY,required"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET,required"`
	StripeCurrency      string `env:"STRIPE_CURRENCY" default:"usd"`

	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `env:"CLOUDINARY_FOLDER"`
}
