package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Required values are enforced by must() and
// missing values cause the program to exit with a fatal log message.
type Config struct {
	Env         string // application environment (e.g. "dev", "prod")
	Port        string // HTTP port to listen on
	MongoURI    string // MongoDB connection string
	DBName      string // database name
	TokenSecret string // secret used to sign access tokens
	StripeKey   string // Stripe secret key for payment intents
	AMQPURL     string // RabbitMQ URL (empty disables event publishing)
}

// Load reads configuration from the environment. A .env file is loaded
// first when present so local development matches deployment.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Env:         getenv("APP_ENV", "dev"),
		Port:        getenv("PORT", "5000"),
		MongoURI:    must("MONGODB_URI"),
		DBName:      getenv("DB_NAME", "magicDanceArts"),
		TokenSecret: must("ACCESS_TOKEN_SECRET"),
		StripeKey:   must("STRIPE_SECRET_KEY"),
		AMQPURL:     getenv("RABBITMQ_URL", os.Getenv("AMQP_URL")),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
