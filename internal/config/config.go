package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database and token-signing settings are required;
// the object store, payment processor and CORS settings fall back to
// development defaults so the server can run against a local MinIO and a
// Stripe test key out of the box.
type Config struct {
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign access tokens
	TokenTTLHours  int    // access token time-to-live in hours
	BcryptCost     int    // bcrypt cost for password hashing
	MinioEndpoint  string // object store endpoint including scheme
	MinioAccessKey string // object store access key
	MinioSecretKey string // object store secret key
	MinioBucket    string // bucket that holds listing photos
	StripeSecret   string // secret key for the payment processor
	AllowedOrigin  string // browser origin allowed by CORS
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Port:           getenv("APP_PORT", "8080"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		TokenTTLHours:  getenvInt("TOKEN_TTL_HOURS", 24),
		BcryptCost:     getenvInt("BCRYPT_COST", 10),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "http://localhost:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getenv("MINIO_BUCKET", "bedspace-photos"),
		StripeSecret:   getenv("STRIPE_SECRET_KEY", "sk_test_yourkey"),
		AllowedOrigin:  getenv("ALLOWED_ORIGIN", "http://localhost:3000"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the value of an optional environment variable or the
// provided default when it is unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvInt is like getenv but converts the retrieved string into an
// integer.  If conversion fails, the application logs a fatal error and exits.
func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
