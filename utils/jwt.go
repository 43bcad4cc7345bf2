package utils

import (
	"log"
	"os"
)

// Default token lifetime is 7 days, expressed in seconds.
const defaultJWTExpirationSeconds = 7 * 24 * 60 * 60

var (
	JWTSecretKey      string
	JWTExpirationTime int64
)

func InitJWT() {
	// For tests, fall back to a fixed secret if none is set
	if os.Getenv("GO_ENV") == "test" && os.Getenv("JWT_SECRET_KEY") == "" {
		os.Setenv("JWT_SECRET_KEY", "test_secret_key")
	}

	JWTSecretKey = os.Getenv("JWT_SECRET_KEY")
	if JWTSecretKey == "" {
		log.Fatal("JWT Secret Key not set")
	}

	JWTExpirationTime = int64(GetEnvAsInt("JWT_EXPIRATION_TIME", defaultJWTExpirationSeconds))
}
