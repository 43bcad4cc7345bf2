package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"main/utils"
)

// TokenClaims is the verified identity carried by a bearer token.
type TokenClaims struct {
	UserID string
	Email  string
}

// GenerateToken issues a signed JWT for the user. Lifetime comes from
// JWT_EXPIRATION_TIME (default 7 days).
func GenerateToken(userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(utils.JWTExpirationTime) * time.Second).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(utils.JWTSecretKey))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// VerifyToken parses and validates a bearer token. Every failure mode
// (bad signature, expiry, missing claims) collapses into the same error so
// callers surface a uniform rejection.
func VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid or expired token")
	}

	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	if userID == "" || email == "" {
		return nil, errors.New("invalid or expired token")
	}

	return &TokenClaims{UserID: userID, Email: email}, nil
}
