package services

import (
	"os"
	"testing"

	"main/utils"
)

func init() {
	os.Setenv("GO_ENV", "test")
	os.Setenv("JWT_SECRET_KEY", "test_secret_key")
	utils.InitJWT()
}

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("user_id = %q", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"not.a.jwt",
		"eyJhbGciOiJIUzI1NiJ9.e30.bogus",
	}
	for _, token := range cases {
		if _, err := VerifyToken(token); err == nil {
			t.Errorf("token %q accepted", token)
		}
	}
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	token, err := GenerateToken("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := VerifyToken(tampered); err == nil {
		t.Fatal("tampered token accepted")
	}
}
