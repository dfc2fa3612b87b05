package auth

import (
	"testing"
	"time"
)

const testSecret = "test-secret-key-must-be-32-chars!"

func TestNewJWTService_ValidConfig(t *testing.T) {
	service, err := NewJWTService(JWTConfig{
		Secret: testSecret,
		Issuer: "test-issuer",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if service == nil {
		t.Fatal("Expected service to be non-nil")
	}
}

func TestNewJWTService_ShortSecret(t *testing.T) {
	for _, secret := range []string{"", "short"} {
		if _, err := NewJWTService(JWTConfig{Secret: secret}); err != ErrInvalidSecretLength {
			t.Errorf("secret %q: expected ErrInvalidSecretLength, got %v", secret, err)
		}
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	service, _ := NewJWTService(JWTConfig{Secret: testSecret})

	token, err := service.GenerateToken("user-uuid", "alice")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if token == "" {
		t.Fatal("Expected non-empty token")
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("Expected valid token, got: %v", err)
	}
	if claims.SubjectID() != "user-uuid" {
		t.Errorf("Expected subject 'user-uuid', got '%s'", claims.SubjectID())
	}
	if claims.Username != "alice" {
		t.Errorf("Expected username 'alice', got '%s'", claims.Username)
	}
}

func TestValidateToken_Invalid(t *testing.T) {
	service, _ := NewJWTService(JWTConfig{Secret: testSecret})

	if _, err := service.ValidateToken("not-a-token"); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer, _ := NewJWTService(JWTConfig{Secret: "another-secret-that-is-32-chars!!"})
	validator, _ := NewJWTService(JWTConfig{Secret: testSecret})

	token, err := issuer.GenerateToken("user-uuid", "alice")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, err := validator.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	service, _ := NewJWTService(JWTConfig{
		Secret:        testSecret,
		TokenDuration: -time.Minute,
	})

	token, err := service.GenerateToken("user-uuid", "alice")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, err := service.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("Expected ErrExpiredToken, got %v", err)
	}
}
