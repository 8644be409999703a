package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const testSecret = "test-secret-key"

func newTestService() *Service {
	logger, _ := zap.NewDevelopment()
	return NewService(testSecret, logger).(*Service)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestValidateToken_RoundTrip(t *testing.T) {
	svc := newTestService()
	tokenStr := signToken(t, testSecret, jwt.MapClaims{
		"sub":      "user-123",
		"username": "alice",
		"name":     "Alice Example",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	user, err := svc.ValidateToken(context.Background(), tokenStr)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != "user-123" || user.Username != "alice" || user.Name != "Alice Example" {
		t.Errorf("unexpected user %+v", user)
	}
	if user.Anonymous {
		t.Error("expected an authenticated user")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestService()
	tokenStr := signToken(t, "some-other-secret", jwt.MapClaims{"sub": "user-123"})

	if _, err := svc.ValidateToken(context.Background(), tokenStr); err == nil {
		t.Fatal("expected an error for a token signed with the wrong secret")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService()
	tokenStr := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := svc.ValidateToken(context.Background(), tokenStr); err == nil {
		t.Fatal("expected an error for an expired token")
	}
}

func TestValidateToken_MissingSubject(t *testing.T) {
	svc := newTestService()
	tokenStr := signToken(t, testSecret, jwt.MapClaims{"username": "alice"})

	if _, err := svc.ValidateToken(context.Background(), tokenStr); err == nil {
		t.Fatal("expected an error for a token without a subject")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService()

	if _, err := svc.ValidateToken(context.Background(), "not.a.token"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}

func TestAnonymous(t *testing.T) {
	svc := newTestService()

	user := svc.Anonymous()
	if user.ID != AnonymousUserID || !user.Anonymous {
		t.Errorf("unexpected anonymous user %+v", user)
	}
}
