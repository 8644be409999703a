package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/seu-repo/genie-bridge/internal/domain"
	"github.com/seu-repo/genie-bridge/internal/ports"
)

// AnonymousUserID is the shared identity for unauthenticated turns.
const AnonymousUserID = "anonymous"

// Service validates the bearer access tokens the platform forwards in
// session.user.accessToken. Token issuance lives with the account system;
// this service only checks signatures and extracts the identity.
type Service struct {
	secret []byte
	log    *zap.Logger
}

func NewService(secret string, log *zap.Logger) ports.AuthService {
	return &Service{
		secret: []byte(secret),
		log:    log,
	}
}

// ValidateToken parses and verifies an HMAC-signed access token and returns
// the user it identifies.
func (s *Service) ValidateToken(ctx context.Context, tokenStr string) (*domain.User, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid access token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("access token has no subject")
	}
	username, _ := claims["username"].(string)
	name, _ := claims["name"].(string)

	return &domain.User{
		ID:       sub,
		Username: username,
		Name:     name,
	}, nil
}

// Anonymous returns the user attached to turns without a credential.
func (s *Service) Anonymous() *domain.User {
	return &domain.User{
		ID:        AnonymousUserID,
		Username:  AnonymousUserID,
		Anonymous: true,
	}
}
