package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"wikitree/internal/domain"
	"wikitree/internal/domain/models"
)

// tokenVerifier implements JWTVerifier over a key lookup function.
type tokenVerifier struct {
	keyfunc    jwt.Keyfunc
	algorithms []string
	cancel     context.CancelFunc
	logger     *slog.Logger
}

// NewJWKSVerifier creates a verifier that fetches public keys from a JWKS endpoint.
// The JWKS keys are cached and refreshed in the background until Close.
func NewJWKSVerifier(jwksURL string, logger *slog.Logger) (JWTVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	ctx, cancel := context.WithCancel(context.Background())
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("JWT verifier initialized", "jwks_url", jwksURL)

	return &tokenVerifier{
		keyfunc:    jwks.Keyfunc,
		algorithms: []string{"RS256", "ES256"},
		cancel:     cancel,
		logger:     logger,
	}, nil
}

// NewSecretVerifier creates a verifier for HS256 tokens signed with a shared secret.
func NewSecretVerifier(secret string, logger *slog.Logger) (JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}

	key := []byte(secret)
	return &tokenVerifier{
		keyfunc: func(*jwt.Token) (any, error) {
			return key, nil
		},
		algorithms: []string{"HS256"},
		logger:     logger,
	}, nil
}

// NewVerifier picks the JWKS verifier when a URL is configured, the secret verifier otherwise.
func NewVerifier(jwksURL, secret string, logger *slog.Logger) (JWTVerifier, error) {
	if jwksURL != "" {
		return NewJWKSVerifier(jwksURL, logger)
	}
	return NewSecretVerifier(secret, logger)
}

// VerifyToken validates a JWT token and extracts its claims.
func (v *tokenVerifier) VerifyToken(tokenString string) (*models.Claims, error) {
	// Restricting methods up front prevents algorithm confusion
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, v.keyfunc,
		jwt.WithValidMethods(v.algorithms),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		v.logger.Debug("token parse failed", "error", err)
		return nil, &domain.UnauthorizedError{Message: "invalid token"}
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		v.logger.Error("failed to extract claims from token")
		return nil, &domain.UnauthorizedError{Message: "invalid token"}
	}

	if claims.Subject == "" {
		v.logger.Debug("token missing subject claim")
		return nil, &domain.UnauthorizedError{Message: "token missing subject"}
	}

	return claims, nil
}

// Close stops the background JWKS refresh, if any.
func (v *tokenVerifier) Close() error {
	if v.cancel != nil {
		v.cancel()
	}
	v.logger.Info("JWT verifier closed")
	return nil
}
