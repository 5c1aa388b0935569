package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/apperrors"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=verifier_mocks_test.go -package=auth_test

type revocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Claims issued by the identity provider.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret      []byte
	issuer      string
	audience    string
	revocations revocationStore
	now         func() time.Time
}

func NewVerifier(secret, issuer, audience string, revocations revocationStore) *Verifier {
	return &Verifier{
		secret:      []byte(secret),
		issuer:      issuer,
		audience:    audience,
		revocations: revocations,
		now:         time.Now,
	}
}

func (v *Verifier) parse(token string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...); err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return claims, nil
}

// GetUser verifies the token and returns the user it was issued for.
func (v *Verifier) GetUser(ctx context.Context, token string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.verifier.getUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if token == "" {
		return nil, apperrors.ErrUnauthorized
	}

	claims, err := v.parse(token)
	if err != nil {
		log.Tracef("auth verifier: invalid token: %s", err)
		return nil, apperrors.ErrUnauthorized
	}

	if claims.ID != "" {
		revoked, err := v.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check token revoked: %w", err)
		}
		if revoked {
			return nil, apperrors.ErrUnauthorized
		}
	}

	return &User{
		ID:          claims.Subject,
		DisplayName: claims.Name,
		Email:       claims.Email,
	}, nil
}

// Revoke makes the token unusable for the rest of its lifetime.
func (v *Verifier) Revoke(ctx context.Context, token string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.verifier.revoke")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	claims, err := v.parse(token)
	if err != nil {
		return apperrors.ErrUnauthorized
	}
	if claims.ID == "" {
		return apperrors.NewValidation("token cannot be revoked")
	}

	ttl := claims.ExpiresAt.Sub(v.now())
	if err := v.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}
