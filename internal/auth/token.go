package auth

import (
	"errors"
	"strconv"
	"time"

	apperrors "github.com/frahmantamala/hr-management/internal"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the fixed lifetime of an access token.
const DefaultTokenTTL = 24 * time.Hour

// NewJWTTokenGenerator creates an HS256 token generator.
func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTTokenGenerator{
		Secret: []byte(secret),
		TTL:    ttl,
		now:    time.Now,
	}
}

// WithClock swaps the time source; tests use it to mint expired tokens.
func (j *JWTTokenGenerator) WithClock(now func() time.Time) *JWTTokenGenerator {
	cp := *j
	cp.now = now
	return &cp
}

func (j *JWTTokenGenerator) clock() time.Time {
	if j.now == nil {
		return time.Now()
	}
	return j.now()
}

// GenerateAccessToken signs a token for p that expires after TTL.
func (j *JWTTokenGenerator) GenerateAccessToken(p Principal) (string, error) {
	issuedAt := j.clock()

	claims := &Claims{
		Email: p.Email,
		Role:  p.Role,
		Name:  p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.EmployeeID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// ValidateToken verifies signature, algorithm and expiry and returns the claims.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return j.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.clock),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken.WithCause(err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperrors.ErrInvalidToken
}
