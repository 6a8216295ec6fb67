package auth

import (
	"context"
	"strconv"
	"time"

	apperrors "github.com/frahmantamala/hr-management/internal"
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

// Principal is the authenticated caller recovered from a verified token.
type Principal struct {
	EmployeeID int64
	Email      string
	Role       string
	Name       string
}

func (p Principal) IsHR() bool {
	return p.Role == RoleHR
}

// TokenGenerator issues and verifies bearer tokens.
type TokenGenerator interface {
	GenerateAccessToken(p Principal) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims is the JWT payload. The subject holds the employee id as a decimal string.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// EmployeeID parses the subject claim.
func (c *Claims) EmployeeID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrMalformedIdentity
	}
	return id, nil
}

// ValidRole reports whether the role claim is one of the two known roles.
func (c *Claims) ValidRole() bool {
	return c.Role == RoleHR || c.Role == RoleEmployee
}

type JWTTokenGenerator struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

// Credentials is what the login path needs from storage.
type Credentials struct {
	EmployeeID   int64
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Active       string
	Role         string
}

func (c Credentials) DisplayName() string {
	return c.FirstName + " " + c.LastName
}

// Profile is the caller's own record as returned by GET /auth/profile.
type Profile struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	JobName      string `json:"job_name"`
	DepartmentID *int64 `json:"department_id"`
	Role         string `json:"role"`
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
