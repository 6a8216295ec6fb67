package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/go-chi/chi"
)

type rule int

const (
	rulePublic rule = iota
	ruleAuthenticated
	ruleHROnly
	ruleSelfOrHR
)

func (r rule) String() string {
	switch r {
	case rulePublic:
		return "public"
	case ruleAuthenticated:
		return "authenticated"
	case ruleHROnly:
		return "hr-only"
	case ruleSelfOrHR:
		return "self-or-hr"
	default:
		return "unknown"
	}
}

// Policy is the access rule attached to a route when it is registered.
type Policy struct {
	rule  rule
	owner OwnerResolver
}

func (p Policy) String() string {
	return p.rule.String()
}

// Public performs no check at all.
func Public() Policy { return Policy{rule: rulePublic} }

// Authenticated requires a valid token and a known role, nothing more.
func Authenticated() Policy { return Policy{rule: ruleAuthenticated} }

// HROnly admits only the hr role.
func HROnly() Policy { return Policy{rule: ruleHROnly} }

// SelfOrHR admits hr unconditionally and an employee only when owner resolves
// to the caller's own id.
func SelfOrHR(owner OwnerResolver) Policy {
	return Policy{rule: ruleSelfOrHR, owner: owner}
}

// OwnerResolver extracts the id of the employee that owns the target resource.
type OwnerResolver interface {
	ResolveOwner(r *http.Request) (int64, error)
}

type OwnerResolverFunc func(r *http.Request) (int64, error)

func (f OwnerResolverFunc) ResolveOwner(r *http.Request) (int64, error) {
	return f(r)
}

// PathParam reads the owner id from a route segment.
func PathParam(name string) OwnerResolver {
	return OwnerResolverFunc(func(r *http.Request) (int64, error) {
		return parseID(name, chi.URLParam(r, name))
	})
}

// BodyField reads the owner id from a top-level JSON field. The body is
// restored so the handler can decode it again.
func BodyField(name string) OwnerResolver {
	return OwnerResolverFunc(func(r *http.Request) (int64, error) {
		if r.Body == nil {
			return 0, apperrors.ErrMissingRequiredFields.WithMessage("Missing required fields: " + name)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return 0, apperrors.ErrInvalidRequestBody.WithCause(err)
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return 0, apperrors.ErrInvalidRequestBody.WithMessage("request body is not valid JSON")
		}
		raw, ok := fields[name]
		if !ok || string(raw) == "null" {
			return 0, apperrors.ErrMissingRequiredFields.WithMessage("Missing required fields: " + name)
		}
		var id int64
		if err := json.Unmarshal(raw, &id); err != nil || id <= 0 {
			return 0, apperrors.ErrInvalidID.WithMessage(fmt.Sprintf("invalid %s", name))
		}
		return id, nil
	})
}

// Lookup resolves the owner by loading the resource named by a route id.
func Lookup(param string, find func(ctx context.Context, id int64) (int64, error)) OwnerResolver {
	return OwnerResolverFunc(func(r *http.Request) (int64, error) {
		id, err := parseID(param, chi.URLParam(r, param))
		if err != nil {
			return 0, err
		}
		return find(r.Context(), id)
	})
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidID.WithMessage(fmt.Sprintf("invalid %s: %q", name, raw))
	}
	return id, nil
}

// Verifier is the token side the gate depends on.
type Verifier interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// Gate evaluates route policies before any handler runs.
type Gate struct {
	*transport.BaseHandler
	verifier Verifier
}

func NewGate(verifier Verifier, lg *slog.Logger) *Gate {
	return &Gate{
		BaseHandler: transport.NewBaseHandler(lg),
		verifier:    verifier,
	}
}

// Require returns the middleware enforcing p. Evaluation order: token (401),
// role claim (401), identity claim (422), then the policy rule (403).
func (g *Gate) Require(p Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if p.rule == rulePublic {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := g.authorize(r, p)
			if err != nil {
				g.Logger.Warn("access gate rejected request",
					"policy", p.String(),
					"method", r.Method,
					"path", r.URL.Path,
					"error", err)
				g.HandleError(w, err)
				return
			}

			ctx := WithPrincipal(r.Context(), principal)
			ctx = apperrors.ContextWithEmployeeID(ctx, principal.EmployeeID)
			ctx = logger.With(ctx, "employee_id", principal.EmployeeID, "role", principal.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (g *Gate) authorize(r *http.Request, p Policy) (Principal, error) {
	token := transport.ExtractTokenFromHeader(r)
	if token == "" {
		return Principal{}, apperrors.ErrMissingToken
	}

	claims, err := g.verifier.ValidateToken(token)
	if err != nil {
		if _, ok := apperrors.IsAppError(err); ok {
			return Principal{}, err
		}
		return Principal{}, apperrors.ErrInvalidToken.WithCause(err)
	}

	if !claims.ValidRole() {
		return Principal{}, apperrors.ErrMissingRole
	}

	employeeID, err := claims.EmployeeID()
	if err != nil {
		return Principal{}, err
	}

	principal := Principal{
		EmployeeID: employeeID,
		Email:      claims.Email,
		Role:       claims.Role,
		Name:       claims.Name,
	}

	switch p.rule {
	case ruleAuthenticated:
		return principal, nil
	case ruleHROnly:
		if !principal.IsHR() {
			return Principal{}, apperrors.ErrHROnly
		}
		return principal, nil
	case ruleSelfOrHR:
		if principal.IsHR() {
			return principal, nil
		}
		if p.owner == nil {
			return Principal{}, apperrors.ErrAccessDenied
		}
		ownerID, err := p.owner.ResolveOwner(r)
		if err != nil {
			return Principal{}, err
		}
		if ownerID != principal.EmployeeID {
			return Principal{}, apperrors.ErrForeignRecord
		}
		return principal, nil
	default:
		return Principal{}, errors.New("unknown access policy")
	}
}
