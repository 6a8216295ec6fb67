package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	apperrors "github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"golang.org/x/crypto/bcrypt"
)

type Repository interface {
	GetCredentialsByEmail(ctx context.Context, email string) (*Credentials, error)
	GetProfile(ctx context.Context, employeeID int64) (*Profile, error)
	UpdatePasswordHash(ctx context.Context, employeeID int64, hash string) error
}

var errProfileGone = apperrors.NewUnauthorizedError("employee no longer exists", apperrors.ErrCodeInvalidToken)

// Service is the main auth service with dependencies
type Service struct {
	repo           Repository
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

// NewService creates a new auth service
func NewService(repo Repository, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password produce the same error; a deactivated account with correct
// credentials is reported separately.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}

	creds, err := s.repo.GetCredentialsByEmail(ctx, dto.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmployeeNotFound) {
			// keep timing close to the wrong-password path
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(dto.Password))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if creds.PasswordHash == "" {
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(dto.Password))
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if creds.Active == "No" {
		return nil, apperrors.ErrEmployeeInactive
	}

	principal := Principal{
		EmployeeID: creds.EmployeeID,
		Email:      creds.Email,
		Role:       creds.Role,
		Name:       creds.DisplayName(),
	}
	token, err := s.tokenGenerator.GenerateAccessToken(principal)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue token", err)
	}

	s.logger.Info("login succeeded", "employee_id", creds.EmployeeID, "role", creds.Role)

	return &LoginResponse{
		AccessToken: token,
		EmployeeID:  creds.EmployeeID,
		Role:        creds.Role,
		Name:        principal.Name,
	}, nil
}

// SetPassword overwrites an employee's password hash. Only hr may call it.
func (s *Service) SetPassword(ctx context.Context, caller Principal, employeeID int64, dto SetPasswordDTO) error {
	if !caller.IsHR() {
		return apperrors.ErrHROnly
	}
	if verr := validation.Struct(dto); verr != nil {
		return verr
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return apperrors.NewInternalError("failed to hash password", err)
	}

	if err := s.repo.UpdatePasswordHash(ctx, employeeID, hash); err != nil {
		return err
	}

	s.logger.Info("password set", "employee_id", employeeID, "by", caller.EmployeeID)
	return nil
}

// Profile returns the caller's own record.
func (s *Service) Profile(ctx context.Context, caller Principal) (*Profile, error) {
	profile, err := s.repo.GetProfile(ctx, caller.EmployeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmployeeNotFound) {
			return nil, errProfileGone
		}
		return nil, err
	}
	return profile, nil
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.bcryptCost)
	})
	return s.dummyHash
}
