package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/poolcraft/backoffice/internal/migrations"
	"github.com/poolcraft/backoffice/internal/models"
	"github.com/poolcraft/backoffice/internal/repository"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
	"github.com/poolcraft/backoffice/pkg/logger"
)

// MinPasswordLength applies to password changes and admin-created accounts.
const MinPasswordLength = 6

// Principal is the authenticated caller carried in the request context.
type Principal struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the principal may use the back-office routes.
func (p *Principal) IsAdmin() bool { return p != nil && p.Role == models.RoleAdmin }

type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Me(ctx context.Context, userID uint) (*models.User, error)
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	ParseToken(token string) (*Principal, error)
}

type authService struct {
	userRepo   repository.UserRepository
	hmacSecret []byte
	ttl        time.Duration
}

func NewAuthService(userRepo repository.UserRepository, secret []byte, ttl time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		hmacSecret: secret,
		ttl:        ttl,
	}
}

var _ AuthService = (*authService)(nil)

func invalidCredentials() error {
	return appErr.New(appErr.CodeUnauthorized, "invalid credentials")
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.userRepo.GetByEmail(ctx, models.NormalizeEmail(email), &user); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return "", nil, invalidCredentials()
		}
		return "", nil, err
	}

	if !user.IsActive {
		logger.FromContext(ctx).Info("login rejected for inactive account", zap.Uint("user_id", user.ID))
		return "", nil, appErr.New(appErr.CodeUnauthorized, "account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, invalidCredentials()
	}

	token, err := s.issue(&user)
	if err != nil {
		return "", nil, err
	}

	logger.FromContext(ctx).Info("user logged in", zap.Uint("user_id", user.ID))
	return token, &user, nil
}

func (s *authService) issue(u *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "sign token failed")
	}
	return signed, nil
}

func (s *authService) Me(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.userRepo.GetByID(ctx, userID, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return appErr.Newf(appErr.CodeInvalid, "new password must be at least %d characters long", MinPasswordLength)
	}

	var user models.User
	if err := s.userRepo.GetByID(ctx, userID, &user); err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return appErr.New(appErr.CodeUnauthorized, "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), migrations.BcryptCost)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("password changed", zap.Uint("user_id", userID))
	return nil
}

// ParseToken verifies an HS256 token and returns its principal. Any failure
// is reported as CodeForbidden; callers decide how a missing token is treated.
func (s *authService) ParseToken(raw string) (*Principal, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.hmacSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeForbidden, "invalid or expired token")
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, appErr.New(appErr.CodeForbidden, "invalid token subject")
	}

	return &Principal{ID: uint(id), Email: claims.Email, Name: claims.Name, Role: claims.Role}, nil
}
