package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/poolcraft/backoffice/internal/migrations"
	"github.com/poolcraft/backoffice/internal/models"
	"github.com/poolcraft/backoffice/internal/repository"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
	"github.com/poolcraft/backoffice/pkg/logger"
)

type AdminService interface {
	Dashboard(ctx context.Context) (*repository.Dashboard, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, input *CreateUserInput) (*models.User, error)
	UpdateUser(ctx context.Context, userID uint, input *UpdateUserInput) (*models.User, error)
}

type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

type UpdateUserInput struct {
	Email    *string
	Name     *string
	Role     *string
	IsActive *bool
}

type adminService struct {
	userRepo  repository.UserRepository
	statsRepo repository.StatsRepository
}

func NewAdminService(userRepo repository.UserRepository, statsRepo repository.StatsRepository) AdminService {
	return &adminService{userRepo: userRepo, statsRepo: statsRepo}
}

var _ AdminService = (*adminService)(nil)

func (s *adminService) Dashboard(ctx context.Context) (*repository.Dashboard, error) {
	d, err := s.statsRepo.Dashboard(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("dashboard stats failed", zap.Error(err))
		return nil, err
	}
	return d, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *adminService) CreateUser(ctx context.Context, in *CreateUserInput) (*models.User, error) {
	if len(in.Password) < MinPasswordLength {
		return nil, appErr.Newf(appErr.CodeInvalid, "password must be at least %d characters long", MinPasswordLength)
	}
	role := in.Role
	if role == "" {
		role = models.RoleAdmin
	}
	if !validRole(role) {
		return nil, appErr.Newf(appErr.CodeInvalid, "unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), migrations.BcryptCost)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}

	u := &models.User{
		Email:    models.NormalizeEmail(in.Email),
		Password: string(hash),
		Name:     in.Name,
		Role:     role,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if appErr.IsCode(err, appErr.CodeConflict) {
			return nil, appErr.Wrap(err, appErr.CodeConflict, "user with this email already exists")
		}
		return nil, err
	}

	logger.FromContext(ctx).Info("user created", zap.Uint("user_id", u.ID), zap.String("role", u.Role))
	return u, nil
}

func (s *adminService) UpdateUser(ctx context.Context, userID uint, in *UpdateUserInput) (*models.User, error) {
	fields := map[string]any{}
	if in.Email != nil {
		fields["email"] = models.NormalizeEmail(*in.Email)
	}
	setString(fields, "name", in.Name)
	if in.Role != nil {
		if !validRole(*in.Role) {
			return nil, appErr.Newf(appErr.CodeInvalid, "unknown role %q", *in.Role)
		}
		fields["role"] = *in.Role
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if len(fields) == 0 {
		var u models.User
		if err := s.userRepo.GetByID(ctx, userID, &u); err != nil {
			return nil, err
		}
		return &u, nil
	}

	u, err := s.userRepo.UpdateFields(ctx, userID, fields)
	if err != nil {
		if appErr.IsCode(err, appErr.CodeConflict) {
			return nil, appErr.Wrap(err, appErr.CodeConflict, "user with this email already exists")
		}
		return nil, err
	}
	logger.FromContext(ctx).Info("user updated", zap.Uint("user_id", userID), zap.Int("fields", len(fields)))
	return u, nil
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleEditor
}
