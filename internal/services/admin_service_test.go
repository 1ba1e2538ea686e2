package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/poolcraft/backoffice/internal/models"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
)

func TestCreateUser(t *testing.T) {
	users := new(mockUserRepo)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "editor@example.com" && u.Role == models.RoleAdmin && u.Password != "hunter22"
	})).Return(nil).Once()

	svc := NewAdminService(users, nil)

	_, err := svc.CreateUser(context.Background(), &CreateUserInput{Email: "x@example.com", Password: "123", Name: "X"})
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	_, err = svc.CreateUser(context.Background(), &CreateUserInput{Email: "x@example.com", Password: "hunter22", Name: "X", Role: "owner"})
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	u, err := svc.CreateUser(context.Background(), &CreateUserInput{Email: "Editor@Example.com", Password: "hunter22", Name: "Ed"})
	require.NoError(t, err)
	require.True(t, u.IsActive)
	users.AssertExpectations(t)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	users.On("Create", mock.Anything, mock.Anything).Return(appErr.New(appErr.CodeConflict, "user already exists"))

	_, err := NewAdminService(users, nil).CreateUser(context.Background(), &CreateUserInput{Email: "a@example.com", Password: "hunter22", Name: "A"})
	require.True(t, appErr.IsCode(err, appErr.CodeConflict))
	require.Equal(t, "user with this email already exists", appErr.MessageOf(err))
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	role := "superuser"
	users := new(mockUserRepo)

	_, err := NewAdminService(users, nil).UpdateUser(context.Background(), 1, &UpdateUserInput{Role: &role})
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
	users.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}
