package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/poolcraft/backoffice/internal/models"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
)

var testSecret = []byte("a-test-secret-of-sufficient-length")

func hashed(t *testing.T, password string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	repo := new(mockUserRepo)
	user := &models.User{ID: 3, Email: "admin@example.com", Name: "Dana", Role: models.RoleAdmin, IsActive: true, Password: hashed(t, "secret123")}
	repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(user, nil)

	svc := NewAuthService(repo, testSecret, time.Hour)
	token, got, err := svc.Login(context.Background(), " Admin@Example.com ", "secret123")
	require.NoError(t, err)
	require.Equal(t, uint(3), got.ID)

	p, err := svc.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, &Principal{ID: 3, Email: "admin@example.com", Name: "Dana", Role: models.RoleAdmin}, p)
	require.True(t, p.IsAdmin())
}

func TestLoginFailures(t *testing.T) {
	active := &models.User{ID: 1, Email: "a@example.com", IsActive: true, Password: hashed(t, "right-password")}
	inactive := &models.User{ID: 2, Email: "b@example.com", IsActive: false, Password: hashed(t, "right-password")}

	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "a@example.com").Return(active, nil)
	repo.On("GetByEmail", mock.Anything, "b@example.com").Return(inactive, nil)
	repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, appErr.NotFound("user"))

	svc := NewAuthService(repo, testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "a@example.com", "wrong")
	require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
	require.Equal(t, "invalid credentials", appErr.MessageOf(err))

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "right-password")
	require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
	require.Equal(t, "invalid credentials", appErr.MessageOf(err))

	_, _, err = svc.Login(context.Background(), "b@example.com", "right-password")
	require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
	require.Equal(t, "account is deactivated", appErr.MessageOf(err))
}

func TestChangePassword(t *testing.T) {
	user := &models.User{ID: 5, IsActive: true, Password: hashed(t, "old-password")}
	repo := new(mockUserRepo)
	repo.On("GetByID", mock.Anything, uint(5)).Return(user, nil)
	repo.On("UpdatePassword", mock.Anything, uint(5), mock.AnythingOfType("string")).Return(nil).Once()

	svc := NewAuthService(repo, testSecret, time.Hour)

	err := svc.ChangePassword(context.Background(), 5, "old-password", "short")
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	err = svc.ChangePassword(context.Background(), 5, "not-the-old-one", "new-password")
	require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))

	require.NoError(t, svc.ChangePassword(context.Background(), 5, "old-password", "new-password"))

	stored := repo.Calls[len(repo.Calls)-1].Arguments.String(2)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("new-password")))
	cost, err := bcrypt.Cost([]byte(stored))
	require.NoError(t, err)
	require.Equal(t, 12, cost)
	repo.AssertExpectations(t)
}

func TestParseTokenRejects(t *testing.T) {
	svc := NewAuthService(new(mockUserRepo), testSecret, time.Hour)

	sign := func(secret []byte, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		require.NoError(t, err)
		return s
	}

	cases := map[string]string{
		"garbage":      "not-a-token",
		"other secret": sign([]byte("some-other-secret-value"), jwt.RegisteredClaims{Subject: "1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}),
		"expired":      sign(testSecret, jwt.RegisteredClaims{Subject: "1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))}),
		"no expiry":    sign(testSecret, jwt.RegisteredClaims{Subject: "1"}),
		"bad subject":  sign(testSecret, jwt.RegisteredClaims{Subject: "abc", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ParseToken(token)
			require.True(t, appErr.IsCode(err, appErr.CodeForbidden), "got %v", err)
		})
	}
}
