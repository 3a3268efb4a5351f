package identity

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/riya0704/LeadTrak/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser_Success(t *testing.T) {
	user, err := NewUser("Priya Sharma", "Priya@Example.com", "s3cretpass")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "Priya Sharma", user.Name)
	assert.Equal(t, "priya@example.com", user.Email)
	assert.Equal(t, RoleUser, user.Role)
	assert.NotEqual(t, "s3cretpass", user.PasswordHash)
}

func TestNewAdminUser(t *testing.T) {
	user, err := NewAdminUser("Admin", "admin@example.com", "s3cretpass")

	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, user.Role)
	assert.True(t, user.Role.IsAdmin())
}

func TestNewUser_Validation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantCode string
	}{
		{"empty name", "", "a@b.com", "s3cretpass", "INVALID_NAME"},
		{"whitespace name", "   ", "a@b.com", "s3cretpass", "INVALID_NAME"},
		{"name too long", strings.Repeat("x", 101), "a@b.com", "s3cretpass", "INVALID_NAME"},
		{"empty email", "Priya", "", "s3cretpass", "INVALID_EMAIL"},
		{"bad email", "Priya", "not-an-email", "s3cretpass", "INVALID_EMAIL"},
		{"email too long", "Priya", strings.Repeat("x", 195) + "@b.com", "s3cretpass", "INVALID_EMAIL"},
		{"short password", "Priya", "a@b.com", "short", "INVALID_PASSWORD"},
		{"long password", "Priya", "a@b.com", strings.Repeat("p", 73), "INVALID_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.userName, tt.email, tt.password)
			assert.Nil(t, user)
			var domainErr *shared.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}

func TestUser_CheckPassword(t *testing.T) {
	user, err := NewUser("Priya", "priya@example.com", "s3cretpass")
	require.NoError(t, err)

	assert.True(t, user.CheckPassword("s3cretpass"))
	assert.False(t, user.CheckPassword("wrongpass1"))
	assert.False(t, user.CheckPassword(""))
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser("Priya", "priya@example.com", "s3cretpass")
	require.NoError(t, err)

	require.NoError(t, user.ChangePassword("newpass123"))
	assert.True(t, user.CheckPassword("newpass123"))
	assert.False(t, user.CheckPassword("s3cretpass"))
	assert.Equal(t, 2, user.Version)

	assert.Error(t, user.ChangePassword("short"))
}

func TestUser_Promote(t *testing.T) {
	user, err := NewUser("Priya", "priya@example.com", "s3cretpass")
	require.NoError(t, err)

	user.Promote()
	assert.Equal(t, RoleAdmin, user.Role)
	assert.Equal(t, 2, user.Version)
}

func TestRole(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("MANAGER").IsValid())

	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
}
