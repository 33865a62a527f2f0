package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/app/errs"
	"inkwell/app/models"
	"inkwell/app/repositories/mock"
)

func testUser(t *testing.T, users *mock.UserRepository, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Name: "Alice", Email: "alice@example.com", Role: role}
	require.NoError(t, user.SetPassword("hunter22"))
	user.BeforeCreate()
	require.NoError(t, users.Create(user))
	return user
}

func TestIssueAndParse(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	user := &models.User{ID: 9, Name: "Alice", Role: models.RoleAdmin}

	credential, err := svc.Issue(user)
	require.NoError(t, err)

	ident, err := svc.Parse(credential)
	require.NoError(t, err)
	assert.Equal(t, 9, ident.ID)
	assert.Equal(t, "Alice", ident.Name)
	assert.True(t, ident.IsAdmin())
}

func TestParseRejectsWrongSecret(t *testing.T) {
	credential, err := NewTokenService("secret-a", time.Hour).Issue(&models.User{ID: 1})
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Hour).Parse(credential)
	assert.True(t, errs.IsKind(err, errs.KindAuthentication))
}

func TestParseRejectsExpired(t *testing.T) {
	credential, err := NewTokenService("secret", -time.Minute).Issue(&models.User{ID: 1})
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Hour).Parse(credential)
	assert.True(t, errs.IsKind(err, errs.KindAuthentication))
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewTokenService("secret", time.Hour).Parse("not.a.token")
	assert.True(t, errs.IsKind(err, errs.KindAuthentication))
}

func TestVerifyReflectsCurrentRole(t *testing.T) {
	users := mock.NewUserRepository()
	user := testUser(t, users, models.RoleUser)
	svc := NewTokenService("secret", time.Hour)
	verifier := NewVerifier(svc, users)

	credential, err := svc.Issue(user)
	require.NoError(t, err)

	// Role changes after issuance show up in the resolved identity.
	user.Role = models.RoleAdmin
	require.NoError(t, users.Update(user))

	ident, err := verifier.Verify(credential)
	require.NoError(t, err)
	assert.True(t, ident.IsAdmin())
}

func TestVerifyDeletedUser(t *testing.T) {
	users := mock.NewUserRepository()
	user := testUser(t, users, models.RoleUser)
	svc := NewTokenService("secret", time.Hour)
	verifier := NewVerifier(svc, users)

	credential, err := svc.Issue(user)
	require.NoError(t, err)

	users.Delete(user.ID)

	_, err = verifier.Verify(credential)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}

func TestAnonymousIsNotAdmin(t *testing.T) {
	var ident *Identity
	assert.False(t, ident.IsAdmin())
}
