package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourismBooking/internal/apperrors"
	"tourismBooking/models"
)

func TestAuthorize_Anonymous(t *testing.T) {
	d := Authorize(NewSession(), true, models.Roles()...)
	assert.False(t, d.Allowed())
	assert.ErrorIs(t, d.Err, apperrors.ErrAuthentication)
	assert.Equal(t, "/login", d.Redirect)
	assert.Equal(t, "Please log in to access this page.", d.Notice)
}

func TestAuthorize_RoleOutsideAllowedSet(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Establish(models.Identity{UserID: 3, Username: "meera", Role: models.RoleAccountant}))

	d := Authorize(s, true, models.RoleAdmin, models.RoleAgent)
	assert.ErrorIs(t, d.Err, apperrors.ErrAuthorization)
	assert.Equal(t, "/", d.Redirect)
	assert.Equal(t, "You do not have permission to access this page.", d.Notice)
	_, ok := s.CurrentIdentity()
	assert.True(t, ok, "authorization failures keep the session")
}

func TestAuthorize_Allowed(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Establish(agentID))
	d := Authorize(s, true, models.RoleAdmin, models.RoleAgent)
	assert.True(t, d.Allowed())
	assert.Equal(t, agentID, d.Identity)
}

func TestAuthorize_UnrecognizedRole(t *testing.T) {
	bogus := models.Identity{UserID: 9, Username: "eve", Role: "superuser"}

	strict := &Session{identity: &bogus}
	d := Authorize(strict, true, models.Roles()...)
	assert.ErrorIs(t, d.Err, apperrors.ErrAuthentication)
	assert.Equal(t, "/login", d.Redirect)
	_, ok := strict.CurrentIdentity()
	assert.False(t, ok, "strict mode clears the session")

	lenient := &Session{identity: &bogus}
	d = Authorize(lenient, false, models.Roles()...)
	assert.ErrorIs(t, d.Err, apperrors.ErrAuthorization)
	_, ok = lenient.CurrentIdentity()
	assert.True(t, ok)
}

func TestAuthorize_EmptyAllowedSetDeniesEveryone(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Establish(models.Identity{UserID: 1, Username: "root", Role: models.RoleAdmin}))
	assert.ErrorIs(t, Authorize(s, true).Err, apperrors.ErrAuthorization)
}
