package access

import (
	"context"
	"errors"
	"io"
	"testing"

	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	password string
	user     *models.User
	err      error
}

func (s *stubUsers) CheckCredentials(_ context.Context, username, password string) (bool, string, error) {
	if s.err != nil {
		return false, "", s.err
	}
	if s.user == nil || s.user.Username != username || s.password != password {
		return false, "", nil
	}
	return true, s.user.Role, nil
}

func (s *stubUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil || s.user.Username != username {
		return nil, nil
	}
	return s.user, nil
}

func newTestService(users UserRepository) *Service {
	return NewService(users, zerolog.New(io.Discard))
}

func TestLogin(t *testing.T) {
	users := &stubUsers{
		password: "adminpass123",
		user:     &models.User{Username: "admin", Role: models.RoleAdmin},
	}
	svc := newTestService(users)

	role, err := svc.Login(context.Background(), "admin", "adminpass123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)
}

func TestLoginBadPassword(t *testing.T) {
	users := &stubUsers{
		password: "adminpass123",
		user:     &models.User{Username: "admin", Role: models.RoleAdmin},
	}
	svc := newTestService(users)

	_, err := svc.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.True(t, IsAccessDenied(err))
	// Unknown usernames fail with the same message as bad passwords.
	_, unknownErr := svc.Login(context.Background(), "ghost", "whatever")
	assert.Equal(t, err.Error(), unknownErr.Error())
}

func TestLoginThrottled(t *testing.T) {
	users := &stubUsers{}
	svc := newTestService(users)

	// The per-username burst allows five attempts before throttling.
	for i := 0; i < 5; i++ {
		_, err := svc.Login(context.Background(), "admin", "wrong")
		assert.True(t, IsAccessDenied(err))
	}
	_, err := svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrThrottled)

	// Other usernames are unaffected.
	_, err = svc.Login(context.Background(), "clerk", "wrong")
	assert.True(t, IsAccessDenied(err))
}

func TestLoginRepoError(t *testing.T) {
	users := &stubUsers{err: errors.New("db closed")}
	svc := newTestService(users)

	_, err := svc.Login(context.Background(), "admin", "adminpass123")
	assert.ErrorContains(t, err, "db closed")
	assert.False(t, IsAccessDenied(err))
}

func TestCanManage(t *testing.T) {
	admin := &stubUsers{user: &models.User{Username: "admin", Role: models.RoleAdmin}}
	clerk := &stubUsers{user: &models.User{Username: "dana", Role: models.RoleClerk}}

	ok, err := newTestService(admin).CanManage(context.Background(), "admin")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = newTestService(clerk).CanManage(context.Background(), "dana")
	require.NoError(t, err)
	assert.False(t, ok)

	// Missing user is simply not a manager.
	ok, err = newTestService(clerk).CanManage(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRequireRole(t *testing.T) {
	users := &stubUsers{user: &models.User{Username: "pat", Role: models.RoleHousekeeping}}
	svc := newTestService(users)

	assert.NoError(t, svc.RequireRole(context.Background(), "pat", models.RoleHousekeeping))
	assert.NoError(t, svc.RequireRole(context.Background(), "pat", models.RoleAdmin, models.RoleHousekeeping))

	err := svc.RequireRole(context.Background(), "pat", models.RoleAdmin)
	assert.True(t, IsAccessDenied(err))

	err = svc.RequireRole(context.Background(), "ghost", models.RoleAdmin)
	assert.True(t, IsAccessDenied(err))
}

func TestIsAccessDeniedWrapped(t *testing.T) {
	wrapped := errors.Join(errors.New("outer"), &AccessDeniedError{Reason: "no"})
	assert.True(t, IsAccessDenied(wrapped))
	assert.False(t, IsAccessDenied(errors.New("plain")))
}
