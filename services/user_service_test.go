package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafesys/cafe-backend/auth"
	"github.com/cafesys/cafe-backend/services"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	users := services.NewUserService(db)

	user, err := users.Register("alice", "secret", "555-0101")
	require.NoError(t, err)
	assert.Equal(t, string(auth.RoleCustomer), user.Type, "registration always creates a customer")
	assert.NotEqual(t, "secret", user.Password, "credential is stored hashed")

	id, err := users.Authenticate("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{Login: "alice", Role: auth.RoleCustomer}, id)

	_, err = users.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	_, err = users.Authenticate("nobody", "secret")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)
	users := services.NewUserService(db)

	_, err := users.Register("alice", "secret", "")
	require.NoError(t, err)

	_, err = users.Register("alice", "other", "")
	assert.ErrorIs(t, err, services.ErrConflict)

	_, err = users.Register("", "secret", "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = users.Register("bob", "", "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestSetRoleIsManagerOnly(t *testing.T) {
	db := setupTestDB(t)
	users := services.NewUserService(db)

	_, err := users.Register("alice", "secret", "")
	require.NoError(t, err)

	err = users.SetRole(asAlice, "alice", auth.RoleManager)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	err = users.SetRole(asEmployee, "alice", auth.RoleEmployee)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	require.NoError(t, users.SetRole(asManager, "alice", auth.RoleEmployee))
	role, err := users.GetRole("alice")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleEmployee, role)

	err = users.SetRole(asManager, "alice", auth.Role("barista"))
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	err = users.SetRole(asManager, "nobody", auth.RoleEmployee)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestProfileEditBoundary(t *testing.T) {
	db := setupTestDB(t)
	users := services.NewUserService(db)

	_, err := users.Register("alice", "secret", "555-0101")
	require.NoError(t, err)

	// Another customer may not touch alice's profile; a manager may.
	err = users.SetPhone(asBob, "alice", "555-9999")
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	require.NoError(t, users.SetPhone(asAlice, "alice", "555-0202"))
	require.NoError(t, users.SetPhone(asManager, "alice", "555-0303"))

	user, err := users.GetUser(asManager, "alice")
	require.NoError(t, err)
	assert.Equal(t, "555-0303", user.PhoneNum)

	_, err = users.GetUser(asBob, "alice")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestSetPhoneIdempotent(t *testing.T) {
	db := setupTestDB(t)
	users := services.NewUserService(db)

	_, err := users.Register("alice", "secret", "555-0101")
	require.NoError(t, err)

	before, err := users.GetUser(asAlice, "alice")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, users.SetPhone(asAlice, "alice", "555-0101"))
	require.NoError(t, users.SetFavItems(asAlice, "alice", ""))

	after, err := users.GetUser(asAlice, "alice")
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.Equal(before.UpdatedAt), "no-op edits must not bump UpdatedAt")
}

func TestSetPassword(t *testing.T) {
	db := setupTestDB(t)
	users := services.NewUserService(db)

	_, err := users.Register("alice", "secret", "")
	require.NoError(t, err)

	require.NoError(t, users.SetPassword(asAlice, "alice", "hunter2"))

	_, err = users.Authenticate("alice", "secret")
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	id, err := users.Authenticate("alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Login)

	err = users.SetPassword(asAlice, "alice", "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	err = users.SetPassword(asManager, "nobody", "pw")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestListUsers(t *testing.T) {
	db := setupTestDB(t)
	users := services.NewUserService(db)

	_, err := users.Register("alice", "secret", "")
	require.NoError(t, err)
	_, err = users.Register("bob", "secret", "")
	require.NoError(t, err)

	_, err = users.ListUsers(asAlice)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	all, err := users.ListUsers(asManager)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
