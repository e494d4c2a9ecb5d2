package model

import (
	"testing"

	"reckue_account/pkg/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordClearsPlaintext(t *testing.T) {
	u := &User{Username: "alice", RawPassword: "secret1"}
	require.NoError(t, u.HashPassword())

	assert.Empty(t, u.RawPassword)
	assert.NotEqual(t, "secret1", u.Password)
	assert.True(t, u.CheckPassword("secret1"))
	assert.False(t, u.CheckPassword("secret2"))
}

func TestHashPasswordKeepsExistingHash(t *testing.T) {
	u := &User{Password: "existing-hash"}
	require.NoError(t, u.HashPassword())
	assert.Equal(t, "existing-hash", u.Password)
}

func TestBeforeCreateDefaults(t *testing.T) {
	u := &User{Username: "alice"}
	require.NoError(t, u.BeforeCreate(nil))

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, constants.StatusActive, u.Status)
	assert.Equal(t, []string{constants.RoleUser}, u.Roles)
	assert.True(t, u.IsActive())
}

func TestPrincipalHasAnyRole(t *testing.T) {
	p := Principal{Username: "alice", Roles: []string{constants.RoleUser}}

	assert.True(t, p.HasAnyRole(constants.RoleAdmin, constants.RoleUser))
	assert.False(t, p.HasAnyRole(constants.RoleAdmin))
	assert.False(t, Principal{}.HasAnyRole(constants.RoleUser))
}
