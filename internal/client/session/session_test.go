package session_test

import (
	"testing"

	"github.com/sellerhub/storefront/internal/client/localstore"
	"github.com/sellerhub/storefront/internal/client/session"
	"github.com/sellerhub/storefront/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

var testUser = &models.PublicUser{
	ID:       "u-1",
	Name:     "Test User",
	Username: "testuser",
	Email:    "test@example.com",
}

func TestSession_SaveAndLoad(t *testing.T) {
	store := session.NewStore(localstore.NewMemStore())

	assert.False(t, store.IsAuthenticated(), "Fresh session should not be authenticated")

	err := store.Save("test-token", testUser)
	assert.NoError(t, err)

	token, err := store.Token()
	assert.NoError(t, err)
	assert.Equal(t, "test-token", token)

	user, err := store.CurrentUser()
	assert.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "testuser", user.Username)

	assert.True(t, store.IsAuthenticated())
}

func TestSession_Clear(t *testing.T) {
	store := session.NewStore(localstore.NewMemStore())

	err := store.Save("test-token", testUser)
	assert.NoError(t, err)

	err = store.Clear()
	assert.NoError(t, err)

	token, err := store.Token()
	assert.NoError(t, err)
	assert.Empty(t, token)

	user, err := store.CurrentUser()
	assert.NoError(t, err)
	assert.Nil(t, user, "CurrentUser should return nil after clear")

	assert.False(t, store.IsAuthenticated())
}

func TestSession_EmptyStore(t *testing.T) {
	store := session.NewStore(localstore.NewMemStore())

	token, err := store.Token()
	assert.NoError(t, err)
	assert.Empty(t, token)

	user, err := store.CurrentUser()
	assert.NoError(t, err)
	assert.Nil(t, user)
}
