// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreStartsEmpty(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.GetUser())
	assert.Equal(t, "", s.Token())
	assert.False(t, s.LoggedIn())
}

func TestStoreSetAndLogout(t *testing.T) {
	s := NewStore()
	s.SetUser(&User{ID: "u1", Email: "a@b.c", Name: "Ann"})
	s.SetAccessToken("tok")

	require.True(t, s.LoggedIn())
	assert.Equal(t, "tok", s.Token())
	assert.Equal(t, "Ann", s.GetUser().Name)

	s.Logout()
	assert.Nil(t, s.GetUser())
	assert.Equal(t, "", s.Token())
	assert.False(t, s.LoggedIn())
}

func TestStoreClearEqualsLogout(t *testing.T) {
	s := NewStore()
	s.SetUser(&User{ID: "u1"})
	s.SetAccessToken("tok")
	s.Clear()
	assert.False(t, s.LoggedIn())
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewStore()
	s.SetUser(&User{ID: "u1", Name: "Ann"})

	got := s.GetUser()
	got.Name = "mutated"

	assert.Equal(t, "Ann", s.GetUser().Name, "callers must not be able to mutate the stored user")
}

func TestStoreUpdateNameAndAvatar(t *testing.T) {
	s := NewStore()

	// No-ops while logged out.
	s.UpdateName("nobody")
	s.UpdateAvatar("http://x/a.png")
	assert.Nil(t, s.GetUser())

	s.SetUser(&User{ID: "u1", Name: "Ann"})
	s.UpdateName("Anna")
	s.UpdateAvatar("http://x/b.png")
	assert.Equal(t, "Anna", s.GetUser().Name)
	assert.Equal(t, "http://x/b.png", s.GetUser().AvatarURL)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetAccessToken("tok")
			s.SetUser(&User{ID: "u1"})
		}()
		go func() {
			defer wg.Done()
			_ = s.Token()
			_ = s.GetUser()
			_ = s.LoggedIn()
		}()
	}
	wg.Wait()
}
