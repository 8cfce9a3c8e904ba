package handler_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaronsh/mediahub/internal/auth"
	"github.com/yaronsh/mediahub/internal/model"
)

// loginAlice registers and logs in, returning the session token the
// /api routes expect.
func loginAlice(t *testing.T, env *testEnv) string {
	t.Helper()
	registerAlice(t, env)

	user, err := env.db.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)

	token, err := env.tokens.Issue(user.ID, user.Username)
	require.NoError(t, err)
	return token
}

// doAuthed sends a request through RequireAuth to the given handler,
// the way the router wires the /api routes.
func doAuthed(env *testEnv, h http.HandlerFunc, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	auth.RequireAuth(env.tokens)(h).ServeHTTP(rr, req)
	return rr
}

func aliceRecord(t *testing.T, env *testEnv) *model.User {
	t.Helper()
	user, err := env.db.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	return user
}

func TestHandleUserInfo(t *testing.T) {
	t.Run("returns the profile", func(t *testing.T) {
		env := newTestEnv(t)
		token := loginAlice(t, env)

		rr := doAuthed(env, env.settingsHandler.HandleUserInfo, http.MethodGet, "/api/userinfo", token, "")

		require.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, "Alice A", body["fullName"])
		assert.Nil(t, body["bio"])
	})

	t.Run("missing token", func(t *testing.T) {
		env := newTestEnv(t)

		rr := doAuthed(env, env.settingsHandler.HandleUserInfo, http.MethodGet, "/api/userinfo", "", "")

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		env := newTestEnv(t)

		rr := doAuthed(env, env.settingsHandler.HandleUserInfo, http.MethodGet, "/api/userinfo", "not.a.token", "")

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestHandleUpdateSettings(t *testing.T) {
	t.Run("sparse update applies only supplied fields", func(t *testing.T) {
		env := newTestEnv(t)
		token := loginAlice(t, env)

		rr := doAuthed(env, env.settingsHandler.HandleUpdateSettings,
			http.MethodPut, "/api/updatesettings", token, `{"bio":"painter"}`)

		require.Equal(t, http.StatusOK, rr.Code)

		user := aliceRecord(t, env)
		require.NotNil(t, user.Bio)
		assert.Equal(t, "painter", *user.Bio)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "Alice A", user.FullName)
	})

	t.Run("explicit empty bio clears it", func(t *testing.T) {
		env := newTestEnv(t)
		token := loginAlice(t, env)

		rr := doAuthed(env, env.settingsHandler.HandleUpdateSettings,
			http.MethodPut, "/api/updatesettings", token, `{"bio":"painter"}`)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = doAuthed(env, env.settingsHandler.HandleUpdateSettings,
			http.MethodPut, "/api/updatesettings", token, `{"bio":""}`)
		require.Equal(t, http.StatusOK, rr.Code)

		assert.Nil(t, aliceRecord(t, env).Bio)
	})

	t.Run("validation failures come back field-keyed", func(t *testing.T) {
		env := newTestEnv(t)
		token := loginAlice(t, env)

		rr := doAuthed(env, env.settingsHandler.HandleUpdateSettings,
			http.MethodPut, "/api/updatesettings", token,
			`{"username":"x","password":"Secret123!","newPassword":"NewSecret99","retypePassword":"Different99"}`)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		body := decodeBody(t, rr)
		assert.Contains(t, body, "username")
		assert.Equal(t, "The new passwords must be equal", body["password"])
	})

	t.Run("password change requires the current password", func(t *testing.T) {
		env := newTestEnv(t)
		token := loginAlice(t, env)

		rr := doAuthed(env, env.settingsHandler.HandleUpdateSettings,
			http.MethodPut, "/api/updatesettings", token,
			`{"password":"WrongPass1","newPassword":"NewSecret99","retypePassword":"NewSecret99"}`)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Password is incorrect", decodeBody(t, rr)["password"])
	})
}

func TestHandleUpdateImage(t *testing.T) {
	t.Run("profile image", func(t *testing.T) {
		env := newTestEnv(t)
		token := loginAlice(t, env)

		req := httptest.NewRequest(http.MethodPost, "/api/userimage/profileImage",
			bytes.NewBufferString(`{"imgurl":"/img/alice.png"}`))
		req.Header.Set("Authorization", "Bearer "+token)
		req.SetPathValue("image", "profileImage")
		rr := httptest.NewRecorder()
		auth.RequireAuth(env.tokens)(http.HandlerFunc(env.settingsHandler.HandleUpdateImage)).ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "/img/alice.png", aliceRecord(t, env).ProfileImage)
	})

	t.Run("unknown image kind", func(t *testing.T) {
		env := newTestEnv(t)
		token := loginAlice(t, env)

		req := httptest.NewRequest(http.MethodPost, "/api/userimage/passwordHash",
			bytes.NewBufferString(`{"imgurl":"x"}`))
		req.Header.Set("Authorization", "Bearer "+token)
		req.SetPathValue("image", "passwordHash")
		rr := httptest.NewRecorder()
		auth.RequireAuth(env.tokens)(http.HandlerFunc(env.settingsHandler.HandleUpdateImage)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
