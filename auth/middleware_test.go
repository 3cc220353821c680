package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/todoserve-go/users"
)

// viewerCapture is a terminal handler that records the viewer it saw.
type viewerCapture struct {
	called bool
	viewer *Viewer
}

func (c *viewerCapture) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.viewer = ViewerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func runMiddleware(t *testing.T, tokens *TokenService, store users.Store, authHeader string) (*viewerCapture, *httptest.ResponseRecorder) {
	t.Helper()

	capture := &viewerCapture{}
	handler := Authenticator(tokens, store)(capture.handler())

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return capture, rec
}

func TestAuthenticatorMissingHeaderIsAnonymous(t *testing.T) {
	t.Parallel()

	tokens := newTestTokenService(t, "secret", time.Hour)
	capture, rec := runMiddleware(t, tokens, users.NewMemoryStore(), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, capture.called)
	assert.Nil(t, capture.viewer)
}

func TestAuthenticatorNonBearerHeaderIsAnonymous(t *testing.T) {
	t.Parallel()

	tokens := newTestTokenService(t, "secret", time.Hour)
	capture, rec := runMiddleware(t, tokens, users.NewMemoryStore(), "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, capture.called)
	assert.Nil(t, capture.viewer)
}

func TestAuthenticatorGarbageTokenIsAnonymous(t *testing.T) {
	t.Parallel()

	tokens := newTestTokenService(t, "secret", time.Hour)
	capture, rec := runMiddleware(t, tokens, users.NewMemoryStore(), "Bearer not.a.jwt")

	// A bad token must not crash or reject the request; it behaves exactly
	// like no token.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, capture.called)
	assert.Nil(t, capture.viewer)
}

func TestAuthenticatorExpiredTokenIsAnonymous(t *testing.T) {
	t.Parallel()

	store := users.NewMemoryStore()
	user, err := store.Create(context.Background(), "alice", "irrelevant")
	require.NoError(t, err)

	expired := newTestTokenService(t, "secret", -1*time.Minute)
	tok, err := expired.Issue(user.ID)
	require.NoError(t, err)

	verifier := newTestTokenService(t, "secret", time.Hour)
	capture, rec := runMiddleware(t, verifier, store, "Bearer "+tok)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, capture.called)
	assert.Nil(t, capture.viewer)
}

func TestAuthenticatorValidTokenAttachesViewer(t *testing.T) {
	t.Parallel()

	store := users.NewMemoryStore()
	user, err := store.Create(context.Background(), "alice", "irrelevant")
	require.NoError(t, err)

	tokens := newTestTokenService(t, "secret", time.Hour)
	tok, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	capture, rec := runMiddleware(t, tokens, store, "Bearer "+tok)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, capture.viewer)
	assert.Equal(t, user.ID, capture.viewer.ID)
	assert.Equal(t, "alice", capture.viewer.Username)
}

func TestAuthenticatorDeletedUserIsAnonymous(t *testing.T) {
	t.Parallel()

	store := users.NewMemoryStore()
	user, err := store.Create(context.Background(), "alice", "irrelevant")
	require.NoError(t, err)

	tokens := newTestTokenService(t, "secret", time.Hour)
	tok, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	store.Delete(user.ID)

	capture, rec := runMiddleware(t, tokens, store, "Bearer "+tok)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, capture.called)
	assert.Nil(t, capture.viewer)
}
