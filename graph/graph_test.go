package graph

import (
	"context"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/todoserve-go/auth"
	"github.com/user/todoserve-go/config"
	"github.com/user/todoserve-go/todos"
	"github.com/user/todoserve-go/users"
)

// testEnv wires the real schema to in-memory stores so resolver behavior is
// exercised exactly as an HTTP client would see it, minus the transport.
type testEnv struct {
	schema graphql.Schema
	users  *users.MemoryStore
	todos  *todos.MemoryStore
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userStore := users.NewMemoryStore()
	todoStore := todos.NewMemoryStore()

	tokens, err := auth.NewTokenService(config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenDuration: time.Hour,
		Issuer:        "todoserve-test",
	})
	require.NoError(t, err)

	schema, err := NewSchema(&Resolver{
		Users:  userStore,
		Todos:  todoStore,
		Tokens: tokens,
	})
	require.NoError(t, err)

	return &testEnv{
		schema: schema,
		users:  userStore,
		todos:  todoStore,
		tokens: tokens,
	}
}

// exec runs a query against the schema with the given context and variables.
func (e *testEnv) exec(ctx context.Context, query string, vars map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         e.schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
}

// createUser inserts a user directly into the store and returns it together
// with a context carrying that user as the viewer. The stored password hash
// is a placeholder; tests that care about passwords go through register.
func (e *testEnv) createUser(t *testing.T, username string) (*users.User, context.Context) {
	t.Helper()
	user, err := e.users.Create(context.Background(), username, "$2a$10$placeholderplaceholderplaceholderplaceha")
	require.NoError(t, err)
	ctx := auth.WithViewer(context.Background(), &auth.Viewer{ID: user.ID, Username: user.Username})
	return user, ctx
}

// createTodo inserts a todo directly into the store, bypassing the resolver
// layer, so authorization tests start from known data.
func (e *testEnv) createTodo(t *testing.T, userID int, title string) *todos.Todo {
	t.Helper()
	todo, err := e.todos.Create(context.Background(), todos.CreateParams{Title: title, UserID: userID})
	require.NoError(t, err)
	return todo
}

// requireSingleError asserts the result carries exactly one error with the
// given client-visible message and extensions code.
func requireSingleError(t *testing.T, res *graphql.Result, message, code string) {
	t.Helper()
	require.Len(t, res.Errors, 1)
	assert.Equal(t, message, res.Errors[0].Message)
	require.NotNil(t, res.Errors[0].Extensions)
	assert.Equal(t, code, res.Errors[0].Extensions["code"])
}

// data unwraps the top-level data object of a successful result.
func data(t *testing.T, res *graphql.Result) map[string]interface{} {
	t.Helper()
	require.Empty(t, res.Errors)
	m, ok := res.Data.(map[string]interface{})
	require.True(t, ok)
	return m
}

func obj(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	m, ok := v.(map[string]interface{})
	require.True(t, ok)
	return m
}

func list(t *testing.T, v interface{}) []interface{} {
	t.Helper()
	l, ok := v.([]interface{})
	require.True(t, ok)
	return l
}
