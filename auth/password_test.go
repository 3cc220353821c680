package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/todoserve-go/apperror"
)

func TestHashPasswordSaltsPerCall(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("hunter22")
	require.NoError(t, err)
	second, err := HashPassword("hunter22")
	require.NoError(t, err)

	// Random salt per call: the stored strings differ but both verify.
	assert.NotEqual(t, first, second)

	ok, err := CheckPassword("hunter22", first)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = CheckPassword("hunter22", second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckPasswordMismatch(t *testing.T) {
	t.Parallel()

	hashed, err := HashPassword("hunter22")
	require.NoError(t, err)

	ok, err := CheckPassword("wrong-password", hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	t.Parallel()

	// A corrupted stored hash must surface as an internal error, not be
	// swallowed as a plain mismatch.
	ok, err := CheckPassword("hunter22", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.False(t, ok)

	appErr, found := apperror.FromError(err)
	require.True(t, found)
	assert.Equal(t, apperror.InternalError, appErr.Type)
}
