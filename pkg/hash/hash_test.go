package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	stored, err := Password("s3cret-password")
	require.NoError(t, err)

	assert.True(t, Verify("s3cret-password", stored))
	assert.False(t, Verify("wrong-password", stored))
}

func TestPasswordSaltsEveryCall(t *testing.T) {
	a, err := Password("same-input")
	require.NoError(t, err)
	b, err := Password("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, Verify("same-input", a))
	assert.True(t, Verify("same-input", b))
}

func TestVerifyMalformedStored(t *testing.T) {
	cases := []string{
		"",
		"no-separator",
		"not-base64!:also-not-base64!",
		"dmFsaWQ=:",
		":dmFsaWQ=",
	}
	for _, stored := range cases {
		assert.False(t, Verify("anything", stored), "stored=%q", stored)
	}
}

func TestStoredFormat(t *testing.T) {
	stored, err := Password("x")
	require.NoError(t, err)

	parts := strings.Split(stored, ":")
	require.Len(t, parts, 2)
	assert.NotEmpty(t, parts[0])
	assert.NotEmpty(t, parts[1])
}
