package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStateToken(t *testing.T) {
	first, err := generateStateToken()
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := generateStateToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
