package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_ParsesURL(t *testing.T) {
	c, err := NewClient("redis://:secret@localhost:6390/2")
	require.NoError(t, err)
	defer c.Close()

	opts := c.Options()
	assert.Equal(t, "localhost:6390", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("http://localhost:6379")
	assert.Error(t, err)
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), "redis://127.0.0.1:1/0")
	assert.Error(t, err)
}
