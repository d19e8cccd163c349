package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientFromURLInvalid(t *testing.T) {
	_, err := NewClientFromURL(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, "не задан адрес redis", err.Error())

	_, err = NewClientFromURL(context.Background(), "http://localhost:6379")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "разбор адреса redis")
}
