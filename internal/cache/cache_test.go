package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "taskhub:user:user-1", Key("user", "user-1"))
	assert.Equal(t, "taskhub:refresh_token:tok-1", Key("refresh_token", "tok-1"))
}

func TestNilClientBehavesLikeMiss(t *testing.T) {
	var c *Client
	ctx := context.Background()

	data, err := c.Get(ctx, Key("user", "user-1"))
	assert.NoError(t, err)
	assert.Nil(t, data)

	assert.NoError(t, c.Set(ctx, Key("user", "user-1"), []byte("x"), time.Minute))
	assert.NoError(t, c.Delete(ctx, Key("user", "user-1")))
}
