package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func TestSignParseRoundTrip(t *testing.T) {
	c := NewCodec("s3cret", time.Hour)
	raw, exp, err := c.Sign("sess-1", "u-1", domain.RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := c.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.ID)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	raw, _, err := NewCodec("one", time.Hour).Sign("sess-1", "u-1", domain.RoleUser)
	require.NoError(t, err)

	_, err = NewCodec("two", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseRejectsExpired(t *testing.T) {
	c := NewCodec("s3cret", time.Minute)
	c.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, _, err := c.Sign("sess-1", "u-1", domain.RoleUser)
	require.NoError(t, err)

	c.now = time.Now
	_, err = c.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseRejectsGarbage(t *testing.T) {
	c := NewCodec("s3cret", time.Hour)
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := c.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalid, raw)
	}
}
