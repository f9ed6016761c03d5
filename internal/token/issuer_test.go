package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{Secret: "test-secret", AccessTTL: 15 * time.Minute, RefreshTTL: 7 * 24 * time.Hour}
}

func TestIssueAndParse(t *testing.T) {
	i := NewIssuer(testConfig())

	pair, err := i.Issue(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := i.Parse(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	claims, err = i.Parse(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestIssue_TokensAreDistinct(t *testing.T) {
	i := NewIssuer(testConfig())

	first, err := i.Issue(1, "u")
	require.NoError(t, err)
	second, err := i.Issue(1, "u")
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.NotEqual(t, first.AccessToken, first.RefreshToken)
}

func TestParse_WrongSecret(t *testing.T) {
	i := NewIssuer(testConfig())
	other := NewIssuer(Config{Secret: "another-secret", AccessTTL: time.Minute, RefreshTTL: time.Hour})

	pair, err := i.Issue(7, "bob")
	require.NoError(t, err)

	_, err = other.Parse(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	i := NewIssuer(Config{Secret: "test-secret", AccessTTL: -time.Minute, RefreshTTL: time.Hour})

	pair, err := i.Issue(7, "bob")
	require.NoError(t, err)

	_, err = i.Parse(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	i := NewIssuer(testConfig())
	_, err := i.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaimsContext(t *testing.T) {
	ctx := context.Background()

	_, ok := FromContext(ctx)
	assert.False(t, ok)

	want := &Claims{UserID: 9, Username: "carol"}
	got, ok := FromContext(NewContext(ctx, want))
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("REFRESH_TOKEN_TTL", "")

	cfg := ConfigFromEnv()
	assert.Equal(t, "defaultSecret", cfg.Secret)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("REFRESH_TOKEN_TTL", "48h")

	cfg := ConfigFromEnv()
	assert.Equal(t, "s3cr3t", cfg.Secret)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 48*time.Hour, cfg.RefreshTTL)
}
