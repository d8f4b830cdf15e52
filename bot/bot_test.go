/* bot_test.go
 * Contains unit tests for bot.go and ratelimit.go
 */

package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// region NewBot tests

func TestNewBot_Success(t *testing.T) {
	apiPtr := newTestAPI(t)

	b, err := NewBot("test_token", apiPtr, []string{"admin", " ", "1234"}, nil)

	require.NoError(t, err)
	assert.Equal(t, "test_token", b.BotToken)
	assert.Same(t, apiPtr, b.APIPtr)
	assert.NotNil(t, b.Limiter, "a nil limiter is replaced by an unlimited one")
	assert.True(t, b.isAdmin("999", "admin"))
	assert.True(t, b.isAdmin("1234", "someone"))
	assert.False(t, b.isAdmin("999", "someone"))
	assert.False(t, b.isAdmin("", ""), "blank admin entries are ignored")
}

func TestNewBot_MissingArguments(t *testing.T) {
	_, err := NewBot("", newTestAPI(t), nil, nil)
	assert.ErrorContains(t, err, "botToken is required")

	_, err = NewBot("token", nil, nil, nil)
	assert.ErrorContains(t, err, "api is required")
}

// endregion

// region parsing tests

func TestCommandName(t *testing.T) {
	tests := map[string]string{
		"&pick 1 Team A": "pick",
		"&HELP":          "help",
		"  &scores  ":    "scores",
		"&":              "",
		"pick 1 Team A":  "",
		"$help":          "",
		"":               "",
	}
	for content, want := range tests {
		assert.Equal(t, want, commandName(content), content)
	}
}

func TestCommandArgs(t *testing.T) {
	assert.Equal(t, "1 Team A", commandArgs("&pick   1 Team A "))
	assert.Equal(t, "", commandArgs("&scores"))
}

func TestSplitArgs(t *testing.T) {
	args, err := splitArgs(' ', `3  "Team Vitality"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", `"Team Vitality"`}, args)

	args, err = splitArgs(',', `Team A,"Team B",Final ,2025-06-01 18:00`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Team A", `"Team B"`, "Final", "2025-06-01 18:00"}, args)

	_, err = splitArgs(' ', `3 "Team Vitality`)
	assert.Error(t, err, "unbalanced quotes are rejected")
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "The MongolZ", unquote(`"The MongolZ"`))
	assert.Equal(t, "The MongolZ", unquote("“The MongolZ”"))
	assert.Equal(t, "G2", unquote(" G2 "))
}

// endregion

// region UserLimiter tests

func TestUserLimiter_PerUserBurst(t *testing.T) {
	l := NewUserLimiter(0.001, 2)

	assert.True(t, l.Allow("alice"))
	assert.True(t, l.Allow("alice"))
	assert.False(t, l.Allow("alice"), "burst exhausted")
	assert.True(t, l.Allow("bob"), "each user has their own bucket")
}

func TestUserLimiter_Disabled(t *testing.T) {
	l := NewUserLimiter(0, 0)

	for i := 0; i < 100; i++ {
		require.True(t, l.Allow("alice"))
	}
	assert.Zero(t, l.tracked(), "an unlimited limiter keeps no buckets")
}

func TestUserLimiter_EvictsIdleUsers(t *testing.T) {
	clock := time.Unix(1700000000, 0)
	l := NewUserLimiter(1, 2)
	l.now = func() time.Time { return clock }

	assert.True(t, l.Allow("alice"))
	assert.True(t, l.Allow("alice"))
	assert.False(t, l.Allow("alice"))
	assert.Equal(t, 1, l.tracked())

	clock = clock.Add(minSweepInterval)
	assert.True(t, l.Allow("bob"))
	assert.Equal(t, 1, l.tracked(), "alice's bucket refilled and was dropped")

	assert.True(t, l.Allow("alice"))
	assert.True(t, l.Allow("alice"))
	assert.False(t, l.Allow("alice"), "a recreated bucket still enforces the burst")
	assert.Equal(t, 2, l.tracked())
}

func TestUserLimiter_KeepsRecentUsers(t *testing.T) {
	clock := time.Unix(1700000000, 0)
	l := NewUserLimiter(0.001, 1)
	l.now = func() time.Time { return clock }

	assert.True(t, l.Allow("alice"))
	clock = clock.Add(minSweepInterval)
	assert.False(t, l.Allow("alice"), "a bucket that has not refilled is kept")
	assert.True(t, l.Allow("bob"))
	assert.Equal(t, 2, l.tracked())
}

// endregion
