package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// New must leave the session unopened: handlers attached after Open miss the
// READY event, so cog setup needs a closed session to hook into.
func TestNewLeavesSessionClosed(t *testing.T) {
	bot, err := New("token")
	require.NoError(t, err)
	assert.False(t, bot.Session.DataReady)
	assert.Equal(t, discordgo.IntentsGuilds, bot.Session.Identify.Intents)
}

func TestDisplayName(t *testing.T) {
	bot := &Bot{}
	bot.users.Store("1001", &discordgo.User{Username: "alice"})

	name, ok := bot.DisplayName("1001")
	assert.True(t, ok)
	assert.Equal(t, "alice", name)

	// Misses never reach the API.
	_, ok = bot.DisplayName("9999")
	assert.False(t, ok)
}
