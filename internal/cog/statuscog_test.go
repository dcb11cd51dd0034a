package cog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marius851000/spritecollab-srv/internal/config"
)

func init() {
	config.Logger = zap.NewNop().Sugar()
}

func newClosedSession(t *testing.T) *discordgo.Session {
	t.Helper()
	s, err := discordgo.New("Bot token")
	require.NoError(t, err)
	return s
}

func writeStatusConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "status.json5"), []byte(content), 0o644))
	t.Setenv("CONFIG_DIR", dir)
	config.Load()
}

// Init runs before the gateway connection opens; it only hooks the READY
// event, which fires during Open, so it must succeed on a closed session.
func TestInitOnClosedSession(t *testing.T) {
	writeStatusConfig(t, `{ Enabled: true, Color: "0x2ecc71" }`)

	m := &StatusCog{ConfigName: "status.json5", Session: newClosedSession(t)}
	require.NoError(t, m.Init())
	assert.Equal(t, "spritecollab-status", m.Config.Command)
	assert.False(t, m.Session.DataReady)
}

func TestInitDisabled(t *testing.T) {
	writeStatusConfig(t, `{ Enabled: false }`)

	m := &StatusCog{ConfigName: "status.json5", Session: newClosedSession(t)}
	require.NoError(t, m.Init())
	assert.Equal(t, "", m.Config.Command)
}

func TestHandleInteractionIgnoresOthers(t *testing.T) {
	m := &StatusCog{Config: &StatusConfig{Command: "spritecollab-status"}}

	// Neither a command interaction nor our command; both return before
	// touching the session or the data source.
	m.HandleInteraction(nil, &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{Type: discordgo.InteractionPing},
	})
	m.HandleInteraction(nil, &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{Name: "other"},
		},
	})
}
