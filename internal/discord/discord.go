package discord

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/marius851000/spritecollab-srv/internal/config"
)

// Bot wraps the discordgo session used for update reports and credit ID
// resolution. It keeps a user cache so credit lookups don't hit the Discord
// API on every query.
type Bot struct {
	Session *discordgo.Session

	users sync.Map // user ID -> *discordgo.User
}

// New builds the session without opening it. discordgo dispatches READY
// while Open runs, so every handler has to be attached before Open is
// called or it misses the event.
func New(token string) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds
	return &Bot{Session: session}, nil
}

// Open starts the gateway connection.
func (b *Bot) Open() error {
	if err := b.Session.Open(); err != nil {
		return err
	}
	config.Logger.Infoln("Connected to Discord.")
	return nil
}

func (b *Bot) Close() error {
	return b.Session.Close()
}

// User resolves a user ID, served from the cache when possible.
func (b *Bot) User(id string) (*discordgo.User, error) {
	if u, ok := b.users.Load(id); ok {
		return u.(*discordgo.User), nil
	}
	u, err := b.Session.User(id)
	if err != nil {
		return nil, err
	}
	b.users.Store(id, u)
	return u, nil
}

// DisplayName reports the cached username for a user ID. It never hits the
// API; the refresh pre-warm fills the cache, so credit resolution inside
// query handling stays free of network calls.
func (b *Bot) DisplayName(id string) (string, bool) {
	u, ok := b.users.Load(id)
	if !ok {
		return "", false
	}
	return u.(*discordgo.User).Username, true
}

// PreWarmUser fills the user cache for one ID ahead of queries.
func (b *Bot) PreWarmUser(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.User(id)
	return err
}

// SendEmbed posts an embed to a channel.
func (b *Bot) SendEmbed(channelID string, data EmbedData) error {
	embed, err := CreateEmbed(data)
	if err != nil {
		return err
	}
	_, err = b.Session.ChannelMessageSendEmbed(channelID, embed)
	return err
}
