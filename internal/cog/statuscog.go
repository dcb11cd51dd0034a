package cog

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/marius851000/spritecollab-srv/internal/collab"
	"github.com/marius851000/spritecollab-srv/internal/config"
	"github.com/marius851000/spritecollab-srv/internal/discord"
)

// StatusSource is the server state the status command reports on.
type StatusSource interface {
	Data() *collab.Data
	LastRefresh() time.Time
	Refreshing() bool
}

type StatusConfig struct {
	Enabled bool   `json:"Enabled"`
	Command string `json:"Command"`
	Color   string `json:"Color"`
}

// StatusCog registers a slash command replying with an embed that
// summarizes the tracked data and refresh state.
type StatusCog struct {
	Cog

	ConfigName string

	Session *discordgo.Session
	Status  StatusSource
	Config  *StatusConfig
}

func (m *StatusCog) Name() string {
	return "StatusCog"
}

func (m *StatusCog) Init() error {

	var statusConfig StatusConfig
	if err := config.LoadConfig(m.ConfigName, &statusConfig); err != nil {
		return err
	}
	m.Config = &statusConfig

	if !statusConfig.Enabled {
		config.Logger.Infoln("Status command disabled in configs")
		return nil
	}
	if m.Config.Command == "" {
		m.Config.Command = "spritecollab-status"
	}

	m.Session.AddHandlerOnce(func(s *discordgo.Session, r *discordgo.Ready) {
		config.Logger.Infoln("Bot is ready, registering commands...")
		appCommand := &discordgo.ApplicationCommand{
			Name:        m.Config.Command,
			Description: "Show the state of the SpriteCollab mirror",
		}
		if _, err := s.ApplicationCommandCreate(s.State.User.ID, "", appCommand); err != nil {
			config.Logger.Errorf("Failed to register command '%s': %v", m.Config.Command, err)
		}
	})

	m.Session.AddHandler(m.HandleInteraction)

	config.Logger.Infoln(m.Name(), "initialized!")
	return nil
}

func (m *StatusCog) HandleInteraction(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	if interaction.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if interaction.ApplicationCommandData().Name != m.Config.Command {
		return
	}

	d := m.Status.Data()
	state := "Ready"
	if m.Status.Refreshing() {
		state = "Refreshing"
	}
	description := fmt.Sprintf(
		"**Monsters tracked**: %d\n**Credits**: %d\n**Last refresh**: %s\n**State**: %s",
		len(d.Tracker),
		len(d.CreditNames),
		m.Status.LastRefresh().Format(time.RFC1123),
		state,
	)

	embed, err := discord.CreateEmbed(discord.EmbedData{
		Title:       "SpriteCollab Mirror",
		Description: description,
		Color:       m.Config.Color,
	})
	if err != nil {
		config.Logger.Errorln(err)
		return
	}

	err = session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		config.Logger.Errorln(err)
	}
}
