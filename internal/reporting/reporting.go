// Package reporting forwards datafile ingest reports to the log and, when a
// bot is attached, to a Discord channel. Failure messages are squelched for
// 12 hours; a recovery message is sent once the update works again.
package reporting

import (
	"context"
	"sync"
	"time"

	"github.com/marius851000/spritecollab-srv/internal/config"
	"github.com/marius851000/spritecollab-srv/internal/datafiles"
	"github.com/marius851000/spritecollab-srv/internal/discord"
)

const updateInfo = "The data update failed. I will not send any messages about further failures for 12h. I will send a message when the update works again."

const squelchWindow = 12 * time.Hour

// DiscordBot is what reporting and the refresh pre-warm need from the bot.
type DiscordBot interface {
	SendEmbed(channelID string, data discord.EmbedData) error
	PreWarmUser(ctx context.Context, id string) error
}

type Reporting struct {
	bot       DiscordBot
	channelID string

	mu     sync.Mutex
	closed bool
	ch     chan datafiles.Report
	done   chan struct{}

	now func() time.Time

	// Consumer goroutine state.
	failing    bool
	lastNotice time.Time
}

// New starts the report consumer. bot may be nil when Discord is disabled.
func New(bot DiscordBot, channelID string) *Reporting {
	r := &Reporting{
		bot:       bot,
		channelID: channelID,
		ch:        make(chan datafiles.Report, 16),
		done:      make(chan struct{}),
		now:       time.Now,
	}
	go r.run()
	return r
}

// Bot returns the attached bot, nil when Discord is disabled.
func (r *Reporting) Bot() DiscordBot { return r.bot }

// ReportDatafiles queues a report. Implements datafiles.Reporter. Reports
// arriving after Close are dropped.
func (r *Reporting) ReportDatafiles(rep datafiles.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.ch <- rep
}

// Close drains the queue and stops the consumer. Safe to call twice.
func (r *Reporting) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.ch)
	r.mu.Unlock()
	<-r.done
}

func (r *Reporting) run() {
	defer close(r.done)
	for rep := range r.ch {
		r.handle(rep)
	}
}

func (r *Reporting) handle(rep datafiles.Report) {
	if rep.IsOK() {
		if r.failing {
			r.failing = false
			r.send("SpriteCollab Update Recovered", "The SpriteCollab data update is working again.", recoveryColor)
		}
		return
	}

	config.Logger.Errorf("Data update failed: %s", rep.FormatShort())

	if r.failing && r.now().Sub(r.lastNotice) < squelchWindow {
		return
	}
	r.failing = true
	r.lastNotice = r.now()
	r.send("Failed SpriteCollab Update", discordBody(rep), failureColor)
}

const (
	failureColor  = "0xff0000"
	recoveryColor = "0x2ecc71"
)

func (r *Reporting) send(title, description, color string) {
	if r.bot == nil || r.channelID == "" {
		return
	}
	err := r.bot.SendEmbed(r.channelID, discord.EmbedData{
		Title:       title,
		Description: description,
		Color:       color,
	})
	if err != nil {
		config.Logger.Warnf("Failed to send report to Discord: %v", err)
	}
}
