// Package srv wires everything together and runs the server.
package srv

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/graphql-go/handler"

	"github.com/marius851000/spritecollab-srv/internal/cache"
	"github.com/marius851000/spritecollab-srv/internal/cog"
	"github.com/marius851000/spritecollab-srv/internal/collab"
	"github.com/marius851000/spritecollab-srv/internal/config"
	"github.com/marius851000/spritecollab-srv/internal/discord"
	"github.com/marius851000/spritecollab-srv/internal/graph"
	"github.com/marius851000/spritecollab-srv/internal/reporting"
	"github.com/marius851000/spritecollab-srv/internal/server"
)

type reportingConfig struct {
	Enabled       bool   `json:"Enabled"`
	UpdateChannel string `json:"Update_channel"`
}

func Run() {
	config.Load()
	cfg := config.Configuration
	ctx := context.Background()

	// The session stays unopened until the cogs attached their handlers;
	// discordgo dispatches READY while Open runs.
	var bot *discord.Bot
	if cfg.DiscordToken != "" {
		var err error
		bot, err = discord.New(cfg.DiscordToken)
		if err != nil {
			config.Logger.Fatal("Failed to build the Discord session: ", err)
		}
	} else {
		config.Logger.Infoln("No Discord token configured, running without the bot.")
	}

	var updateChannel string
	var repCfg reportingConfig
	if err := config.LoadConfig("reporting.json5", &repCfg); err != nil {
		config.Logger.Warnf("No reporting config loaded: %v", err)
	} else if repCfg.Enabled {
		updateChannel = repCfg.UpdateChannel
	}

	var botForReports reporting.DiscordBot
	if bot != nil {
		botForReports = bot
	}
	rep := reporting.New(botForReports, updateChannel)
	defer rep.Close()

	store, err := cache.NewRedis(ctx, cfg.RedisHost, cfg.RedisPort)
	if err != nil {
		config.Logger.Fatal("Failed to set up the cache: ", err)
	}
	defer store.Close()

	sc, err := collab.New(ctx, cfg.Workdir, cfg.GitRepo, store, rep)
	if err != nil {
		config.Logger.Fatal("Error initializing data: ", err)
	}

	var users graph.UserResolver
	if bot != nil {
		initCogs(bot, sc)
		if err := bot.Open(); err != nil {
			config.Logger.Fatal("Failed to connect to Discord: ", err)
		}
		defer bot.Close()
		users = bot
	}

	schema, err := graph.NewSchema(sc, graph.URLs{SrvURL: cfg.SrvURL, AssetsURL: cfg.GitAssetsURL}, users)
	if err != nil {
		config.Logger.Fatal("Failed to build the GraphQL schema: ", err)
	}
	gql := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})

	httpSrv := server.New(cfg.Address, sc, filepath.Join(cfg.Workdir, collab.GitRepoDir), gql)
	httpSrv.Start()

	ticker := time.NewTicker(cfg.UpdateInterval)
	defer ticker.Stop()
	stopRefresh := make(chan struct{})
	refreshDone := make(chan struct{})
	go func() {
		defer close(refreshDone)
		for {
			select {
			case <-ticker.C:
				sc.Refresh(ctx)
			case <-stopRefresh:
				return
			}
		}
	}()

	config.Logger.Infoln("Server is running.")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sig

	config.Logger.Infoln("Shutting down.")
	// An in-flight refresh must finish before the deferred rep.Close runs,
	// or its reports would land on a closed queue.
	close(stopRefresh)
	<-refreshDone
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Warnf("HTTP shutdown: %v", err)
	}
}

func initCogs(bot *discord.Bot, sc *collab.SpriteCollab) {

	cogList := []cog.Cog{
		&cog.StatusCog{
			ConfigName: "status.json5",
			Session:    bot.Session,
			Status:     sc,
		},
	}

	config.Logger.Infoln("Loading cogs ...")
	for _, c := range cogList {
		err := c.Init()
		if err != nil {
			config.Logger.Fatal("Error initializing cog:", c.Name(), err)
		}
	}
}
