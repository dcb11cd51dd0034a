// Package collab is the client for the SpriteCollab data repository: it
// mirrors the git repository, parses its datafiles into an immutable
// snapshot and owns the query cache tied to that snapshot.
package collab

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marius851000/spritecollab-srv/internal/cache"
	"github.com/marius851000/spritecollab-srv/internal/config"
	"github.com/marius851000/spritecollab-srv/internal/datafiles"
	"github.com/marius851000/spritecollab-srv/internal/reporting"
)

// GitRepoDir is the checkout directory inside the workdir.
const GitRepoDir = "spritecollab"

// Data is one immutable snapshot of the parsed repository.
type Data struct {
	SpriteConfig datafiles.SpriteConfig
	Tracker      datafiles.Tracker
	CreditNames  datafiles.CreditNames
}

type SpriteCollab struct {
	mu          sync.RWMutex
	current     *Data
	lastRefresh time.Time

	refreshing atomic.Bool

	reporting *reporting.Reporting
	store     cache.Store
	workdir   string
	gitRepo   string
}

// New mirrors the repository, performs the initial data load and returns
// the client. An initial load failure is fatal: without data there is
// nothing to serve.
func New(ctx context.Context, workdir, gitRepo string, store cache.Store, rep *reporting.Reporting) (*SpriteCollab, error) {
	s := &SpriteCollab{
		reporting: rep,
		store:     store,
		workdir:   workdir,
		gitRepo:   gitRepo,
	}
	data, err := s.refreshData(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing data: %w", err)
	}
	s.current = data
	s.lastRefresh = time.Now()
	rep.ReportDatafiles(datafiles.OK())
	return s, nil
}

// Data returns the current snapshot. The snapshot is never mutated; callers
// may hold on to it across a refresh.
func (s *SpriteCollab) Data() *Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Store returns the query cache tied to the current snapshot.
func (s *SpriteCollab) Store() cache.Store { return s.store }

func (s *SpriteCollab) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}

func (s *SpriteCollab) Refreshing() bool { return s.refreshing.Load() }

// Refresh updates the mirror and swaps in a new snapshot. Does nothing if a
// refresh is already running. The cache is flushed and the Discord user
// cache pre-warmed only when the data actually changed.
func (s *SpriteCollab) Refresh(ctx context.Context) {
	if !s.refreshing.CompareAndSwap(false, true) {
		return
	}
	defer s.refreshing.Store(false)

	data, err := s.refreshData(ctx)
	if err != nil {
		config.Logger.Errorf("Error refreshing data: %v. Gave up.", err)
		return
	}
	s.reporting.ReportDatafiles(datafiles.OK())

	s.mu.Lock()
	changed := !reflect.DeepEqual(s.current, data)
	s.current = data
	s.lastRefresh = time.Now()
	s.mu.Unlock()

	if changed {
		if err := s.store.Flush(ctx); err != nil {
			config.Logger.Warnf("Failed to flush cache after refresh: %v", err)
		}
		s.preWarmDiscord(ctx)
	}
}

func (s *SpriteCollab) refreshData(ctx context.Context) (*Data, error) {
	config.Logger.Debugln("Refreshing data...")
	repoPath := filepath.Join(s.workdir, GitRepoDir)
	if err := refreshRepo(repoPath, s.gitRepo); err != nil {
		return nil, err
	}

	spriteConfig, err := datafiles.ReadAndReport(filepath.Join(repoPath, "sprite_config.json"), datafiles.ReadSpriteConfig, s.reporting)
	if err != nil {
		return nil, err
	}
	tracker, err := datafiles.ReadAndReport(filepath.Join(repoPath, "tracker.json"), datafiles.ReadTracker, s.reporting)
	if err != nil {
		return nil, err
	}
	creditNames, err := datafiles.ReadAndReport(filepath.Join(repoPath, "credit_names.txt"), datafiles.ReadCreditNames, s.reporting)
	if err != nil {
		return nil, err
	}

	// Every form with existing sprites must carry a valid AnimData.xml.
	if animErrs := datafiles.CheckAnimData(repoPath, tracker); len(animErrs) > 0 {
		s.reporting.ReportDatafiles(datafiles.Report{AnimErrors: animErrs})
		return nil, errors.New("one or more AnimData.xml files failed validation, see the log reports for further information")
	}

	return &Data{
		SpriteConfig: spriteConfig,
		Tracker:      tracker,
		CreditNames:  creditNames,
	}, nil
}

// preWarmDiscord asks the bot to resolve every numeric credit ID so later
// queries hit the user cache.
func (s *SpriteCollab) preWarmDiscord(ctx context.Context) {
	bot := s.reporting.Bot()
	if bot == nil {
		return
	}
	config.Logger.Debugln("Asking Discord Bot to pre-warm user list...")
	creditNames := s.Data().CreditNames
	g, ctx := errgroup.WithContext(ctx)
	for _, credit := range creditNames {
		if _, err := strconv.ParseUint(credit.CreditID, 10, 64); err != nil {
			continue
		}
		id := credit.CreditID
		g.Go(func() error {
			return bot.PreWarmUser(ctx, id)
		})
	}
	if err := g.Wait(); err != nil {
		config.Logger.Debugf("Pre-warming the user list did not complete: %v", err)
	}
}
