package collab

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/marius851000/spritecollab-srv/internal/config"
)

// refreshRepo brings the checkout at path up to date with origin/master.
// When updating fails for any reason the checkout is thrown away and cloned
// fresh.
func refreshRepo(path, cloneURL string) error {
	if _, err := os.Stat(path); err == nil {
		if updateErr := updateRepo(path); updateErr != nil {
			config.Logger.Warnf("Failed to update repo, deleting and cloning it again: %v", updateErr)
			if err := os.RemoveAll(path); err != nil {
				config.Logger.Warnf("Failed to delete repo directory: %v", err)
			}
			return cloneRepo(path, cloneURL)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return cloneRepo(path, cloneURL)
}

func updateRepo(path string) error {
	if _, err := os.Stat(filepath.Join(path, ".git")); err != nil {
		return fmt.Errorf("missing .git directory")
	}
	repo, err := git.PlainOpen(path)
	if err != nil {
		return err
	}
	err = repo.Fetch(&git.FetchOptions{
		RemoteName: "origin",
		RefSpecs:   []gitconfig.RefSpec{"+refs/heads/master:refs/remotes/origin/master"},
		Force:      true,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return err
	}
	ref, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", "master"), true)
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Reset(&git.ResetOptions{Mode: git.HardReset, Commit: ref.Hash()})
}

func cloneRepo(path, cloneURL string) error {
	config.Logger.Infoln("Cloning SpriteCollab repo...")
	if _, err := git.PlainClone(path, false, &git.CloneOptions{URL: cloneURL}); err != nil {
		return err
	}
	config.Logger.Infoln("Cloning SpriteCollab repo. Done!")
	return nil
}
