package datafiles

import (
	"encoding/json"
	"os"
)

// SpriteConfig is the content of sprite_config.json: the ordered emotion and
// action lists and the portrait sheet geometry shared by the whole
// repository.
type SpriteConfig struct {
	PortraitSize  int      `json:"portrait_size"`
	PortraitTileX int      `json:"portrait_tile_x"`
	PortraitTileY int      `json:"portrait_tile_y"`
	Emotions      []string `json:"emotions"`
	Actions       []string `json:"actions"`

	// Indexes into Emotions/Actions that a form needs for each completion
	// phase.
	CompletionEmotions [][]int `json:"completion_emotions"`
	CompletionActions  [][]int `json:"completion_actions"`
}

func ReadSpriteConfig(path string) (SpriteConfig, error) {
	var cfg SpriteConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, &ReadError{Kind: KindIO, Path: path, Err: err}
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, &ReadError{Kind: KindJSON, Path: path, Line: jsonErrorLine(data, err), Err: err}
	}
	return cfg, nil
}
