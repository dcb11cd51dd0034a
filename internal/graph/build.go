package graph

import (
	"strings"

	"github.com/marius851000/spritecollab-srv/internal/assets"
	"github.com/marius851000/spritecollab-srv/internal/collab"
	"github.com/marius851000/spritecollab-srv/internal/datafiles"
)

// builder materializes one query's worth of plain maps over a single data
// snapshot, so the default resolver can walk them; the snapshot is
// immutable, so there is nothing to lazy-load.
type builder struct {
	d     *collab.Data
	urls  URLs
	users UserResolver
}

func (b *builder) config() map[string]interface{} {
	cfg := b.d.SpriteConfig
	return map[string]interface{}{
		"portraitSize":       cfg.PortraitSize,
		"portraitTileX":      cfg.PortraitTileX,
		"portraitTileY":      cfg.PortraitTileY,
		"emotions":           cfg.Emotions,
		"actions":            cfg.Actions,
		"completionEmotions": cfg.CompletionEmotions,
		"completionActions":  cfg.CompletionActions,
	}
}

// credit resolves a credit ID against credit_names.txt, falling back to the
// Discord user cache for IDs that carry no name there. Unknown but non-empty
// IDs still yield a credit so attribution is never dropped.
func (b *builder) credit(id string) map[string]interface{} {
	if id == "" {
		return nil
	}
	entry, _ := b.d.CreditNames.Get(id)
	name := entry.Name
	if name == "" && b.users != nil {
		if discordName, ok := b.users.DisplayName(id); ok {
			name = discordName
		}
	}
	return map[string]interface{}{
		"id":      id,
		"name":    name,
		"contact": entry.Contact,
	}
}

func (b *builder) creditPair(c datafiles.Credit) (map[string]interface{}, []interface{}) {
	primary := b.credit(c.Primary)
	secondary := []interface{}{}
	for _, id := range c.Secondary {
		if m := b.credit(id); m != nil {
			secondary = append(secondary, m)
		}
	}
	return primary, secondary
}

func (b *builder) monster(id int, g *datafiles.Group) map[string]interface{} {
	forms, _ := b.d.Tracker.CollectForms(id)
	formMaps := make([]interface{}, 0, len(forms))
	for _, f := range forms {
		formMaps = append(formMaps, b.form(id, g.Name, f))
	}
	return map[string]interface{}{
		"id":    id,
		"name":  g.Name,
		"forms": formMaps,
	}
}

func (b *builder) form(monsterID int, monsterName string, f datafiles.FormRef) map[string]interface{} {
	return map[string]interface{}{
		"monsterId": monsterID,
		"path":      f.Path,
		"fullPath":  datafiles.JoinFormPath(f.Path),
		"name":      strings.Join(f.Names, " "),
		"fullName":  f.FullName(monsterName),
		"canon":     f.Group.Canon,
		"modreward": f.Group.Modreward,
		"portraits": b.portraits(monsterID, f),
		"sprites":   b.sprites(monsterID, f),
	}
}

func (b *builder) portraits(monsterID int, f datafiles.FormRef) map[string]interface{} {
	g := f.Group
	primary, secondary := b.creditPair(g.PortraitCredit)

	emotions := []interface{}{}
	flipped := []interface{}{}
	for _, emotion := range b.d.SpriteConfig.Emotions {
		locked := !g.PortraitFiles[emotion]
		emotions = append(emotions, map[string]interface{}{
			"emotion": emotion,
			"locked":  locked,
			"url":     b.assetURL(assets.Asset{Kind: assets.Portrait, Name: emotion}, monsterID, f),
		})
		flipped = append(flipped, map[string]interface{}{
			"emotion": emotion,
			"locked":  locked,
			"url":     b.assetURL(assets.Asset{Kind: assets.PortraitFlipped, Name: emotion}, monsterID, f),
		})
	}

	return map[string]interface{}{
		"required":        g.PortraitRequired,
		"phase":           g.PortraitComplete,
		"creditPrimary":   primary,
		"creditSecondary": secondary,
		"modifiedDate":    g.PortraitModified,
		"sheetUrl":        b.assetURL(assets.Asset{Kind: assets.PortraitSheet}, monsterID, f),
		"recolorSheetUrl": b.assetURL(assets.Asset{Kind: assets.PortraitRecolorSheet}, monsterID, f),
		"emotions":        emotions,
		"emotionsFlipped": flipped,
	}
}

func (b *builder) sprites(monsterID int, f datafiles.FormRef) map[string]interface{} {
	g := f.Group
	primary, secondary := b.creditPair(g.SpriteCredit)

	actions := []interface{}{}
	for _, action := range b.d.SpriteConfig.Actions {
		actions = append(actions, map[string]interface{}{
			"action":     action,
			"locked":     !g.SpriteFiles[action],
			"animUrl":    b.assetURL(assets.Asset{Kind: assets.SpriteAnim, Name: action}, monsterID, f),
			"offsetsUrl": b.assetURL(assets.Asset{Kind: assets.SpriteOffsets, Name: action}, monsterID, f),
			"shadowsUrl": b.assetURL(assets.Asset{Kind: assets.SpriteShadows, Name: action}, monsterID, f),
		})
	}

	return map[string]interface{}{
		"required":        g.SpriteRequired,
		"phase":           g.SpriteComplete,
		"creditPrimary":   primary,
		"creditSecondary": secondary,
		"modifiedDate":    g.SpriteModified,
		"animDataXmlUrl":  b.assetURL(assets.Asset{Kind: assets.SpriteAnimDataXml}, monsterID, f),
		"zipUrl":          b.assetURL(assets.Asset{Kind: assets.SpriteZip}, monsterID, f),
		"recolorSheetUrl": b.assetURL(assets.Asset{Kind: assets.SpriteRecolorSheet}, monsterID, f),
		"actions":         actions,
	}
}

func (b *builder) assetURL(a assets.Asset, monsterID int, f datafiles.FormRef) string {
	return assets.URL(a, b.urls.SrvURL, b.urls.AssetsURL, monsterID, f.Path)
}
