// Package assets knows the URL space and on-disk layout of SpriteCollab
// assets, and generates the composed ones (sheets and zips) served by this
// server.
package assets

import (
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/gorilla/mux"

	"github.com/marius851000/spritecollab-srv/internal/datafiles"
)

type Kind int

const (
	PortraitSheet Kind = iota
	PortraitRecolorSheet
	Portrait
	PortraitFlipped
	SpriteAnimDataXml
	SpriteZip
	SpriteRecolorSheet
	SpriteAnim
	SpriteOffsets
	SpriteShadows
)

// Asset is an asset kind plus, for the per-file kinds, the emotion or
// action name.
type Asset struct {
	Kind Kind
	Name string
}

// URL renders the public URL of an asset. Generated assets live on this
// server (srvURL), raw repository files on the assets base URL.
func URL(a Asset, srvURL, assetsURL string, monsterID int, formPath []int) string {
	formJoined := datafiles.JoinFormPath(formPath)
	if formJoined != "" {
		formJoined = "/" + formJoined
	}
	id := datafiles.PadID(monsterID)

	switch a.Kind {
	case PortraitSheet:
		return fmt.Sprintf("%s/assets/%s%s/portrait_sheet.png", srvURL, id, formJoined)
	case PortraitRecolorSheet:
		return fmt.Sprintf("%s/assets/%s%s/portrait_recolor_sheet.png", srvURL, id, formJoined)
	case Portrait:
		return fmt.Sprintf("%s/portrait/%s%s/%s.png", assetsURL, id, formJoined, up(a.Name))
	case PortraitFlipped:
		return fmt.Sprintf("%s/portrait/%s%s/%s^.png", assetsURL, id, formJoined, up(a.Name))
	case SpriteAnimDataXml:
		return fmt.Sprintf("%s/sprite/%s%s/AnimData.xml", assetsURL, id, formJoined)
	case SpriteZip:
		return fmt.Sprintf("%s/assets/%s%s/sprites.zip", srvURL, id, formJoined)
	case SpriteRecolorSheet:
		return fmt.Sprintf("%s/assets/%s%s/sprite_recolor_sheet.png", srvURL, id, formJoined)
	case SpriteAnim:
		return fmt.Sprintf("%s/sprite/%s%s/%s-Anim.png", assetsURL, id, formJoined, up(a.Name))
	case SpriteOffsets:
		return fmt.Sprintf("%s/sprite/%s%s/%s-Offsets.png", assetsURL, id, formJoined, up(a.Name))
	case SpriteShadows:
		return fmt.Sprintf("%s/sprite/%s%s/%s-Shadow.png", assetsURL, id, formJoined, up(a.Name))
	}
	return ""
}

type kindHandler Kind

func (kindHandler) ServeHTTP(http.ResponseWriter, *http.Request) {}

var matcher = func() *mux.Router {
	r := mux.NewRouter()
	add := func(pattern string, k Kind) {
		r.Path(pattern).Handler(kindHandler(k))
	}
	add("/assets/{monsterid:[0-9]+}/{formpath:[0-9][0-9/]*}/portrait_sheet.png", PortraitSheet)
	add("/assets/{monsterid:[0-9]+}/{formpath:[0-9][0-9/]*}/portrait_recolor_sheet.png", PortraitRecolorSheet)
	add("/assets/{monsterid:[0-9]+}/{formpath:[0-9][0-9/]*}/sprites.zip", SpriteZip)
	add("/assets/{monsterid:[0-9]+}/{formpath:[0-9][0-9/]*}/sprite_recolor_sheet.png", SpriteRecolorSheet)
	add("/assets/{monsterid:[0-9]+}/portrait_sheet.png", PortraitSheet)
	add("/assets/{monsterid:[0-9]+}/portrait_recolor_sheet.png", PortraitRecolorSheet)
	add("/assets/{monsterid:[0-9]+}/sprites.zip", SpriteZip)
	add("/assets/{monsterid:[0-9]+}/sprite_recolor_sheet.png", SpriteRecolorSheet)
	return r
}()

// MatchPath recognizes a generated-asset path and returns the monster ID,
// form path and asset.
func MatchPath(path string) (int, []int, Asset, bool) {
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: path}}
	var m mux.RouteMatch
	if !matcher.Match(req, &m) || m.MatchErr != nil {
		return 0, nil, Asset{}, false
	}
	monsterID, err := strconv.Atoi(m.Vars["monsterid"])
	if err != nil {
		return 0, nil, Asset{}, false
	}
	var formPath []int
	if raw := m.Vars["formpath"]; raw != "" {
		for _, seg := range strings.Split(raw, "/") {
			n, err := strconv.Atoi(seg)
			if err != nil {
				return 0, nil, Asset{}, false
			}
			formPath = append(formPath, n)
		}
	}
	k, ok := m.Handler.(kindHandler)
	if !ok {
		return 0, nil, Asset{}, false
	}
	return monsterID, formPath, Asset{Kind: Kind(k)}, true
}

// PortraitDir locates the portrait directory of a form inside a checkout.
func PortraitDir(repoDir string, monsterID int, formPath []int) string {
	return formDir(repoDir, "portrait", monsterID, formPath)
}

// SpriteDir locates the sprite directory of a form inside a checkout.
func SpriteDir(repoDir string, monsterID int, formPath []int) string {
	return formDir(repoDir, "sprite", monsterID, formPath)
}

func formDir(repoDir, medium string, monsterID int, formPath []int) string {
	parts := []string{repoDir, medium, datafiles.PadID(monsterID)}
	for _, seg := range formPath {
		parts = append(parts, datafiles.PadID(seg))
	}
	return filepath.Join(parts...)
}

// up uppercases the first letter of an emotion or action name the way the
// repository names its files.
func up(s string) string {
	if s == "teary-eyed" {
		return "Teary-Eyed"
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
