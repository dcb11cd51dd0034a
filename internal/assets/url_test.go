package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	srvURL    = "https://spriteserver.example"
	assetsURL = "https://raw.example/SpriteCollab/master"
)

func TestURL(t *testing.T) {
	cases := []struct {
		name     string
		asset    Asset
		monster  int
		formPath []int
		want     string
	}{
		{"portrait sheet", Asset{Kind: PortraitSheet}, 1, nil,
			srvURL + "/assets/0001/portrait_sheet.png"},
		{"portrait sheet with form", Asset{Kind: PortraitSheet}, 1, []int{0, 2},
			srvURL + "/assets/0001/0000/0002/portrait_sheet.png"},
		{"portrait recolor sheet", Asset{Kind: PortraitRecolorSheet}, 23, nil,
			srvURL + "/assets/0023/portrait_recolor_sheet.png"},
		{"portrait", Asset{Kind: Portrait, Name: "normal"}, 1, nil,
			assetsURL + "/portrait/0001/Normal.png"},
		{"portrait flipped", Asset{Kind: PortraitFlipped, Name: "happy"}, 1, []int{1},
			assetsURL + "/portrait/0001/0001/Happy^.png"},
		{"teary-eyed special case", Asset{Kind: Portrait, Name: "teary-eyed"}, 1, nil,
			assetsURL + "/portrait/0001/Teary-Eyed.png"},
		{"anim data xml", Asset{Kind: SpriteAnimDataXml}, 150, nil,
			assetsURL + "/sprite/0150/AnimData.xml"},
		{"sprite zip", Asset{Kind: SpriteZip}, 150, []int{1},
			srvURL + "/assets/0150/0001/sprites.zip"},
		{"sprite recolor sheet", Asset{Kind: SpriteRecolorSheet}, 150, nil,
			srvURL + "/assets/0150/sprite_recolor_sheet.png"},
		{"sprite anim", Asset{Kind: SpriteAnim, Name: "walk"}, 1, nil,
			assetsURL + "/sprite/0001/Walk-Anim.png"},
		{"sprite offsets", Asset{Kind: SpriteOffsets, Name: "walk"}, 1, nil,
			assetsURL + "/sprite/0001/Walk-Offsets.png"},
		{"sprite shadows", Asset{Kind: SpriteShadows, Name: "walk"}, 1, nil,
			assetsURL + "/sprite/0001/Walk-Shadow.png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, URL(tc.asset, srvURL, assetsURL, tc.monster, tc.formPath))
		})
	}
}

func TestMatchPath(t *testing.T) {
	cases := []struct {
		path     string
		monster  int
		formPath []int
		kind     Kind
	}{
		{"/assets/0001/portrait_sheet.png", 1, nil, PortraitSheet},
		{"/assets/0001/portrait_recolor_sheet.png", 1, nil, PortraitRecolorSheet},
		{"/assets/0001/sprites.zip", 1, nil, SpriteZip},
		{"/assets/0001/sprite_recolor_sheet.png", 1, nil, SpriteRecolorSheet},
		{"/assets/0001/0000/portrait_sheet.png", 1, []int{0}, PortraitSheet},
		{"/assets/0150/0001/0002/sprites.zip", 150, []int{1, 2}, SpriteZip},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			monster, formPath, asset, ok := MatchPath(tc.path)
			require.True(t, ok)
			assert.Equal(t, tc.monster, monster)
			assert.Equal(t, tc.formPath, formPath)
			assert.Equal(t, tc.kind, asset.Kind)
		})
	}
}

func TestMatchPathRejects(t *testing.T) {
	for _, path := range []string{
		"/assets/0001/Normal.png",
		"/assets/abc/portrait_sheet.png",
		"/assets/portrait_sheet.png",
		"/sprite/0001/Walk-Anim.png",
		"/assets/0001/../portrait_sheet.png",
	} {
		t.Run(path, func(t *testing.T) {
			_, _, _, ok := MatchPath(path)
			assert.False(t, ok)
		})
	}
}

func TestUp(t *testing.T) {
	assert.Equal(t, "Normal", up("normal"))
	assert.Equal(t, "Teary-Eyed", up("teary-eyed"))
	assert.Equal(t, "Walk", up("Walk"))
	assert.Equal(t, "", up(""))
}
