package datafiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAnimData = `<?xml version="1.0" ?>
<AnimData>
    <ShadowSize>1</ShadowSize>
    <Anims>
        <Anim>
            <Name>Walk</Name>
            <Index>0</Index>
            <FrameWidth>24</FrameWidth>
            <FrameHeight>32</FrameHeight>
            <Durations>
                <Duration>2</Duration>
                <Duration>2</Duration>
                <Duration>4</Duration>
            </Durations>
        </Anim>
        <Anim>
            <Name>Idle</Name>
            <CopyOf>Walk</CopyOf>
        </Anim>
    </Anims>
</AnimData>`

func writeAnimData(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "AnimData.xml")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadAnimData(t *testing.T) {
	path := writeAnimData(t, t.TempDir(), sampleAnimData)
	a, err := ReadAnimData(path)
	require.NoError(t, err)

	assert.Equal(t, 1, a.ShadowSize)
	require.Len(t, a.Anims, 2)

	walk, ok := a.Anim("Walk")
	require.True(t, ok)
	assert.Equal(t, 24, walk.FrameWidth)
	assert.Equal(t, []int{2, 2, 4}, walk.Durations)

	// Idle copies Walk and resolves to it.
	idle, ok := a.Anim("Idle")
	require.True(t, ok)
	assert.Equal(t, "Walk", idle.Name)

	_, ok = a.Anim("Hop")
	assert.False(t, ok)
}

func TestReadAnimDataInvalid(t *testing.T) {
	cases := []struct {
		name string
		xml  string
	}{
		{"bad xml", "<AnimData><Anims>"},
		{"shadow out of range", `<AnimData><ShadowSize>7</ShadowSize><Anims></Anims></AnimData>`},
		{"copy of unknown", `<AnimData><ShadowSize>0</ShadowSize><Anims><Anim><Name>Idle</Name><CopyOf>Walk</CopyOf></Anim></Anims></AnimData>`},
		{"no durations", `<AnimData><ShadowSize>0</ShadowSize><Anims><Anim><Name>Walk</Name><FrameWidth>8</FrameWidth><FrameHeight>8</FrameHeight></Anim></Anims></AnimData>`},
		{"zero frame size", `<AnimData><ShadowSize>0</ShadowSize><Anims><Anim><Name>Walk</Name><FrameWidth>0</FrameWidth><FrameHeight>8</FrameHeight><Durations><Duration>1</Duration></Durations></Anim></Anims></AnimData>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeAnimData(t, t.TempDir(), tc.xml)
			_, err := ReadAnimData(path)
			var re *ReadError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, KindXML, re.Kind)
		})
	}
}

func TestAnimDataPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("repo", "sprite", "0001", "AnimData.xml"),
		AnimDataPath("repo", 1, nil))
	assert.Equal(t,
		filepath.Join("repo", "sprite", "0001", "0000", "0002", "AnimData.xml"),
		AnimDataPath("repo", 1, []int{0, 2}))
}

func TestCheckAnimData(t *testing.T) {
	repo := t.TempDir()

	tracker := Tracker{
		1: &Group{
			Name:           "Bulbasaur",
			SpriteComplete: PhaseExists,
			Subgroups: map[string]*Group{
				// Broken form: sprites claimed but no AnimData.xml on disk.
				"0001": {Name: "Shiny", SpriteComplete: PhaseExists},
				// Incomplete forms are not checked.
				"0002": {Name: "Female", SpriteComplete: PhaseIncomplete},
			},
		},
	}
	writeAnimData(t, filepath.Join(repo, "sprite", "0001"), sampleAnimData)

	errs := CheckAnimData(repo, tracker)
	require.Len(t, errs, 1)
	assert.Equal(t, 1, errs[0].MonsterID)
	assert.Equal(t, []int{1}, errs[0].FormPath)
}
