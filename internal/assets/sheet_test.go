package assets

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marius851000/spritecollab-srv/internal/datafiles"
)

func writePNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func testSpriteConfig() datafiles.SpriteConfig {
	return datafiles.SpriteConfig{
		PortraitSize:  8,
		PortraitTileX: 2,
		PortraitTileY: 2,
		Emotions:      []string{"Normal", "Happy", "Pain"},
	}
}

func TestBuildPortraitSheet(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "Normal.png"), 8, 8, color.RGBA{R: 255, A: 255})
	writePNG(t, filepath.Join(dir, "Pain.png"), 8, 8, color.RGBA{B: 255, A: 255})
	// Happy.png intentionally missing; its tile stays transparent.

	var buf bytes.Buffer
	require.NoError(t, BuildPortraitSheet(&buf, dir, testSpriteConfig()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())

	// Normal is tile (0,0), Happy (1,0) is empty, Pain is tile (0,1).
	r, _, _, a := img.At(2, 2).RGBA()
	assert.NotZero(t, r)
	assert.NotZero(t, a)
	_, _, _, a = img.At(10, 2).RGBA()
	assert.Zero(t, a)
	_, _, b, _ := img.At(2, 10).RGBA()
	assert.NotZero(t, b)
}

func TestBuildPortraitSheetBadGeometry(t *testing.T) {
	var buf bytes.Buffer
	err := BuildPortraitSheet(&buf, t.TempDir(), datafiles.SpriteConfig{})
	assert.Error(t, err)
}

func TestBuildPortraitRecolorSheet(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "Normal.png"), 8, 8, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, BuildPortraitRecolorSheet(&buf, dir, testSpriteConfig()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	// The palette strip sits above the sheet.
	assert.Equal(t, 16+paletteStripHeight, img.Bounds().Dy())
	r, _, _, a := img.At(0, 0).RGBA()
	assert.NotZero(t, r)
	assert.NotZero(t, a)
}

func TestBuildSpriteRecolorSheet(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "Walk-Anim.png"), 16, 8, color.RGBA{G: 255, A: 255})
	writePNG(t, filepath.Join(dir, "Idle-Anim.png"), 8, 8, color.RGBA{B: 255, A: 255})
	writePNG(t, filepath.Join(dir, "Walk-Offsets.png"), 8, 8, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, BuildSpriteRecolorSheet(&buf, dir))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	// Two stacked anim sheets (offsets are not part of the recolor sheet).
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 16+paletteStripHeight, img.Bounds().Dy())
}

func TestBuildSpriteRecolorSheetEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, BuildSpriteRecolorSheet(&buf, t.TempDir()))
}

func TestBuildSpriteZip(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "Walk-Anim.png"), 4, 4, color.RGBA{A: 255})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AnimData.xml"), []byte("<AnimData/>"), 0o644))
	// Subform directories stay out of the archive.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "0001"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0001", "Walk-Anim.png"), []byte("x"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, BuildSpriteZip(&buf, dir))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"Walk-Anim.png", "AnimData.xml"}, names)
}
