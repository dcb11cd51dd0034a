package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/marius851000/spritecollab-srv/internal/datafiles"
)

// BuildPortraitSheet composes all portraits of a form into the grid defined
// by sprite_config (tile_x columns, tile_y rows of portrait_size squares).
// Missing emotions stay transparent.
func BuildPortraitSheet(w io.Writer, dir string, cfg datafiles.SpriteConfig) error {
	sheet, err := portraitSheet(dir, cfg)
	if err != nil {
		return err
	}
	return png.Encode(w, sheet)
}

// BuildPortraitRecolorSheet prepends a palette strip (every opaque color of
// the sheet, in first-appearance order) to the portrait sheet.
func BuildPortraitRecolorSheet(w io.Writer, dir string, cfg datafiles.SpriteConfig) error {
	sheet, err := portraitSheet(dir, cfg)
	if err != nil {
		return err
	}
	return png.Encode(w, withPaletteStrip(sheet))
}

// BuildSpriteRecolorSheet stacks every *-Anim.png of a sprite directory
// vertically and prepends the palette strip.
func BuildSpriteRecolorSheet(w io.Writer, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), "-Anim.png") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no animation sheets in %s", dir)
	}
	sort.Strings(names)

	var imgs []image.Image
	width, height := 0, 0
	for _, name := range names {
		img, err := loadPNG(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		imgs = append(imgs, img)
		if img.Bounds().Dx() > width {
			width = img.Bounds().Dx()
		}
		height += img.Bounds().Dy()
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	y := 0
	for _, img := range imgs {
		b := img.Bounds()
		draw.Draw(canvas, image.Rect(0, y, b.Dx(), y+b.Dy()), img, b.Min, draw.Over)
		y += b.Dy()
	}
	return png.Encode(w, withPaletteStrip(canvas))
}

func portraitSheet(dir string, cfg datafiles.SpriteConfig) (*image.RGBA, error) {
	size, tx, ty := cfg.PortraitSize, cfg.PortraitTileX, cfg.PortraitTileY
	if size <= 0 || tx <= 0 || ty <= 0 {
		return nil, fmt.Errorf("invalid portrait sheet geometry %dx%d tiles of %dpx", tx, ty, size)
	}
	canvas := image.NewRGBA(image.Rect(0, 0, tx*size, ty*size))
	for i, emotion := range cfg.Emotions {
		if i >= tx*ty {
			break
		}
		img, err := loadPNG(filepath.Join(dir, up(emotion)+".png"))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		x := (i % tx) * size
		y := (i / tx) * size
		draw.Draw(canvas, image.Rect(x, y, x+size, y+size), img, img.Bounds().Min, draw.Over)
	}
	return canvas, nil
}

const paletteStripHeight = 16

// withPaletteStrip returns img with a strip of its unique opaque colors
// above it, 8px per color, in first-appearance order.
func withPaletteStrip(img *image.RGBA) *image.RGBA {
	var palette []color.Color
	seen := map[color.Color]struct{}{}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.At(x, y)
			if _, _, _, a := c.RGBA(); a == 0 {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			palette = append(palette, c)
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()+paletteStripHeight))
	for i, c := range palette {
		x := i * 8
		if x >= b.Dx() {
			break
		}
		draw.Draw(out, image.Rect(x, 0, x+8, paletteStripHeight), &image.Uniform{C: c}, image.Point{}, draw.Src)
	}
	draw.Draw(out, image.Rect(0, paletteStripHeight, b.Dx(), b.Dy()+paletteStripHeight), img, b.Min, draw.Src)
	return out
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
