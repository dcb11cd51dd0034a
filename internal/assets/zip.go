package assets

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
)

// BuildSpriteZip writes a flat zip of the files in a form's sprite
// directory. Subform directories are not included; they have their own
// archives.
func BuildSpriteZip(w io.Writer, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(w)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return err
		}
		f, err := zw.Create(e.Name())
		if err != nil {
			return err
		}
		if _, err := f.Write(data); err != nil {
			return err
		}
	}
	return zw.Close()
}
