package datafiles

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AnimData is the parsed AnimData.xml of one sprite form.
type AnimData struct {
	ShadowSize int    `xml:"ShadowSize"`
	Anims      []Anim `xml:"Anims>Anim"`
}

type Anim struct {
	Name        string `xml:"Name"`
	Index       int    `xml:"Index"`
	FrameWidth  int    `xml:"FrameWidth"`
	FrameHeight int    `xml:"FrameHeight"`
	Durations   []int  `xml:"Durations>Duration"`
	// CopyOf aliases another animation instead of carrying its own frames.
	CopyOf string `xml:"CopyOf"`
}

// Anim returns the animation with the given name, following one level of
// CopyOf indirection.
func (a AnimData) Anim(name string) (Anim, bool) {
	for _, an := range a.Anims {
		if an.Name == name {
			if an.CopyOf != "" {
				for _, target := range a.Anims {
					if target.Name == an.CopyOf {
						return target, true
					}
				}
				return Anim{}, false
			}
			return an, true
		}
	}
	return Anim{}, false
}

func (a AnimData) validate() error {
	if a.ShadowSize < 0 || a.ShadowSize > 2 {
		return fmt.Errorf("shadow size %d out of range", a.ShadowSize)
	}
	byName := make(map[string]Anim, len(a.Anims))
	for _, an := range a.Anims {
		if an.Name == "" {
			return fmt.Errorf("animation without a name")
		}
		byName[an.Name] = an
	}
	for _, an := range a.Anims {
		if an.CopyOf != "" {
			target, ok := byName[an.CopyOf]
			if !ok {
				return fmt.Errorf("animation %s copies unknown animation %s", an.Name, an.CopyOf)
			}
			if target.CopyOf != "" {
				return fmt.Errorf("animation %s copies another copy %s", an.Name, an.CopyOf)
			}
			continue
		}
		if an.FrameWidth <= 0 || an.FrameHeight <= 0 {
			return fmt.Errorf("animation %s has invalid frame dimensions %dx%d", an.Name, an.FrameWidth, an.FrameHeight)
		}
		if len(an.Durations) == 0 {
			return fmt.Errorf("animation %s has no frame durations", an.Name)
		}
		for _, d := range an.Durations {
			if d <= 0 {
				return fmt.Errorf("animation %s has a non-positive frame duration", an.Name)
			}
		}
	}
	return nil
}

func ReadAnimData(path string) (AnimData, error) {
	var a AnimData
	data, err := os.ReadFile(path)
	if err != nil {
		return a, &ReadError{Kind: KindIO, Path: path, Err: err}
	}
	if err := xml.Unmarshal(data, &a); err != nil {
		return a, &ReadError{Kind: KindXML, Path: path, Err: err}
	}
	if err := a.validate(); err != nil {
		return a, &ReadError{Kind: KindXML, Path: path, Err: err}
	}
	return a, nil
}

// AnimDataPath locates the AnimData.xml of a form inside a repository
// checkout.
func AnimDataPath(repoDir string, monsterID int, formPath []int) string {
	parts := []string{repoDir, "sprite", PadID(monsterID)}
	for _, seg := range formPath {
		parts = append(parts, PadID(seg))
	}
	parts = append(parts, "AnimData.xml")
	return filepath.Join(parts...)
}

// AnimError is one broken AnimData.xml found while validating a tracker.
type AnimError struct {
	MonsterID int
	FormPath  []int
	Err       error
}

func (e AnimError) String() string {
	segs := make([]string, len(e.FormPath))
	for i, p := range e.FormPath {
		segs[i] = fmt.Sprintf("%d", p)
	}
	return fmt.Sprintf("%d/%s: %v", e.MonsterID, strings.Join(segs, "/"), e.Err)
}

// CheckAnimData reads the AnimData.xml of every form whose sprites exist
// and collects all failures. Used for validation after a refresh.
func CheckAnimData(repoDir string, t Tracker) []AnimError {
	var errs []AnimError
	for _, id := range t.MonsterIDs() {
		forms, _ := t.CollectForms(id)
		for _, form := range forms {
			if form.Group.SpriteComplete == PhaseIncomplete {
				continue
			}
			if _, err := ReadAnimData(AnimDataPath(repoDir, id, form.Path)); err != nil {
				errs = append(errs, AnimError{MonsterID: id, FormPath: form.Path, Err: err})
			}
		}
	}
	return errs
}
