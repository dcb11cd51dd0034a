package datafiles

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Completion phases used by both the portrait and sprite sides of a group.
const (
	PhaseIncomplete = 0
	PhaseExists     = 1
	PhaseFull       = 2
)

// Credit identifies who made an asset. IDs refer to credit_names.txt
// entries.
type Credit struct {
	Primary   string   `json:"primary"`
	Secondary []string `json:"secondary"`
	Total     int      `json:"total"`
}

// Group is one entry of tracker.json: a monster or one of its forms.
// Subgroup keys are zero-padded form path segments ("0000", "0001", ...).
type Group struct {
	Name      string `json:"name"`
	Canon     bool   `json:"canon"`
	Modreward bool   `json:"modreward"`

	PortraitComplete int             `json:"portrait_complete"`
	PortraitCredit   Credit          `json:"portrait_credit"`
	PortraitFiles    map[string]bool `json:"portrait_files"`
	PortraitLink     string          `json:"portrait_link"`
	PortraitModified string          `json:"portrait_modified"`
	PortraitRequired bool            `json:"portrait_required"`
	PortraitBounty   map[string]int  `json:"portrait_bounty"`
	PortraitPending  map[string]int  `json:"portrait_pending"`

	SpriteComplete int             `json:"sprite_complete"`
	SpriteCredit   Credit          `json:"sprite_credit"`
	SpriteFiles    map[string]bool `json:"sprite_files"`
	SpriteLink     string          `json:"sprite_link"`
	SpriteModified string          `json:"sprite_modified"`
	SpriteRequired bool            `json:"sprite_required"`
	SpriteBounty   map[string]int  `json:"sprite_bounty"`
	SpritePending  map[string]int  `json:"sprite_pending"`

	Subgroups map[string]*Group `json:"subgroups"`
}

// Tracker is the parsed tracker.json, keyed by monster ID.
type Tracker map[int]*Group

func (t *Tracker) UnmarshalJSON(data []byte) error {
	raw := map[string]*Group{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Tracker, len(raw))
	for k, g := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("tracker key %q is not numeric", k)
		}
		out[id] = g
	}
	*t = out
	return nil
}

func ReadTracker(path string) (Tracker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Kind: KindIO, Path: path, Err: err}
	}
	var t Tracker
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, &ReadError{Kind: KindJSON, Path: path, Line: jsonErrorLine(data, err), Err: err}
	}
	return t, nil
}

// MonsterIDs returns all tracked monster IDs in ascending order.
func (t Tracker) MonsterIDs() []int {
	ids := make([]int, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// FormRef is one form of a monster: the numeric path into the subgroup
// tree (empty for the base form), the chain of non-empty subgroup names
// leading to it, and the group itself.
type FormRef struct {
	Path  []int
	Names []string
	Group *Group
}

// FullName renders the form's display name under the given monster name.
func (f FormRef) FullName(monsterName string) string {
	if len(f.Names) == 0 {
		return monsterName
	}
	return monsterName + " " + strings.Join(f.Names, " ")
}

// CollectForms walks the subgroup tree of a monster in sorted key order and
// returns every form, the base form first. The second return is false when
// the monster is not tracked.
func (t Tracker) CollectForms(monsterID int) ([]FormRef, bool) {
	root, ok := t[monsterID]
	if !ok {
		return nil, false
	}
	var out []FormRef
	var walk func(g *Group, path []int, names []string)
	walk = func(g *Group, path []int, names []string) {
		out = append(out, FormRef{
			Path:  append([]int(nil), path...),
			Names: append([]string(nil), names...),
			Group: g,
		})
		keys := make([]string, 0, len(g.Subgroups))
		for k := range g.Subgroups {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			seg, err := strconv.Atoi(k)
			if err != nil {
				continue
			}
			sub := g.Subgroups[k]
			subNames := names
			if sub.Name != "" {
				subNames = append(append([]string(nil), names...), sub.Name)
			}
			walk(sub, append(path, seg), subNames)
		}
	}
	walk(root, nil, nil)
	return out, true
}

// Form returns the group at the given subgroup path of a monster.
func (t Tracker) Form(monsterID int, path []int) (*Group, bool) {
	g, ok := t[monsterID]
	if !ok {
		return nil, false
	}
	for _, seg := range path {
		sub, ok := g.Subgroups[PadID(seg)]
		if !ok {
			return nil, false
		}
		g = sub
	}
	return g, true
}

// PadID renders an ID or form path segment the way the repository lays out
// its directories: zero-padded to four digits.
func PadID(id int) string { return fmt.Sprintf("%04d", id) }

// JoinFormPath renders a form path as zero-padded segments joined by "/".
// Empty paths render as "".
func JoinFormPath(path []int) string {
	segs := make([]string, len(path))
	for i, p := range path {
		segs[i] = PadID(p)
	}
	return strings.Join(segs, "/")
}
