package view

import (
	"fmt"
	"html"
	"strings"

	"github.com/dotadrafter/draft-client/internal/draft"
	"github.com/dotadrafter/draft-client/internal/hero"
)

// Slot counts are fixed by team composition, not derived from data. The
// authority's sequence fills at most this many per team per list.
const (
	PickSlots = 5
	BanSlots  = 4
)

var panelTargets = []struct {
	target string
	slots  int
	pick   func(draft.Snapshot) []hero.Hero
}{
	{"#radiantPicks", PickSlots, func(s draft.Snapshot) []hero.Hero { return s.RadiantPicks }},
	{"#radiantBans", BanSlots, func(s draft.Snapshot) []hero.Hero { return s.RadiantBans }},
	{"#direPicks", PickSlots, func(s draft.Snapshot) []hero.Hero { return s.DirePicks }},
	{"#direBans", BanSlots, func(s draft.Snapshot) []hero.Hero { return s.DireBans }},
}

// RenderTeamPanels fills each team panel's fixed slots in sequence order and
// leaves trailing slots explicitly empty.
func RenderTeamPanels(session *draft.Session) []Patch {
	snap, _ := session.Current()
	patches := make([]Patch, 0, len(panelTargets))
	for _, p := range panelTargets {
		patches = append(patches, Patch{
			Kind:   PatchFragment,
			Target: p.target,
			HTML:   renderSlots(p.pick(snap), p.slots),
		})
	}
	return patches
}

func renderSlots(filled []hero.Hero, slots int) string {
	var b strings.Builder
	for i := 0; i < slots; i++ {
		if i < len(filled) {
			h := filled[i]
			name := html.EscapeString(h.Name)
			fmt.Fprintf(&b, `<div class="hero-slot"><img src="%s" alt="%s"><div class="hero-name">%s</div></div>`,
				html.EscapeString(h.ImageURL), name, name)
			continue
		}
		b.WriteString(`<div class="hero-slot empty"></div>`)
	}
	return b.String()
}
