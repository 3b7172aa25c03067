package view

import (
	"fmt"
	"html"
	"strings"

	"github.com/dotadrafter/draft-client/internal/draft"
	"github.com/dotadrafter/draft-client/internal/hero"
)

// FilterState is the shell's current search box and attribute selector.
// Attribute empty means "all".
type FilterState struct {
	Search    string
	Attribute hero.Attribute
}

// Statuses answers pick/ban membership for rendered entries. *draft.Session
// satisfies it; both checks are false with no active draft.
type Statuses interface {
	IsPicked(heroID int64) bool
	IsBanned(heroID int64) bool
}

func attributeIcon(attr hero.Attribute) string {
	switch attr {
	case hero.Strength:
		return "💪"
	case hero.Agility:
		return "🦶"
	case hero.Intelligence:
		return "🧠"
	case hero.Universal:
		return "✨"
	default:
		return ""
	}
}

// RenderRoster rebuilds the full roster display from an already-filtered
// subset, grouped by primary attribute in fixed order. An empty group is
// omitted only when a specific attribute filter is active and the group is
// not the one selected. All catalog text is escaped before embedding.
func RenderRoster(heroes []hero.Hero, f FilterState, st Statuses) []Patch {
	if len(heroes) == 0 {
		return []Patch{{Kind: PatchFragment, Target: "#heroGrid", HTML: `<p class="loading">No heroes found</p>`}}
	}

	groups := make(map[hero.Attribute][]hero.Hero, len(hero.AttributeOrder))
	for _, h := range heroes {
		groups[h.PrimaryAttribute] = append(groups[h.PrimaryAttribute], h)
	}

	var b strings.Builder
	for _, attr := range hero.AttributeOrder {
		group := groups[attr]
		if f.Attribute != "" && attr != f.Attribute && len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, `<div class="attribute-column %s"><h3>%s %s</h3><div class="column-heroes">`,
			strings.ToLower(string(attr)), attributeIcon(attr), attr)
		for _, h := range group {
			writeHeroCard(&b, h, st)
		}
		b.WriteString(`</div></div>`)
	}
	return []Patch{{Kind: PatchFragment, Target: "#heroGrid", HTML: b.String()}}
}

func writeHeroCard(b *strings.Builder, h hero.Hero, st Statuses) {
	status := heroStatus(h.ID, st)
	name := html.EscapeString(h.Name)
	title := name
	if len(h.Roles) > 0 {
		title = html.EscapeString(h.Name + " — " + strings.Join(h.Roles, ", "))
	}
	fmt.Fprintf(b, `<div class="hero-card %s" data-hero-id="%d" title="%s">`, status, h.ID, title)
	fmt.Fprintf(b, `<img src="%s" alt="%s" loading="lazy">`, html.EscapeString(h.ImageURL), name)
	fmt.Fprintf(b, `<div class="hero-info"><div class="hero-name">%s</div></div></div>`, name)
}

func heroStatus(id int64, st Statuses) string {
	switch {
	case st.IsPicked(id):
		return "picked"
	case st.IsBanned(id):
		return "banned"
	default:
		return ""
	}
}

// RefreshStatuses emits one status patch per already-rendered entry, leaving
// images and card markup untouched. This is the cheap pass that runs after
// every accepted pick or ban.
func RefreshStatuses(rendered []hero.Hero, st Statuses) []Patch {
	patches := make([]Patch, 0, len(rendered))
	for _, h := range rendered {
		patches = append(patches, Patch{Kind: PatchStatus, HeroID: h.ID, Status: heroStatus(h.ID, st)})
	}
	return patches
}

// RenderTurnBanner shows acting team and phase, or the terminal state once
// the draft completes, which suppresses both.
func RenderTurnBanner(session *draft.Session) []Patch {
	snap, ok := session.Current()
	if !ok {
		return []Patch{
			{Kind: PatchClass, Target: "#currentTurn", Class: "turn-indicator"},
			{Kind: PatchFragment, Target: "#currentTurn", HTML: `<p>No active draft</p>`},
			{Kind: PatchFragment, Target: "#phaseText", HTML: "—"},
		}
	}
	if snap.Complete {
		return []Patch{
			{Kind: PatchClass, Target: "#currentTurn", Class: "turn-indicator complete"},
			{Kind: PatchFragment, Target: "#currentTurn", HTML: `<p><strong>Draft Complete!</strong></p>`},
			{Kind: PatchFragment, Target: "#phaseText", HTML: "COMPLETE"},
		}
	}

	team, turnClass := "Dire", "dire-turn"
	if snap.RadiantTurn {
		team, turnClass = "Radiant", "radiant-turn"
	}
	phase := "BAN"
	if snap.PickPhase {
		phase = "PICK"
	}
	return []Patch{
		{Kind: PatchClass, Target: "#currentTurn", Class: "turn-indicator " + turnClass},
		{Kind: PatchFragment, Target: "#currentTurn",
			HTML: fmt.Sprintf(`<p><strong>%s's Turn</strong></p><p>Phase: %s</p>`, team, phase)},
		{Kind: PatchFragment, Target: "#phaseText", HTML: phase},
	}
}
