package draft

import (
	"slices"

	"github.com/dotadrafter/draft-client/internal/hero"
)

type Team string

const (
	TeamRadiant Team = "radiant"
	TeamDire    Team = "dire"
)

type Phase string

const (
	PhasePick Phase = "pick"
	PhaseBan  Phase = "ban"
)

// Snapshot mirrors the authority's draft state verbatim. The authority owns
// turn advancement and completion; the client never derives either locally.
type Snapshot struct {
	ID               int64       `json:"id"`
	StartTime        string      `json:"startTime,omitempty"`
	RadiantPicks     []hero.Hero `json:"radiantPicks"`
	DirePicks        []hero.Hero `json:"direPicks"`
	RadiantBans      []hero.Hero `json:"radiantBans"`
	DireBans         []hero.Hero `json:"direBans"`
	RadiantTurn      bool        `json:"radiantTurn"`
	PickPhase        bool        `json:"pickPhase"`
	Complete         bool        `json:"complete"`
	CurrentTurnIndex int         `json:"currentTurnIndex"`
}

func (s Snapshot) ActingTeam() Team {
	if s.RadiantTurn {
		return TeamRadiant
	}
	return TeamDire
}

func (s Snapshot) ActingPhase() Phase {
	if s.PickPhase {
		return PhasePick
	}
	return PhaseBan
}

func (s Snapshot) HasPick(heroID int64) bool {
	return containsHero(s.RadiantPicks, heroID) || containsHero(s.DirePicks, heroID)
}

func (s Snapshot) HasBan(heroID int64) bool {
	return containsHero(s.RadiantBans, heroID) || containsHero(s.DireBans, heroID)
}

func containsHero(list []hero.Hero, id int64) bool {
	return slices.ContainsFunc(list, func(h hero.Hero) bool { return h.ID == id })
}
