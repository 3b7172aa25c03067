package draft

import "sync"

// Session caches the most recent authoritative Snapshot. Replace is the only
// mutation: there is no field-level patching, every accepted action swaps the
// whole snapshot for the one the authority returned.
type Session struct {
	mu   sync.RWMutex
	snap *Snapshot
}

func NewSession() *Session {
	return &Session{}
}

// Current returns a copy of the cached snapshot, or false when no draft has
// been started yet.
func (s *Session) Current() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return Snapshot{}, false
	}
	return *s.snap, true
}

func (s *Session) Replace(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = &snap
}

func (s *Session) IsPicked(heroID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil && s.snap.HasPick(heroID)
}

func (s *Session) IsBanned(heroID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil && s.snap.HasBan(heroID)
}

// ActingTeam reports which team acts next; false when no draft is active or
// the draft has completed, in which case turn has no meaning.
func (s *Session) ActingTeam() (Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil || s.snap.Complete {
		return "", false
	}
	return s.snap.ActingTeam(), true
}

func (s *Session) ActingPhase() (Phase, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil || s.snap.Complete {
		return "", false
	}
	return s.snap.ActingPhase(), true
}

func (s *Session) IsTerminal() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil && s.snap.Complete
}
