package gateway

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/dotadrafter/draft-client/internal/draft"
	"github.com/dotadrafter/draft-client/internal/hero"
)

// Local precondition rejections. None of these ever reaches the network.
var ErrNoActiveDraft = errors.New("no active draft")
var ErrAlreadyResolved = errors.New("hero already picked or banned")
var ErrDraftComplete = errors.New("draft already complete")
var ErrActionInProgress = errors.New("another action is in flight")
var ErrConfirmDeclined = errors.New("action not confirmed")

// Authority is the remote service that owns true draft state.
type Authority interface {
	StartDraft(ctx context.Context) (draft.Snapshot, error)
	Pick(ctx context.Context, draftID, heroID int64) (draft.Snapshot, error)
	Ban(ctx context.Context, draftID, heroID int64) (draft.Snapshot, error)
}

// HeroNamer resolves display names for confirmation prompts.
type HeroNamer interface {
	FindByID(id int64) (hero.Hero, bool)
}

// Intent is what a click would commit: the action the current turn calls for,
// exposed to the caller before any network traffic so it can be aborted.
type Intent struct {
	DraftID  int64
	HeroID   int64
	HeroName string
	Team     draft.Team
	Phase    draft.Phase
}

// ConfirmFunc decides whether a computed Intent goes through. Returning false
// aborts with no side effects. A nil ConfirmFunc commits unconditionally.
type ConfirmFunc func(Intent) bool

// Gateway mediates every request against the authority. It validates local
// preconditions, enforces the single-flight rule, and on success replaces the
// session snapshot with the authoritative one. It never advances draft state
// on its own.
type Gateway struct {
	authority Authority
	session   *draft.Session
	heroes    HeroNamer
	log       *zap.Logger

	mu       sync.Mutex
	inFlight bool
}

func New(authority Authority, session *draft.Session, heroes HeroNamer, log *zap.Logger) *Gateway {
	return &Gateway{authority: authority, session: session, heroes: heroes, log: log}
}

// StartDraft asks the authority for a fresh draft. On success the session is
// replaced; on failure any existing draft is left usable.
func (g *Gateway) StartDraft(ctx context.Context) (draft.Snapshot, error) {
	snap, err := g.authority.StartDraft(ctx)
	if err != nil {
		g.log.Warn("start draft failed", zap.Error(err))
		return draft.Snapshot{}, err
	}
	g.session.Replace(snap)
	g.log.Info("draft started", zap.Int64("draft_id", snap.ID))
	return snap, nil
}

// RequestAction is the composite click operation: precondition checks, intent
// computation, confirmation gate, then a single pick or ban call. The session
// only changes if the authority accepted.
func (g *Gateway) RequestAction(ctx context.Context, heroID int64, confirm ConfirmFunc) (draft.Snapshot, error) {
	snap, ok := g.session.Current()
	if !ok {
		return draft.Snapshot{}, ErrNoActiveDraft
	}
	if snap.HasPick(heroID) || snap.HasBan(heroID) {
		return draft.Snapshot{}, ErrAlreadyResolved
	}
	if snap.Complete {
		return draft.Snapshot{}, ErrDraftComplete
	}

	intent := Intent{
		DraftID: snap.ID,
		HeroID:  heroID,
		Team:    snap.ActingTeam(),
		Phase:   snap.ActingPhase(),
	}
	if h, ok := g.heroes.FindByID(heroID); ok {
		intent.HeroName = h.Name
	}

	if confirm != nil && !confirm(intent) {
		return draft.Snapshot{}, ErrConfirmDeclined
	}

	// Guard goes up before dispatch and comes down on every exit path, so a
	// double-click cannot race two requests against the authority.
	if !g.acquire() {
		return draft.Snapshot{}, ErrActionInProgress
	}
	defer g.release()

	var next draft.Snapshot
	var err error
	if intent.Phase == draft.PhasePick {
		next, err = g.authority.Pick(ctx, intent.DraftID, heroID)
	} else {
		next, err = g.authority.Ban(ctx, intent.DraftID, heroID)
	}
	if err != nil {
		g.log.Warn("action refused",
			zap.Int64("draft_id", intent.DraftID),
			zap.Int64("hero_id", heroID),
			zap.String("phase", string(intent.Phase)),
			zap.Error(err))
		return draft.Snapshot{}, err
	}

	g.session.Replace(next)
	g.log.Info("action accepted",
		zap.Int64("draft_id", next.ID),
		zap.Int64("hero_id", heroID),
		zap.String("phase", string(intent.Phase)),
		zap.String("team", string(intent.Team)),
		zap.Bool("complete", next.Complete))
	return next, nil
}

func (g *Gateway) acquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight {
		return false
	}
	g.inFlight = true
	return true
}

func (g *Gateway) release() {
	g.mu.Lock()
	g.inFlight = false
	g.mu.Unlock()
}
