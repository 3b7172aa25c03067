package ui

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dotadrafter/draft-client/internal/authority"
	"github.com/dotadrafter/draft-client/internal/draft"
	"github.com/dotadrafter/draft-client/internal/gateway"
	"github.com/dotadrafter/draft-client/internal/hero"
	"github.com/dotadrafter/draft-client/internal/roster"
	"github.com/dotadrafter/draft-client/internal/view"
)

// Loop owns all client-side draft state. Every user intent and every network
// settlement arrives as a message on the inbox and is handled on a single
// goroutine; network calls themselves run detached and post their result
// back, so an outstanding call suspends only the interaction that started it.
type Loop struct {
	inbox   chan Msg
	store   *roster.Store
	session *draft.Session
	gw      *gateway.Gateway
	log     *zap.Logger

	clients  map[string]chan []view.Patch
	filter   view.FilterState
	rendered []hero.Hero // entries currently shown by the shells
	syncing  bool

	ctx    context.Context
	cancel context.CancelFunc
}

func NewLoop(parent context.Context, store *roster.Store, session *draft.Session, gw *gateway.Gateway, log *zap.Logger) *Loop {
	ctx, cancel := context.WithCancel(parent)
	l := &Loop{
		inbox:   make(chan Msg, 64),
		store:   store,
		session: session,
		gw:      gw,
		log:     log,
		clients: make(map[string]chan []view.Patch),
		ctx:     ctx,
		cancel:  cancel,
	}
	go l.run()
	return l
}

func (l *Loop) Inbox() chan<- Msg { return l.inbox }

func (l *Loop) run() {
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				l.clients[msg.ClientID] = msg.Outbox
				l.sendTo(msg.ClientID, l.fullRender())

			case Leave:
				delete(l.clients, msg.ClientID)

			case SetFilter:
				attr, _ := hero.ParseAttribute(msg.Attribute)
				l.filter = view.FilterState{Search: msg.Search, Attribute: attr}
				l.broadcast(l.renderRoster())

			case SyncRoster:
				l.handleSync(msg)

			case syncSettled:
				l.handleSyncSettled(msg)

			case StartDraft:
				go func() {
					_, err := l.gw.StartDraft(l.ctx)
					l.post(startSettled{clientID: msg.ClientID, err: err})
				}()

			case startSettled:
				l.handleStartSettled(msg)

			case HeroClicked:
				l.handleHeroClicked(msg)

			case actionSettled:
				l.handleActionSettled(msg)

			case GetView:
				msg.Reply <- View{NumClients: len(l.clients), Filter: l.filter, Syncing: l.syncing}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

func (l *Loop) handleSync(msg SyncRoster) {
	if l.syncing {
		// Trigger is disabled shell-side; a second message is a no-op.
		return
	}
	l.syncing = true
	l.broadcast([]view.Patch{{Kind: view.PatchToggle, Target: "#syncButton", Disabled: true, Text: "Syncing..."}})
	go func() {
		message, err := l.store.Sync(l.ctx)
		l.post(syncSettled{clientID: msg.ClientID, message: message, err: err})
	}()
}

func (l *Loop) handleSyncSettled(msg syncSettled) {
	l.syncing = false
	patches := []view.Patch{{Kind: view.PatchToggle, Target: "#syncButton", Text: "Sync Heroes from API"}}
	if msg.err != nil {
		patches = append(patches, view.Patch{Kind: view.PatchNotice, Text: "Failed to sync heroes: " + msg.err.Error()})
	} else {
		patches = append(patches, view.Patch{Kind: view.PatchNotice, Text: msg.message})
		patches = append(patches, l.renderRoster()...)
	}
	l.broadcast(patches)
}

func (l *Loop) handleStartSettled(msg startSettled) {
	if msg.err != nil {
		l.sendTo(msg.clientID, []view.Patch{{Kind: view.PatchNotice, Text: "Failed to start draft: " + msg.err.Error()}})
		return
	}
	patches := view.RenderTurnBanner(l.session)
	patches = append(patches, view.RenderTeamPanels(l.session)...)
	patches = append(patches, view.RefreshStatuses(l.rendered, l.session)...)
	l.broadcast(patches)
}

func (l *Loop) handleHeroClicked(msg HeroClicked) {
	if !msg.Confirmed {
		// Dry run through the gateway: preconditions and intent only, the
		// confirm callback declines so nothing is dispatched.
		var intent gateway.Intent
		_, err := l.gw.RequestAction(l.ctx, msg.HeroID, func(i gateway.Intent) bool {
			intent = i
			return false
		})
		if errors.Is(err, gateway.ErrConfirmDeclined) {
			name := intent.HeroName
			if name == "" {
				name = "Unknown"
			}
			text := fmt.Sprintf("%s %s for %s?", actionWord(intent.Phase), name, teamWord(intent.Team))
			l.sendTo(msg.ClientID, []view.Patch{{Kind: view.PatchConfirm, HeroID: msg.HeroID, Text: text}})
			return
		}
		l.sendRejection(msg.ClientID, err)
		return
	}

	go func() {
		_, err := l.gw.RequestAction(l.ctx, msg.HeroID, nil)
		l.post(actionSettled{clientID: msg.ClientID, heroID: msg.HeroID, err: err})
	}()
}

func (l *Loop) handleActionSettled(msg actionSettled) {
	if msg.err != nil {
		l.sendRejection(msg.clientID, msg.err)
		return
	}
	patches := view.RefreshStatuses(l.rendered, l.session)
	patches = append(patches, view.RenderTurnBanner(l.session)...)
	patches = append(patches, view.RenderTeamPanels(l.session)...)
	l.broadcast(patches)
}

// sendRejection maps a gateway error onto its user-visible form. Resolved
// clicks and racing clicks stay silent; authority refusals are shown with the
// authority's own words.
func (l *Loop) sendRejection(clientID string, err error) {
	var rej *authority.Rejection
	switch {
	case err == nil, errors.Is(err, gateway.ErrAlreadyResolved), errors.Is(err, gateway.ErrActionInProgress):
		return
	case errors.Is(err, gateway.ErrNoActiveDraft):
		l.sendTo(clientID, []view.Patch{{Kind: view.PatchNotice, Text: "Please start a draft first!"}})
	case errors.Is(err, gateway.ErrDraftComplete):
		l.sendTo(clientID, []view.Patch{{Kind: view.PatchNotice, Text: "The draft is already complete."}})
	case errors.As(err, &rej):
		l.sendTo(clientID, []view.Patch{{Kind: view.PatchNotice, Text: rej.Message}})
	default:
		l.sendTo(clientID, []view.Patch{{Kind: view.PatchNotice, Text: err.Error()}})
	}
}

func (l *Loop) renderRoster() []view.Patch {
	if l.store.Len() == 0 {
		// Roster never loaded. Recoverable: the sync trigger stays live.
		l.rendered = nil
		return []view.Patch{{Kind: view.PatchFragment, Target: "#heroGrid",
			HTML: `<p class="error">Failed to load heroes. Please sync from API first.</p>`}}
	}
	l.rendered = l.store.Filter(l.filter.Search, l.filter.Attribute)
	return view.RenderRoster(l.rendered, l.filter, l.session)
}

func (l *Loop) fullRender() []view.Patch {
	patches := l.renderRoster()
	patches = append(patches, view.RenderTurnBanner(l.session)...)
	patches = append(patches, view.RenderTeamPanels(l.session)...)
	if l.syncing {
		patches = append(patches, view.Patch{Kind: view.PatchToggle, Target: "#syncButton", Disabled: true, Text: "Syncing..."})
	}
	return patches
}

// post delivers a settlement without blocking forever if the loop is gone.
func (l *Loop) post(m Msg) {
	select {
	case l.inbox <- m:
	case <-l.ctx.Done():
	}
}

func (l *Loop) sendTo(clientID string, patches []view.Patch) {
	ch, ok := l.clients[clientID]
	if !ok || len(patches) == 0 {
		return
	}
	select {
	case ch <- patches:
	default:
		close(ch)
		delete(l.clients, clientID)
	}
}

func (l *Loop) broadcast(patches []view.Patch) {
	if len(patches) == 0 {
		return
	}
	for id, ch := range l.clients {
		select {
		case ch <- patches:
		default:
			// Shell stopped draining; drop it.
			close(ch)
			delete(l.clients, id)
		}
	}
}

func (l *Loop) shutdown() {
	for id, ch := range l.clients {
		close(ch)
		delete(l.clients, id)
	}
	l.cancel()
}

func actionWord(p draft.Phase) string {
	if p == draft.PhasePick {
		return "PICK"
	}
	return "BAN"
}

func teamWord(t draft.Team) string {
	if t == draft.TeamRadiant {
		return "Radiant"
	}
	return "Dire"
}
