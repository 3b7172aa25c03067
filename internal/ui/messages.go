package ui

import "github.com/dotadrafter/draft-client/internal/view"

type Msg interface{ isUIMsg() }

// Join registers a connected shell and immediately receives a full render.
type Join struct {
	ClientID string
	Outbox   chan []view.Patch
}

func (Join) isUIMsg() {}

type Leave struct{ ClientID string }

func (Leave) isUIMsg() {}

// SetFilter carries the shell's search box and attribute selector state.
type SetFilter struct {
	ClientID  string
	Search    string
	Attribute string
}

func (SetFilter) isUIMsg() {}

type SyncRoster struct{ ClientID string }

func (SyncRoster) isUIMsg() {}

type StartDraft struct{ ClientID string }

func (StartDraft) isUIMsg() {}

// HeroClicked is a click on a roster card. The first click arrives
// unconfirmed and is answered with a confirmation prompt; the shell resends
// it confirmed if the user accepts.
type HeroClicked struct {
	ClientID  string
	HeroID    int64
	Confirmed bool
}

func (HeroClicked) isUIMsg() {}

type Shutdown struct{}

func (Shutdown) isUIMsg() {}

// GetView reflects loop internals without data races. Test-only.
type GetView struct {
	Reply chan View
}

func (GetView) isUIMsg() {}

type View struct {
	NumClients int
	Filter     view.FilterState
	Syncing    bool
}

// Settlement messages posted back to the loop by its own network goroutines.

type syncSettled struct {
	clientID string
	message  string
	err      error
}

func (syncSettled) isUIMsg() {}

type startSettled struct {
	clientID string
	err      error
}

func (startSettled) isUIMsg() {}

type actionSettled struct {
	clientID string
	heroID   int64
	err      error
}

func (actionSettled) isUIMsg() {}
