package view

// PatchKind tells the shell how to apply a Patch.
type PatchKind string

const (
	// PatchFragment replaces the innerHTML of Target.
	PatchFragment PatchKind = "fragment"
	// PatchClass replaces the class attribute of Target.
	PatchClass PatchKind = "class"
	// PatchStatus sets the pick/ban status class on the card for HeroID.
	PatchStatus PatchKind = "status"
	// PatchNotice shows a dismissible message.
	PatchNotice PatchKind = "notice"
	// PatchToggle enables or disables the control at Target.
	PatchToggle PatchKind = "toggle"
	// PatchConfirm asks the shell to confirm Text and, if accepted, resend
	// the hero intent for HeroID as confirmed.
	PatchConfirm PatchKind = "confirm"
)

// Patch is one targeted presentation update. Renders emit the minimal set of
// patches needed to bring the shell in line with current state; applying a
// patch never forces the shell to rebuild unrelated fragments.
type Patch struct {
	Kind     PatchKind `json:"kind"`
	Target   string    `json:"target,omitempty"`
	HTML     string    `json:"html,omitempty"`
	Class    string    `json:"class,omitempty"`
	HeroID   int64     `json:"heroId,omitempty"`
	Status   string    `json:"status,omitempty"`
	Text     string    `json:"text,omitempty"`
	Disabled bool      `json:"disabled,omitempty"`
}
