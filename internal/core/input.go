package core

// Action is a decoded player intent. Hosts translate keys, gestures or
// scripted test input into actions; the game never sees raw key codes.
type Action int

const (
	ActionNone       Action = iota
	ActionJump              // Space, W, Up
	ActionSlideStart        // S, Down pressed
	ActionSlideEnd          // S, Down released
	ActionBoostStart        // D, Right pressed
	ActionBoostEnd          // D, Right released
	ActionPause             // P, Esc
	ActionDebug             // F2 - developer mode (no life loss)
	ActionMute              // M - music only
	ActionConfirm           // Enter - start run / continue after game over
	ActionRestart           // R - new run from level 1
	ActionBack              // B - abandon the run from pause
	ActionQuit              // Q, Ctrl+C
)

var actionNames = map[Action]string{
	ActionNone:       "None",
	ActionJump:       "Jump",
	ActionSlideStart: "SlideStart",
	ActionSlideEnd:   "SlideEnd",
	ActionBoostStart: "BoostStart",
	ActionBoostEnd:   "BoostEnd",
	ActionPause:      "Pause",
	ActionDebug:      "Debug",
	ActionMute:       "Mute",
	ActionConfirm:    "Confirm",
	ActionRestart:    "Restart",
	ActionBack:       "Back",
	ActionQuit:       "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "Unknown"
}

// InputFrame collects the actions that arrived since the previous frame,
// in arrival order. Duplicate actions are kept: two jumps in one frame are
// a jump and a double jump.
type InputFrame struct {
	actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{}
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set appends an action to the frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.actions = append(f.actions, a)
}

// Has returns true if the given action arrived this frame.
func (f InputFrame) Has(a Action) bool {
	for _, x := range f.actions {
		if x == a {
			return true
		}
	}
	return false
}

// Actions returns the actions in arrival order.
func (f InputFrame) Actions() []Action {
	return f.actions
}

// Empty reports whether no action arrived.
func (f InputFrame) Empty() bool {
	return len(f.actions) == 0
}

// Clear resets the frame for reuse.
func (f *InputFrame) Clear() {
	f.actions = f.actions[:0]
}
