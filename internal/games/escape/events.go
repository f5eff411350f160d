package escape

// Kind identifies a notification for the external UI.
type Kind string

const (
	KindHUD           Kind = "hud"
	KindState         Kind = "state"
	KindTutorialStep  Kind = "tutorial_step"
	KindTutorialHide  Kind = "tutorial_hide"
	KindTutorialArrow Kind = "tutorial_arrow"
	KindToast         Kind = "toast"
	KindCountdown     Kind = "countdown"
	KindGemBanner     Kind = "gem_banner"
	KindScorePop      Kind = "score_pop"
	KindGameOver      Kind = "game_over"
	KindWin           Kind = "win"
)

// HUD is the always-visible status line.
type HUD struct {
	Score      int  `json:"score"`
	Lives      int  `json:"lives"`
	Level      int  `json:"level"`
	Beaten     int  `json:"beaten"`
	Needed     int  `json:"needed"`
	Gems       int  `json:"gems"`
	GraceSecs  int  `json:"grace_secs,omitempty"`
	Invincible bool `json:"invincible,omitempty"`
	Magnet     bool `json:"magnet,omitempty"`
	Dev        bool `json:"dev,omitempty"`
	Muted      bool `json:"muted,omitempty"`
}

// Notification is a structured update for whatever draws the HUD, banners
// and overlays. Fields not relevant to a kind are left empty.
type Notification struct {
	Kind   Kind   `json:"kind"`
	Phase  string `json:"phase,omitempty"`
	HUD    *HUD   `json:"hud,omitempty"`
	Icon   string `json:"icon,omitempty"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	Detail string `json:"detail,omitempty"`
	Hint   string `json:"hint,omitempty"`
	Color  string `json:"color,omitempty"`
	Value  int    `json:"value,omitempty"`
}

// Notifier receives notifications. Notify is called on the game's thread
// and must not block.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notification) { f(n) }

// Notifiers fans a notification out to several receivers.
type Notifiers []Notifier

// Notify implements Notifier.
func (ns Notifiers) Notify(n Notification) {
	for _, x := range ns {
		x.Notify(n)
	}
}
