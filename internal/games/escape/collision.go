package escape

import "strings"

// Suppression is the set of reasons damage is currently held off.
// Blocking reasons skip the collision check entirely: no flash, no
// cooldown, no sound. Shielding reasons let the hit register (cooldown and
// feedback) but keep the life.
type Suppression uint8

const (
	SuppressTutorial Suppression = 1 << iota // blocking
	SuppressGrace                            // blocking
	SuppressCooldown                         // blocking
	SuppressPowerup                          // shielding
	SuppressDebug                            // shielding
)

const (
	blocking  = SuppressTutorial | SuppressGrace | SuppressCooldown
	shielding = SuppressPowerup | SuppressDebug
)

var suppressionNames = []struct {
	bit  Suppression
	name string
}{
	{SuppressTutorial, "tutorial"},
	{SuppressGrace, "grace"},
	{SuppressCooldown, "cooldown"},
	{SuppressPowerup, "powerup"},
	{SuppressDebug, "debug"},
}

// Has reports whether r is set.
func (s Suppression) Has(r Suppression) bool { return s&r != 0 }

// Blocks reports whether collision checks are skipped.
func (s Suppression) Blocks() bool { return s&blocking != 0 }

// Shields reports whether a registered hit keeps the life.
func (s Suppression) Shields() bool { return s&shielding != 0 }

func (s Suppression) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	for _, n := range suppressionNames {
		if s.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// Damage is the outcome of a registered hit.
type Damage int

const (
	DamageNone     Damage = iota // suppressed before the check
	DamageShielded               // feedback and cooldown, no life lost
	DamageLifeLost
	DamageFatal
)
