package gamestate

import "time"

// PowerUpKind identifies a collectible buff.
type PowerUpKind string

const (
	PowerUpCoffee     PowerUpKind = "coffee"
	PowerUpHeadphones PowerUpKind = "headphones"
	PowerUpPill       PowerUpKind = "pill"
)

// Effect is the timed state a power-up switches on.
type Effect int

const (
	EffectSpeedBoost Effect = iota
	EffectFreezeEnemies
	EffectSlowMotion
	effectCount
)

func (e Effect) String() string {
	switch e {
	case EffectSpeedBoost:
		return "speed boost"
	case EffectFreezeEnemies:
		return "enemies frozen"
	case EffectSlowMotion:
		return "slow motion"
	default:
		return "?"
	}
}

// Effect returns the effect a kind activates.
func (k PowerUpKind) Effect() (Effect, bool) {
	switch k {
	case PowerUpCoffee:
		return EffectSpeedBoost, true
	case PowerUpHeadphones:
		return EffectFreezeEnemies, true
	case PowerUpPill:
		return EffectSlowMotion, true
	default:
		return 0, false
	}
}

// effectTimer is one active flag paired with its wall-clock deadline.
// The flag is only cleared by a poll, so it may outlive the deadline by a tick.
type effectTimer struct {
	active bool
	until  time.Time
}

type effectTimers [effectCount]effectTimer

func (t *effectTimers) activate(e Effect, until time.Time) {
	t[e] = effectTimer{active: true, until: until}
}

// expire clears every timer whose deadline is at or before now.
func (t *effectTimers) expire(now time.Time) []Effect {
	var expired []Effect
	for e := range t {
		if t[e].active && !now.Before(t[e].until) {
			t[e].active = false
			expired = append(expired, Effect(e))
		}
	}
	return expired
}

// PowerUpStatus is a read-only view of one effect.
type PowerUpStatus struct {
	Effect    Effect
	Active    bool
	ExpiresAt time.Time
}

// Remaining returns the time left before expiry relative to now, floored at zero.
func (p PowerUpStatus) Remaining(now time.Time) time.Duration {
	if !p.Active {
		return 0
	}
	return max(p.ExpiresAt.Sub(now), 0)
}
