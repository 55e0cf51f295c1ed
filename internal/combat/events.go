package combat

// Queued effect-event kinds.
const (
	eventHeal    = "heal"
	eventFortify = "fortify"
	eventSunder  = "sunder"
	eventSplash  = "splash"
	eventStrike  = "strike"
)

// eventChainLimit caps how many queued events one drain may apply, so a
// pathological ability deck chains through deaths without unbounded growth.
const eventChainLimit = 64

// EffectEvent is one queued ability side effect. Units are carried by ID and
// re-resolved at application time; a target dead by then drops the event for
// heal/fortify/sunder while splash/strike simply find no one to hit.
type EffectEvent struct {
	Type      string `json:"type"`
	TargetID  int    `json:"target_id"`
	SourceID  int    `json:"source_id"`
	Amount    int    `json:"amount"`
	Pos       Hex    `json:"pos"`
	SourcePos *Hex   `json:"source_pos,omitempty"`
}

// queueEvent appends an event to the pending queue and records it on the
// step's action for the UI.
func (b *Battle) queueEvent(kind string, source, target *Unit, amount int, withSourcePos bool) {
	ev := EffectEvent{
		Type:     kind,
		TargetID: target.ID,
		SourceID: source.ID,
		Amount:   amount,
		Pos:      target.Pos,
	}
	if withSourcePos {
		ev.SourcePos = hexPtr(source.Pos)
	}
	b.pendingEvents = append(b.pendingEvents, ev)
	a := b.action()
	switch kind {
	case eventHeal:
		a.HealEvents = append(a.HealEvents, ev)
	case eventFortify:
		a.FortifyEvents = append(a.FortifyEvents, ev)
	case eventSunder:
		a.SunderEvents = append(a.SunderEvents, ev)
	case eventSplash:
		a.SplashEvents = append(a.SplashEvents, ev)
	case eventStrike:
		a.StrikeEvents = append(a.StrikeEvents, ev)
	}
}

// drainEvents applies pending events in FIFO order. Applications may kill
// units, firing abilities that enqueue further events; those join the same
// queue rather than recursing, and a re-entrant call lets the outer drain
// finish the work.
func (b *Battle) drainEvents() {
	if b.draining {
		return
	}
	b.draining = true
	defer func() { b.draining = false }()
	applied := 0
	for len(b.pendingEvents) > 0 {
		if applied >= eventChainLimit {
			b.logf("  event chain truncated after %d events (%d dropped)", eventChainLimit, len(b.pendingEvents))
			b.pendingEvents = nil
			return
		}
		ev := b.pendingEvents[0]
		b.pendingEvents = b.pendingEvents[1:]
		b.applyEffectEvent(ev)
		applied++
	}
}

func (b *Battle) applyEffectEvent(ev EffectEvent) {
	target := b.unitByID(ev.TargetID)
	if target == nil || !target.Alive() {
		return
	}
	source := b.unitByID(ev.SourceID)
	switch ev.Type {
	case eventHeal:
		healed := target.heal(ev.Amount)
		if healed > 0 && source != nil {
			b.logf("  %s heals %s for %d HP", source, target, healed)
		}
	case eventFortify:
		target.fortify(ev.Amount)
		if source != nil {
			b.logf("  %s fortifies %s for +%d HP", source, target, ev.Amount)
		}
	case eventSunder:
		target.sunder(ev.Amount)
		if source != nil {
			b.logf("  %s sunders %s's armor by %d (now %d)", source, target, ev.Amount, target.Armor)
		}
	case eventSplash:
		actual := b.applyDamage(target, ev.Amount, source)
		if actual > 0 {
			b.logf("  Splash hits %s for %d dmg", target, actual)
			if !target.Alive() {
				b.logf("  %s(P%d) dies from splash!", target.Name, target.Player)
			}
		}
	case eventStrike:
		actual := b.applyDamage(target, ev.Amount, source)
		if actual > 0 && source != nil {
			b.logf("  %s strikes %s for %d dmg", source, target, actual)
		}
	}
}
