package app

import "time"

// ActionKind names a destructive action awaiting confirmation.
type ActionKind int

const (
	ActionDockerStart ActionKind = iota
	ActionDockerStop
	ActionDockerRestart
	ActionSwarmForceUpdate
	ActionSwarmScale
)

// PendingAction is the single global AwaitingConfirm slot. At most one
// exists at a time; triggering a new one while a prompt is open replaces
// it, per the single-slot invariant.
type PendingAction struct {
	Kind      ActionKind
	TargetID  string
	TargetName string
	Replicas  int // only meaningful for ActionSwarmScale

	triggeredAt time.Time
}

// NewPendingAction creates a prompt that expires 5s after creation.
func NewPendingAction(kind ActionKind, targetID, targetName string) *PendingAction {
	return &PendingAction{Kind: kind, TargetID: targetID, TargetName: targetName, triggeredAt: time.Now()}
}

// Expired reports whether now is past the prompt's 5s deadline.
func (p *PendingAction) Expired(now time.Time) bool {
	return now.Sub(p.triggeredAt) > pendingActionTTL
}

// TriggerPending replaces any existing prompt with a new one for kind,
// targeting id/name. Implements "triggering a new one while a prompt is
// open replaces it" — no rejection, no queuing.
func (m *Model) TriggerPending(kind ActionKind, id, name string) {
	m.pending = NewPendingAction(kind, id, name)
}

// TriggerScalePending replaces any existing prompt with an
// ActionSwarmScale prompt targeting the given replica count.
func (m *Model) TriggerScalePending(id, name string, replicas int) {
	p := NewPendingAction(ActionSwarmScale, id, name)
	p.Replicas = replicas
	m.pending = p
}

// expirePending clears the prompt if its deadline has passed (event loop
// step 2).
func (m *Model) expirePending(now time.Time) {
	if m.pending != nil && m.pending.Expired(now) {
		m.pending = nil
	}
}

// ConfirmPending executes the pending action (AwaitingConfirm -> Executing)
// and clears the prompt. The actual dispatch always completes
// asynchronously via the owning monitor's action slot; this call only
// initiates it.
func (m *Model) ConfirmPending() {
	p := m.pending
	if p == nil {
		return
	}

	m.pending = nil

	switch p.Kind {
	case ActionDockerStart:
		m.docker.Start(m.ctx, p.TargetID)
	case ActionDockerStop:
		m.docker.Stop(m.ctx, p.TargetID)
	case ActionDockerRestart:
		m.docker.Restart(m.ctx, p.TargetID)
	case ActionSwarmForceUpdate:
		m.swarm.ForceUpdateService(m.ctx, p.TargetID)
	case ActionSwarmScale:
		m.swarm.ScaleService(m.ctx, p.TargetID, p.Replicas)
	}
}

// RejectPending dismisses the prompt without dispatching anything
// (AwaitingConfirm -> Idle via N/Esc).
func (m *Model) RejectPending() {
	m.pending = nil
}
