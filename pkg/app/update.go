package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshzrh/sitrep/pkg/model"
)

// Update dispatches bubbletea messages. The spec's 8-step synchronous
// loop maps onto messages as follows: step 1 (should_quit) is handled by
// returning tea.Quit from the q/Ctrl-C/Esc key handlers; step 2 (pending
// expiry), step 4 (poll_logs), and step 5 (poll_action) run on every
// fastTickMsg (100ms); step 3 (selective update, tick_counter,
// standalone recheck) runs on every tickMsg (3s); step 6 (view-change
// immediate refresh, 500ms throttle) runs inside handleSetView; step 7
// (render) is bubbletea's View(), invoked after every Update that
// returns a non-nil cmd or mutates state; step 8 (input polling) is
// bubbletea's own input reader, and key dispatch happens in
// handleKeyMsg.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tickMsg:
		m.onTick(time.Time(msg))
		return m, tickCmd()

	case fastTickMsg:
		m.onFastTick(time.Time(msg))
		return m, fastTickCmd()
	}

	return m, nil
}

// onTick runs step 3: update only the active view's monitor, bump
// tick_counter, and in standalone Docker mode recheck for a newly
// initialized swarm every ten ticks (delegated to Swarm.Update itself,
// which tracks its own counter so the recheck cadence survives view
// switches).
func (m *Model) onTick(now time.Time) {
	m.tickCounter++

	switch m.view.Category() {
	case model.CategorySystem:
		m.system.Update(now)
	case model.CategoryDocker:
		m.docker.Update(m.ctx, now)
	case model.CategorySwarm:
		m.swarm.Update(m.ctx, now)
	}

	m.lastRefreshAt[m.view.Category()] = now

	// The Swarm tab is hidden while no swarm is detected, so its monitor is
	// never the active one; drive it here to keep its recheck cadence.
	if m.view.Category() != model.CategorySwarm && !m.swarm.IsAvailable() {
		m.swarm.Update(m.ctx, now)
	}
}

// onFastTick runs steps 2, 4, and 5: expire the pending prompt, drain the
// active log view's producer, and poll every monitor with an in-flight
// action.
func (m *Model) onFastTick(now time.Time) {
	m.expirePending(now)

	switch m.view.Kind {
	case model.ViewContainerLogs:
		m.docker.PollLogs()
	case model.ViewSwarmServiceLogs:
		m.swarm.PollLogs()
	}

	m.docker.PollAction()
	m.swarm.PollAction()
}

// handleSetView implements step 6: switching views triggers an immediate
// refresh of the new monitor, throttled to 500ms per monitor so rapid tab
// cycling doesn't storm the backend.
func (m *Model) handleSetView(v model.AppView, now time.Time) {
	m.setView(v)

	cat := v.Category()

	last, seen := m.lastRefreshAt[cat]
	if seen && now.Sub(last) < viewChangeThrottle {
		return
	}

	switch cat {
	case model.CategorySystem:
		m.system.Update(now)
	case model.CategoryDocker:
		m.docker.Update(m.ctx, now)
	case model.CategorySwarm:
		m.swarm.Update(m.ctx, now)
	}

	m.lastRefreshAt[cat] = now
}
