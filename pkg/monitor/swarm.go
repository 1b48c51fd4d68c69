package monitor

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rshzrh/sitrep/pkg/model"
	"github.com/rshzrh/sitrep/pkg/ringbuffer"
	"github.com/rshzrh/sitrep/pkg/sitreperr"
	"github.com/rshzrh/sitrep/pkg/swarmclient"
)

const (
	serviceLogCap           = 10000
	serviceLogDrainPerPoll  = 200
	standaloneRecheckTicks  = 10
)

// SwarmUIState is the Swarm view's persistent UI-state: the view_level
// state machine (Overview -> ServiceTasks -> ServiceLogs) plus selection.
type SwarmUIState struct {
	Level             model.ViewLevel
	SelectedRow       int
	PinnedServiceID   string
	PinnedServiceName string

	// Log view presentation state; reset whenever service logs are (re)entered.
	LogScrollOffset     int
	LogFilterErrorsOnly bool
}

// NewSwarmUIState returns UI-state starting at the overview level.
func NewSwarmUIState() *SwarmUIState {
	return &SwarmUIState{Level: model.ViewLevelOverview}
}

// EnterServiceTasks transitions Overview -> ServiceTasks, pinning the
// chosen service.
func (s *SwarmUIState) EnterServiceTasks(id, name string) {
	s.Level = model.ViewLevelServiceTasks
	s.PinnedServiceID = id
	s.PinnedServiceName = name
}

// EnterServiceLogs transitions ServiceTasks -> ServiceLogs for the
// currently pinned service.
func (s *SwarmUIState) EnterServiceLogs() {
	s.Level = model.ViewLevelServiceLogs
}

// Back transitions one level up the state machine
// (ServiceLogs -> ServiceTasks -> Overview), per the Esc transitions in
// the spec's view_level diagram.
func (s *SwarmUIState) Back() {
	switch s.Level {
	case model.ViewLevelServiceLogs:
		s.Level = model.ViewLevelServiceTasks
	case model.ViewLevelServiceTasks:
		s.Level = model.ViewLevelOverview
		s.PinnedServiceID = ""
		s.PinnedServiceName = ""
	}
}

// Swarm owns the cluster/nodes/services/tasks snapshot, the service-log
// buffer, and one in-flight lifecycle action (force update or scale).
type Swarm struct {
	log    logrus.FieldLogger
	client *swarmclient.Client

	snapshot model.SwarmSnapshot
	ui       *SwarmUIState
	action   actionState

	tickCounter int

	logBuffer *ringbuffer.Buffer[string]
	logHandle *swarmclient.ServiceLogHandle
}

// NewSwarm constructs a Swarm monitor with no data. It reports unavailable
// until a DetectSwarm run (from the ten-tick recheck in Update) finds an
// active swarm; the next Update after that populates the snapshot.
func NewSwarm(log logrus.FieldLogger, client *swarmclient.Client) *Swarm {
	return &Swarm{
		log:    log.WithField("component", "monitor.swarm"),
		client: client,
		ui:     NewSwarmUIState(),
	}
}

// UI returns the persistent UI-state for direct mutation by input
// handlers.
func (s *Swarm) UI() *SwarmUIState { return s.ui }

// Snapshot returns the most recently published Swarm snapshot.
func (s *Swarm) Snapshot() model.SwarmSnapshot { return s.snapshot }

// IsAvailable reports the memoized swarm-membership flag.
func (s *Swarm) IsAvailable() bool { return s.client.IsAvailable() }

// ActionInProgress reports whether a rolling-restart or scale action is
// outstanding.
func (s *Swarm) ActionInProgress() bool { return s.action.InProgress() }

// LastActionStatus returns the most recently completed action's status
// message.
func (s *Swarm) LastActionStatus() string { return s.action.LastStatus() }

// Update's behavior depends on the current view_level: Overview refreshes
// nodes and services and recomputes stacks/warnings; ServiceTasks
// refreshes only the pinned service's task list; ServiceLogs makes no
// snapshot progress at all (only PollLogs does). In standalone Docker
// mode (no swarm detected), Update is a no-op except once every ten ticks,
// when it rechecks for a newly initialized swarm.
func (s *Swarm) Update(ctx context.Context, now time.Time) {
	s.tickCounter++

	if !s.IsAvailable() {
		if s.tickCounter%standaloneRecheckTicks == 0 {
			s.recheckSwarm(ctx)
		}

		return
	}

	switch s.ui.Level {
	case model.ViewLevelOverview:
		s.updateOverview(ctx, now)
	case model.ViewLevelServiceTasks:
		s.updateServiceTasks(ctx, now)
	case model.ViewLevelServiceLogs:
		// no snapshot refresh; PollLogs alone makes progress.
	}
}

func (s *Swarm) recheckSwarm(ctx context.Context) {
	if _, err := s.client.DetectSwarm(ctx); err != nil {
		s.log.WithError(err).Debug("swarm recheck failed")
	}
}

func (s *Swarm) updateOverview(ctx context.Context, now time.Time) {
	cluster, err := s.client.DetectSwarm(ctx)
	if err != nil {
		s.log.WithError(err).Debug("detect swarm failed")
		return
	}

	nodes, err := s.client.ListNodes(ctx)
	if err != nil {
		s.log.WithError(err).Debug("list nodes failed")
	}

	services, err := s.client.ListServices(ctx)
	if err != nil {
		s.log.WithError(err).Debug("list services failed")
	}

	stacks := swarmclient.BuildStacks(services)
	warnings := swarmclient.GenerateWarnings(cluster, nodes, services)

	s.snapshot = model.SwarmSnapshot{
		CapturedAt: now,
		Cluster:    cluster,
		Nodes:      nodes,
		Services:   services,
		Stacks:     stacks,
		Tasks:      s.snapshot.Tasks,
		Warnings:   warnings,
	}
}

func (s *Swarm) updateServiceTasks(ctx context.Context, now time.Time) {
	tasks, err := s.client.ListServiceTasks(ctx, s.ui.PinnedServiceID)
	if err != nil {
		s.log.WithError(err).Debug("list service tasks failed")
		return
	}

	s.snapshot.CapturedAt = now
	s.snapshot.Tasks = tasks
}

// EnterServiceLogs allocates the service-log ring buffer (cap 10000) and
// starts tailing the pinned service's logs.
func (s *Swarm) EnterServiceLogs(ctx context.Context) error {
	handle, err := s.client.TailServiceLogs(ctx, s.ui.PinnedServiceID)
	if err != nil {
		return sitreperr.Wrap(sitreperr.KindTransientIO, "tail service logs", err)
	}

	s.logBuffer = ringbuffer.New[string](serviceLogCap)
	s.logHandle = handle
	s.ui.LogScrollOffset = 0
	s.ui.LogFilterErrorsOnly = false
	s.ui.EnterServiceLogs()

	return nil
}

// LeaveServiceLogs cancels the tail and deallocates the buffer.
func (s *Swarm) LeaveServiceLogs() {
	if s.logHandle != nil {
		s.logHandle.Cancel()
		s.logHandle = nil
	}

	s.logBuffer = nil
}

// PollLogs drains up to serviceLogDrainPerPoll lines per invocation.
func (s *Swarm) PollLogs() {
	if s.logHandle == nil || s.logBuffer == nil {
		return
	}

	for i := 0; i < serviceLogDrainPerPoll; i++ {
		select {
		case line, ok := <-s.logHandle.Lines:
			if !ok {
				return
			}

			s.logBuffer.Push(line)
		default:
			return
		}
	}
}

// LogLines returns the active service-log buffer's contents, oldest
// first.
func (s *Swarm) LogLines() []string {
	if s.logBuffer == nil {
		return nil
	}

	return s.logBuffer.Slice()
}

func (s *Swarm) dispatch(fn func() error, successMsg string) {
	ch := s.action.start()

	go func() {
		err := fn()

		msg := successMsg
		if err != nil {
			msg = ""
		}

		ch <- ActionResult{Message: msg, Err: err}
	}()
}

// ForceUpdateService dispatches a rolling restart on a background
// goroutine.
func (s *Swarm) ForceUpdateService(ctx context.Context, id string) {
	s.dispatch(func() error { return s.client.ForceUpdateService(ctx, id) }, "force updated "+id)
}

// ScaleService dispatches a replica-count change on a background
// goroutine.
func (s *Swarm) ScaleService(ctx context.Context, id string, replicas int) {
	s.dispatch(func() error { return s.client.ScaleService(ctx, id, replicas) }, "scaled "+id)
}

// PollAction drains the in-flight action's result, if any arrived.
func (s *Swarm) PollAction() {
	s.action.poll()
}
