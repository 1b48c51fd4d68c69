package monitor

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rshzrh/sitrep/pkg/dockerclient"
	"github.com/rshzrh/sitrep/pkg/model"
	"github.com/rshzrh/sitrep/pkg/ringbuffer"
	"github.com/rshzrh/sitrep/pkg/sitreperr"
)

const containerLogCap = 5000

const containerLogDrainPerPoll = 100

// DockerUIState is the Containers view's persistent UI-state.
type DockerUIState struct {
	SelectedRow int
	Expanded    map[string]bool // expanded container short ids

	// Log view presentation state; reset whenever a log view is (re)entered.
	LogScrollOffset     int
	LogFilterErrorsOnly bool
}

// NewDockerUIState returns zero-valued UI-state with an initialized
// expansion set.
func NewDockerUIState() *DockerUIState {
	return &DockerUIState{Expanded: make(map[string]bool)}
}

// Docker owns the container list snapshot, the active log buffer (if a
// log view is open), and one in-flight lifecycle action.
type Docker struct {
	log    logrus.FieldLogger
	client *dockerclient.Client

	snapshot model.ContainerSnapshot
	ui       *DockerUIState
	action   actionState

	logBuffer *ringbuffer.Buffer[string]
	logHandle *dockerclient.LogHandle
}

// NewDocker constructs a Docker monitor with no data; the first Update
// populates it if the daemon is reachable.
func NewDocker(log logrus.FieldLogger, client *dockerclient.Client) *Docker {
	return &Docker{
		log:    log.WithField("component", "monitor.docker"),
		client: client,
		ui:     NewDockerUIState(),
	}
}

// UI returns the persistent UI-state for direct mutation by input
// handlers.
func (d *Docker) UI() *DockerUIState { return d.ui }

// Snapshot returns the most recently published container list.
func (d *Docker) Snapshot() model.ContainerSnapshot { return d.snapshot }

// IsAvailable reports whether the Docker daemon answered its availability
// ping; memoized for the monitor's lifetime by the underlying client.
func (d *Docker) IsAvailable(ctx context.Context) bool {
	return d.client.IsAvailable(ctx)
}

// ActionInProgress reports whether a lifecycle action is outstanding; the
// caller (application shell) must refuse to dispatch a second one while
// true.
func (d *Docker) ActionInProgress() bool { return d.action.InProgress() }

// LastActionStatus returns the most recently completed action's status
// message, for display in the status line.
func (d *Docker) LastActionStatus() string { return d.action.LastStatus() }

// Update fetches the container list and fans CPU sampling out
// concurrently. A no-op (and the tab stays hidden) if the daemon is
// unavailable.
func (d *Docker) Update(ctx context.Context, now time.Time) {
	if !d.IsAvailable(ctx) {
		return
	}

	containers, err := d.client.ListContainers(ctx)
	if err != nil {
		d.log.WithError(err).Debug("list containers failed")
		return
	}

	present := make(map[string]bool, len(containers))
	for _, c := range containers {
		present[c.ShortID] = true
	}

	for id := range d.ui.Expanded {
		if !present[id] {
			delete(d.ui.Expanded, id)
		}
	}

	d.snapshot = model.ContainerSnapshot{CapturedAt: now, Containers: containers}
}

// EnterLogView allocates the ring buffer and starts tailing the given
// container's log stream.
func (d *Docker) EnterLogView(ctx context.Context, id string) error {
	handle, err := d.client.TailLogs(ctx, id)
	if err != nil {
		return sitreperr.Wrap(sitreperr.KindTransientIO, "tail container logs", err)
	}

	d.logBuffer = ringbuffer.New[string](containerLogCap)
	d.logHandle = handle
	d.ui.LogScrollOffset = 0
	d.ui.LogFilterErrorsOnly = false

	return nil
}

// LeaveLogView cancels the tail and deallocates the buffer.
func (d *Docker) LeaveLogView() {
	if d.logHandle != nil {
		d.logHandle.Cancel()
		d.logHandle = nil
	}

	d.logBuffer = nil
}

// PollLogs drains up to containerLogDrainPerPoll lines from the active
// log stream into the ring buffer. A no-op if no log view is open.
func (d *Docker) PollLogs() {
	if d.logHandle == nil || d.logBuffer == nil {
		return
	}

	for i := 0; i < containerLogDrainPerPoll; i++ {
		select {
		case line, ok := <-d.logHandle.Lines:
			if !ok {
				return
			}

			d.logBuffer.Push(line)
		default:
			return
		}
	}
}

// LogLines returns the active container log buffer's contents, oldest
// first. Empty if no log view is open.
func (d *Docker) LogLines() []string {
	if d.logBuffer == nil {
		return nil
	}

	return d.logBuffer.Slice()
}

// dispatch runs fn on a background goroutine and reports its outcome
// through the monitor's single in-flight action slot.
func (d *Docker) dispatch(fn func() error, successMsg string) {
	ch := d.action.start()

	go func() {
		err := fn()

		msg := successMsg
		if err != nil {
			msg = ""
		}

		ch <- ActionResult{Message: msg, Err: err}
	}()
}

// Start dispatches a background container start.
func (d *Docker) Start(ctx context.Context, id string) {
	d.dispatch(func() error { return d.client.Start(ctx, id) }, "started "+id)
}

// Stop dispatches a background container stop with a 10s grace period.
func (d *Docker) Stop(ctx context.Context, id string) {
	d.dispatch(func() error { return d.client.Stop(ctx, id, 10) }, "stopped "+id)
}

// Restart dispatches a background container restart with a 10s grace
// period.
func (d *Docker) Restart(ctx context.Context, id string) {
	d.dispatch(func() error { return d.client.Restart(ctx, id, 10) }, "restarted "+id)
}

// PollAction drains the in-flight action's result, if any arrived.
func (d *Docker) PollAction() {
	d.action.poll()
}
