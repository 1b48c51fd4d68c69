package dockerclient

import (
	"bufio"
	"context"
	"io"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
)

// logChannelCapacity bounds the tail_logs producer/consumer channel. The
// producer blocks (backpressure) rather than allocate unboundedly when the
// channel is full.
const logChannelCapacity = 256

// LogHandle is the producer side of a tail_logs subscription. Lines arrive
// on Lines; Cancel halts the background reader on its next yield and
// closes the underlying follow stream.
type LogHandle struct {
	Lines  <-chan string
	cancel context.CancelFunc
}

// Cancel stops the log tail and releases the underlying connection.
func (h *LogHandle) Cancel() {
	h.cancel()
}

// TailLogs starts following a container's combined stdout/stderr and
// returns immediately with a bounded channel and a cancellation handle. A
// background goroutine demuxes the Docker log stream (stdcopy framing) and
// forwards each line; it exits when the context is cancelled or the
// stream ends.
func (c *Client) TailLogs(ctx context.Context, id string) (*LogHandle, error) {
	streamCtx, cancel := context.WithCancel(ctx)

	reader, err := c.api.ContainerLogs(streamCtx, id, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
		Tail:       "100",
	})
	if err != nil {
		cancel()
		return nil, err
	}

	lines := make(chan string, logChannelCapacity)

	go func() {
		defer close(lines)
		defer reader.Close()

		pr, pw := io.Pipe()

		go func() {
			_, _ = stdcopy.StdCopy(pw, pw, reader)
			pw.Close()
		}()

		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-streamCtx.Done():
				return
			}
		}
	}()

	return &LogHandle{Lines: lines, cancel: cancel}, nil
}
