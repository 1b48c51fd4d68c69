// Package dockerclient wraps the Docker Engine API client for the
// Containers monitor: availability, container listing, live CPU sampling,
// lifecycle actions, and log tailing.
package dockerclient

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rshzrh/sitrep/pkg/model"
	"github.com/rshzrh/sitrep/pkg/sitreperr"
)

// pingTimeout bounds the availability check; a daemon that can't answer a
// ping this fast is treated as unavailable for this tick.
const pingTimeout = 2 * time.Second

// Client wraps the Docker Engine API client with the narrow surface the
// Docker monitor needs.
type Client struct {
	log logrus.FieldLogger
	api *client.Client

	availabilityChecked bool
	available           bool
}

// New opens a connection to the local Docker daemon (Unix socket by
// default, or DOCKER_HOST if set) with API version negotiation. It does
// not dial; availability is determined lazily by IsAvailable.
func New(log logrus.FieldLogger) (*Client, error) {
	api, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, sitreperr.Wrap(sitreperr.KindBackendUnavailable, "create docker client", err)
	}

	return &Client{log: log.WithField("component", "dockerclient"), api: api}, nil
}

// IsAvailable reports whether the daemon answered a ping. The result is
// memoized for the Client's lifetime, matching the monitor's one-shot
// availability semantics.
func (c *Client) IsAvailable(ctx context.Context) bool {
	if c.availabilityChecked {
		return c.available
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	_, err := c.api.Ping(pingCtx)

	c.availabilityChecked = true
	c.available = err == nil

	if err != nil {
		c.log.WithError(err).Debug("docker ping failed, containers view disabled")
	}

	return c.available
}

// ListContainers lists all containers (running and stopped) with their
// current CPU percent, sorted by name.
func (c *Client) ListContainers(ctx context.Context) ([]model.Container, error) {
	raw, err := c.api.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, sitreperr.Wrap(sitreperr.KindTransientIO, "list containers", err)
	}

	ids := make([]string, len(raw))
	for i, r := range raw {
		ids[i] = r.ID
	}

	cpuPercents := c.GetAllCPUPercents(ctx, ids)

	out := make([]model.Container, len(raw))

	for i, r := range raw {
		name := strings.TrimPrefix(firstOr(r.Names, r.ID), "/")

		var cpu float64
		if v := cpuPercents[i]; v != nil {
			cpu = *v
		}

		out[i] = model.Container{
			ShortID:    shortID(r.ID),
			Name:       name,
			Status:     r.Status,
			Created:    time.Unix(r.Created, 0),
			CPUPercent: cpu,
			Ports:      toPortMappings(r.Ports),
			InternalIP: firstContainerIP(r.NetworkSettings),
			Image:      r.Image,
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

// GetCPUPercent samples a single container's instantaneous CPU percent via
// a non-streaming stats read.
func (c *Client) GetCPUPercent(ctx context.Context, id string) (float64, error) {
	resp, err := c.api.ContainerStatsOneShot(ctx, id)
	if err != nil {
		return 0, sitreperr.Wrap(sitreperr.KindTransientIO, "container stats", err)
	}
	defer resp.Body.Close()

	stats, err := decodeStats(resp.Body)
	if err != nil {
		return 0, sitreperr.Wrap(sitreperr.KindParseError, "decode container stats", err)
	}

	return cpuPercentFromStats(stats), nil
}

// GetAllCPUPercents fans the given ids out concurrently via errgroup and
// returns a slice aligned to the input order. A failed sample for one
// container yields a nil slot rather than failing the whole batch; total
// wall-clock time is the slowest single sample, not the sum.
func (c *Client) GetAllCPUPercents(ctx context.Context, ids []string) []*float64 {
	out := make([]*float64, len(ids))

	g, gctx := errgroup.WithContext(ctx)

	for i, id := range ids {
		i, id := i, id

		g.Go(func() error {
			pct, err := c.GetCPUPercent(gctx, id)
			if err != nil {
				c.log.WithError(err).WithField("container", shortID(id)).Debug("cpu sample failed")
				return nil
			}

			out[i] = &pct

			return nil
		})
	}

	// Errors are swallowed per-slot above; Wait only propagates a ctx
	// cancellation, which we also ignore here since a partial batch is
	// still useful to the caller.
	_ = g.Wait()

	return out
}

// Start starts a stopped container.
func (c *Client) Start(ctx context.Context, id string) error {
	if err := c.api.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
		return sitreperr.Wrap(sitreperr.KindActionFailed, "start container", err)
	}

	return nil
}

// Stop stops a container, giving it graceSeconds to exit before SIGKILL.
func (c *Client) Stop(ctx context.Context, id string, graceSeconds int) error {
	timeout := graceSeconds
	if err := c.api.ContainerStop(ctx, id, container.StopOptions{Timeout: &timeout}); err != nil {
		return sitreperr.Wrap(sitreperr.KindActionFailed, "stop container", err)
	}

	return nil
}

// Restart restarts a container, giving it graceSeconds to exit before
// SIGKILL.
func (c *Client) Restart(ctx context.Context, id string, graceSeconds int) error {
	timeout := graceSeconds
	if err := c.api.ContainerRestart(ctx, id, container.StopOptions{Timeout: &timeout}); err != nil {
		return sitreperr.Wrap(sitreperr.KindActionFailed, "restart container", err)
	}

	return nil
}

func firstOr(names []string, fallback string) string {
	if len(names) == 0 {
		return fallback
	}

	return names[0]
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}

	return id
}

func toPortMappings(ports []container.Port) []model.PortMapping {
	out := make([]model.PortMapping, 0, len(ports))
	for _, p := range ports {
		out = append(out, model.PortMapping{
			PrivatePort: p.PrivatePort,
			PublicPort:  p.PublicPort,
			Type:        p.Type,
		})
	}

	return out
}

// FormatPort renders a PortMapping the way `docker ps` does
// ("public->private/type" or "private/type" when unpublished), using
// go-connections/nat to build the canonical "port/proto" form.
func FormatPort(m model.PortMapping) string {
	p := nat.Port(fmt.Sprintf("%d/%s", m.PrivatePort, m.Type))

	if m.PublicPort == 0 {
		return string(p)
	}

	return fmt.Sprintf("%d->%s", m.PublicPort, p)
}

func firstContainerIP(ns *container.NetworkSettingsSummary) string {
	if ns == nil {
		return ""
	}

	// Network map iteration order is unspecified; pick deterministically
	// by name so repeated renders don't jitter.
	names := make([]string, 0, len(ns.Networks))
	for name := range ns.Networks {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if ep := ns.Networks[name]; ep != nil && ep.IPAddress != "" {
			return ep.IPAddress
		}
	}

	return ""
}
