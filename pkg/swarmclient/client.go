// Package swarmclient drives Docker Swarm cluster introspection and
// lifecycle actions by shelling out to the `docker` CLI with structured
// JSON output, per the contract: one fork per query, batched where the
// CLI supports it, service logs tailed as a child process.
package swarmclient

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rshzrh/sitrep/pkg/model"
	"github.com/rshzrh/sitrep/pkg/sitreperr"
)

// Client shells out to `docker` for every Swarm operation; it holds no
// persistent connection of its own.
type Client struct {
	log logrus.FieldLogger

	availabilityChecked bool
	available           bool
}

// New constructs a Client. Availability (whether this engine is part of a
// swarm) is determined lazily and memoized by DetectSwarm.
func New(log logrus.FieldLogger) *Client {
	return &Client{log: log.WithField("component", "swarmclient")}
}

// DetectSwarm runs `docker info --format '{{json .}}'` and extracts the
// six swarm fields. The result also answers IsAvailable for the rest of
// the Client's lifetime.
func (c *Client) DetectSwarm(ctx context.Context) (model.ClusterInfo, error) {
	raw, err := run(ctx, "info", "--format", "{{json .}}")
	if err != nil {
		c.availabilityChecked = true
		c.available = false

		return model.ClusterInfo{}, err
	}

	info, err := parseClusterInfo(raw)
	if err != nil {
		return model.ClusterInfo{}, sitreperr.Wrap(sitreperr.KindParseError, "parse docker info", err)
	}

	c.availabilityChecked = true
	c.available = info.SwarmAvailable()

	return info, nil
}

// IsAvailable reports the memoized swarm-membership flag from the most
// recent DetectSwarm call; false before the first call.
func (c *Client) IsAvailable() bool {
	return c.availabilityChecked && c.available
}

// ListNodes runs `docker node ls --format '{{json .}}'`.
func (c *Client) ListNodes(ctx context.Context) ([]model.Node, error) {
	raw, err := run(ctx, "node", "ls", "--format", "{{json .}}")
	if err != nil {
		return nil, err
	}

	return parseNodes(raw), nil
}

// ListServices runs `docker service ls --format '{{json .}}'`, then
// attaches each service's stack namespace via a single batched
// `docker service inspect` call.
func (c *Client) ListServices(ctx context.Context) ([]model.Service, error) {
	raw, err := run(ctx, "service", "ls", "--format", "{{json .}}")
	if err != nil {
		return nil, err
	}

	services := parseServices(raw)

	ids := make([]string, len(services))
	for i, s := range services {
		ids[i] = s.ID
	}

	labels, err := c.BatchGetStackLabels(ctx, ids)
	if err != nil {
		c.log.WithError(err).Debug("stack label batch failed, services will show no stack")
		labels = nil
	}

	for i := range services {
		services[i].Stack = labels[services[i].ID]
	}

	return services, nil
}

// ListServiceTasks runs `docker service ps --format '{{json .}}' <id>`.
func (c *Client) ListServiceTasks(ctx context.Context, serviceID string) ([]model.Task, error) {
	raw, err := run(ctx, "service", "ps", "--format", "{{json .}}", serviceID)
	if err != nil {
		return nil, err
	}

	return parseTasks(raw, time.Now()), nil
}

// BatchGetStackLabels fetches the com.docker.stack.namespace label for N
// services in a single subprocess invocation, regardless of N.
func (c *Client) BatchGetStackLabels(ctx context.Context, serviceIDs []string) (map[string]string, error) {
	if len(serviceIDs) == 0 {
		return map[string]string{}, nil
	}

	args := append([]string{
		"service", "inspect",
		"--format", `{{.ID}}:{{index .Spec.Labels "com.docker.stack.namespace"}}`,
	}, serviceIDs...)

	raw, err := run(ctx, args...)
	if err != nil {
		return nil, err
	}

	return parseStackLabels(raw), nil
}

// ForceUpdateService runs `docker service update --force <id>`.
func (c *Client) ForceUpdateService(ctx context.Context, serviceID string) error {
	if _, err := run(ctx, "service", "update", "--force", serviceID); err != nil {
		return sitreperr.Wrap(sitreperr.KindActionFailed, "force update service", err)
	}

	return nil
}

// ScaleService runs `docker service update --replicas N <id>`.
func (c *Client) ScaleService(ctx context.Context, serviceID string, replicas int) error {
	if _, err := run(ctx, "service", "update", "--replicas", strconv.Itoa(replicas), serviceID); err != nil {
		return sitreperr.Wrap(sitreperr.KindActionFailed, "scale service", err)
	}

	return nil
}

// BuildStacks groups services sharing a stack namespace using a hash map
// from stack name to service indices, then sorts the result by name.
// Services with no stack label are omitted from the result.
func BuildStacks(services []model.Service) []model.Stack {
	order := make([]string, 0)
	indices := make(map[string][]int)

	for i, s := range services {
		if s.Stack == "" {
			continue
		}

		if _, seen := indices[s.Stack]; !seen {
			order = append(order, s.Stack)
		}

		indices[s.Stack] = append(indices[s.Stack], i)
	}

	sort.Strings(order)

	out := make([]model.Stack, 0, len(order))
	for _, name := range order {
		out = append(out, model.Stack{Name: name, ServiceIndices: indices[name]})
	}

	return out
}

// GenerateWarnings derives in-process heuristic alerts from a cluster
// snapshot: any node down or drained, any service whose running replica
// count trails its desired count, and a (non-zero) manager count below the
// recommended minimum of 3 in a swarm of more than 3 nodes.
func GenerateWarnings(cluster model.ClusterInfo, nodes []model.Node, services []model.Service) []model.Warning {
	var warnings []model.Warning

	for _, n := range nodes {
		switch {
		case n.Status == model.NodeStatusDown:
			warnings = append(warnings, model.Warning{
				Kind:    model.WarningNodeDown,
				Message: "node " + n.Hostname + " is down",
			})
		case n.Availability == model.NodeAvailabilityDrain:
			warnings = append(warnings, model.Warning{
				Kind:    model.WarningNodeDrained,
				Message: "node " + n.Hostname + " is drained",
			})
		}
	}

	for _, s := range services {
		running, desired, ok := splitReplicas(s.Replicas)
		if ok && running < desired {
			warnings = append(warnings, model.Warning{
				Kind:    model.WarningServiceDegraded,
				Message: "service " + s.Name + " running " + s.Replicas,
			})
		}
	}

	if cluster.Managers > 0 && cluster.Managers < 3 && cluster.Nodes > 3 {
		warnings = append(warnings, model.Warning{
			Kind:    model.WarningLowManagers,
			Message: "swarm has fewer than 3 managers",
		})
	}

	return warnings
}

// ParseReplicas parses a Service.Replicas field ("running/desired") for
// callers outside this package, e.g. the application shell computing a
// scale target relative to the current desired count.
func ParseReplicas(field string) (running, desired int, ok bool) {
	return splitReplicas(field)
}

func splitReplicas(field string) (running, desired int, ok bool) {
	parts := strings.SplitN(field, "/", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	running, err1 := strconv.Atoi(parts[0])
	desired, err2 := strconv.Atoi(parts[1])

	return running, desired, err1 == nil && err2 == nil
}
