package swarmclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClusterInfo(t *testing.T) {
	raw := []byte(`{"Swarm":{"LocalNodeState":"active","NodeID":"abc123","NodeAddr":"10.0.0.1","ControlAvailable":true,"Managers":3,"Nodes":5}}`)

	info, err := parseClusterInfo(raw)
	require.NoError(t, err)

	assert.Equal(t, "abc123", info.LocalNodeID)
	assert.True(t, info.SwarmAvailable())
	assert.Equal(t, 3, info.Managers)
	assert.Equal(t, 5, info.Nodes)
}

func TestParseClusterInfoInactive(t *testing.T) {
	raw := []byte(`{"Swarm":{"LocalNodeState":"inactive"}}`)

	info, err := parseClusterInfo(raw)
	require.NoError(t, err)
	assert.False(t, info.SwarmAvailable())
}

func TestParseNodesSkipsMalformedLines(t *testing.T) {
	raw := []byte("{\"ID\":\"n1\",\"Hostname\":\"h1\",\"Status\":\"Ready\",\"Availability\":\"Active\"}\nnot json\n{\"ID\":\"n2\",\"Hostname\":\"h2\",\"ManagerStatus\":{\"Leader\":true,\"Reachability\":\"reachable\"}}\n")

	nodes := parseNodes(raw)

	require.Len(t, nodes, 2)
	assert.Equal(t, "h1", nodes[0].Hostname)
	assert.Equal(t, "h2", nodes[1].Hostname)
	assert.True(t, nodes[1].Leader)
}

func TestParseServicesModeAndReplicas(t *testing.T) {
	raw := []byte(`{"ID":"s1","Name":"web","Mode":"replicated","Replicas":"2/3","Image":"nginx:latest"}`)

	services := parseServices(raw)

	require.Len(t, services, 1)
	assert.Equal(t, "2/3", services[0].Replicas)
}

func TestParseStackLabels(t *testing.T) {
	raw := []byte("svc1:stackA\nsvc2:\nsvc3:stackB\n")

	labels := parseStackLabels(raw)

	assert.Equal(t, "stackA", labels["svc1"])
	assert.Equal(t, "stackB", labels["svc3"])
	_, ok := labels["svc2"]
	assert.False(t, ok)
}

func TestSplitReplicas(t *testing.T) {
	running, desired, ok := splitReplicas("2/3")
	require.True(t, ok)
	assert.Equal(t, 2, running)
	assert.Equal(t, 3, desired)

	_, _, ok = splitReplicas("garbage")
	assert.False(t, ok)
}
