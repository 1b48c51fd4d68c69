package swarmclient

import (
	"testing"

	"github.com/rshzrh/sitrep/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStacksGroupsByNamespace(t *testing.T) {
	services := []model.Service{
		{ID: "1", Name: "web", Stack: "blog"},
		{ID: "2", Name: "db", Stack: "blog"},
		{ID: "3", Name: "standalone"},
		{ID: "4", Name: "worker", Stack: "jobs"},
	}

	stacks := BuildStacks(services)

	assert.Len(t, stacks, 2)
	assert.Equal(t, "blog", stacks[0].Name)
	assert.Equal(t, []int{0, 1}, stacks[0].ServiceIndices)
	assert.Equal(t, "jobs", stacks[1].Name)
	assert.Equal(t, []int{3}, stacks[1].ServiceIndices)
}

func TestBuildStacksSortsByNameRegardlessOfServiceOrder(t *testing.T) {
	services := []model.Service{
		{ID: "1", Name: "web", Stack: "zeta"},
		{ID: "2", Name: "db", Stack: "alpha"},
		{ID: "3", Name: "worker", Stack: "mid"},
	}

	stacks := BuildStacks(services)

	require.Len(t, stacks, 3)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, []string{stacks[0].Name, stacks[1].Name, stacks[2].Name})
}

func TestGenerateWarningsNodeDown(t *testing.T) {
	nodes := []model.Node{{Hostname: "node-1", Status: model.NodeStatusDown}}

	warnings := GenerateWarnings(model.ClusterInfo{}, nodes, nil)

	assert.Len(t, warnings, 1)
	assert.Equal(t, model.WarningNodeDown, warnings[0].Kind)
}

func TestGenerateWarningsServiceDegraded(t *testing.T) {
	services := []model.Service{{Name: "web", Replicas: "1/3"}}

	warnings := GenerateWarnings(model.ClusterInfo{}, nil, services)

	assert.Len(t, warnings, 1)
	assert.Equal(t, model.WarningServiceDegraded, warnings[0].Kind)
}

func TestGenerateWarningsLowManagers(t *testing.T) {
	cluster := model.ClusterInfo{Managers: 1, Nodes: 4}

	warnings := GenerateWarnings(cluster, nil, nil)

	assert.Len(t, warnings, 1)
	assert.Equal(t, model.WarningLowManagers, warnings[0].Kind)
}

func TestGenerateWarningsHealthyClusterIsQuiet(t *testing.T) {
	cluster := model.ClusterInfo{Managers: 3, Nodes: 5}
	nodes := []model.Node{{Status: model.NodeStatusReady, Availability: model.NodeAvailabilityActive}}
	services := []model.Service{{Replicas: "3/3"}}

	assert.Empty(t, GenerateWarnings(cluster, nodes, services))
}
