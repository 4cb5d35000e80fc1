package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinyoung/classdiag/graph"
)

func TestConsumeNDJSONMergesDeltas(t *testing.T) {
	stream := strings.Join([]string{
		`{"type":"message","message":"analysis started"}`,
		`{"type":"graph","graph":{"nodes":[{"id":"c1","labels":["Class"],"properties":{"name":"Order"}}],"links":[]}}`,
		`this line is not JSON`,
		``,
		`{"type":"graph","graph":{"nodes":[{"id":"c2","labels":["Interface"],"properties":{"name":"OrderRepo"}}],"links":[{"id":"l1","source":"c1","target":"c2","type":"implements"}]}}`,
		`{"type":"status","status":"indexing"}`,
		`{"type":"error","error":"partial parse in Billing.java"}`,
		`{"type":"complete"}`,
		`{"type":"graph","graph":{"nodes":[{"id":"after","labels":["Class"]}],"links":[]}}`,
	}, "\n")

	store := graph.NewStore()
	consumer := NewConsumer(store, nil)

	require.NoError(t, consumer.ConsumeNDJSON(strings.NewReader(stream)))

	nodes, links := store.Len()
	assert.Equal(t, 2, nodes, "deltas after the complete event must not be applied")
	assert.Equal(t, 1, links)

	snapshot := store.Snapshot()
	assert.Equal(t, graph.RoleInterface, snapshot.NodeByID()["c2"].Role)
	assert.Equal(t, graph.RelImplements, snapshot.Links[0].Type)
}

func TestConsumeNDJSONOverwritesRepeatedIDs(t *testing.T) {
	stream := strings.Join([]string{
		`{"type":"graph","graph":{"nodes":[{"id":"c1","labels":["Class"],"properties":{"name":"Draft"}}]}}`,
		`{"type":"graph","graph":{"nodes":[{"id":"c1","labels":["Class"],"properties":{"name":"Order"}}]}}`,
	}, "\n")

	store := graph.NewStore()
	require.NoError(t, NewConsumer(store, nil).ConsumeNDJSON(strings.NewReader(stream)))

	nodes, _ := store.Len()
	assert.Equal(t, 1, nodes)
	assert.Equal(t, "Order", store.Snapshot().Nodes[0].ClassName())
}

func TestConsumeSSE(t *testing.T) {
	stream := strings.Join([]string{
		"event: message",
		`data: {"message":"hello"}`,
		"",
		"event: graph",
		`data: {"graph":{"nodes":[{"id":"c1","labels":`,
		`data: ["Class"],"properties":{"name":"Order"}}]}}`,
		"",
		"event: graph",
		"data: not valid json",
		"",
		"event: complete",
		"data: {}",
		"",
	}, "\n")

	store := graph.NewStore()
	require.NoError(t, NewConsumer(store, nil).ConsumeSSE(strings.NewReader(stream)))

	nodes, _ := store.Len()
	require.Equal(t, 1, nodes)
	assert.Equal(t, "Order", store.Snapshot().Nodes[0].ClassName())
}

func TestConsumeSSEDispatchesTrailingEventAtEOF(t *testing.T) {
	stream := strings.Join([]string{
		"event: graph",
		`data: {"graph":{"nodes":[{"id":"c9","labels":["Class"]}]}}`,
	}, "\n")

	store := graph.NewStore()
	require.NoError(t, NewConsumer(store, nil).ConsumeSSE(strings.NewReader(stream)))

	nodes, _ := store.Len()
	assert.Equal(t, 1, nodes)
}

func TestApplyReportsCompletion(t *testing.T) {
	consumer := NewConsumer(graph.NewStore(), nil)

	assert.False(t, consumer.Apply(Envelope{Type: EventMessage, Message: "hi"}))
	assert.False(t, consumer.Apply(Envelope{Type: EventError, Error: "boom"}))
	assert.False(t, consumer.Apply(Envelope{Type: EventGraph}))
	assert.True(t, consumer.Apply(Envelope{Type: EventComplete}))
}
