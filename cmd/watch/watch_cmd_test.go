package watch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinyoung/classdiag/cmd/watch/protocol"
	"github.com/jinyoung/classdiag/diagram"
	"github.com/jinyoung/classdiag/layout"
	"github.com/jinyoung/classdiag/uml"
)

func TestBroker_PublishAndSubscribe(t *testing.T) {
	b := newBroker()
	ch := b.subscribe()
	defer b.unsubscribe(ch)

	require.NoError(t, b.publish(protocol.DiagramSnapshot{Mermaid: "classDiagram", Classes: 3}))

	select {
	case got := <-ch:
		var snap protocol.DiagramSnapshot
		require.NoError(t, json.Unmarshal([]byte(got), &snap))
		assert.Equal(t, int64(1), snap.ID)
		assert.Equal(t, "classDiagram", snap.Mermaid)
		assert.Equal(t, 3, snap.Classes)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
}

func TestBroker_NewSubscriberReceivesLatest(t *testing.T) {
	b := newBroker()
	require.NoError(t, b.publish(protocol.DiagramSnapshot{Classes: 1}))
	require.NoError(t, b.publish(protocol.DiagramSnapshot{Classes: 2}))

	ch := b.subscribe()
	defer b.unsubscribe(ch)

	select {
	case got := <-ch:
		var snap protocol.DiagramSnapshot
		require.NoError(t, json.Unmarshal([]byte(got), &snap))
		assert.Equal(t, int64(2), snap.ID)
		assert.Equal(t, 2, snap.Classes)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for latest snapshot")
	}
}

func TestBroker_MultipleSubscribers(t *testing.T) {
	b := newBroker()
	ch1 := b.subscribe()
	ch2 := b.subscribe()
	defer b.unsubscribe(ch1)
	defer b.unsubscribe(ch2)

	require.NoError(t, b.publish(protocol.DiagramSnapshot{Classes: 5}))

	for name, ch := range map[string]chan string{"ch1": ch1, "ch2": ch2} {
		select {
		case got := <-ch:
			assert.Contains(t, got, `"classes":5`)
		case <-time.After(time.Second):
			t.Fatalf("%s: timed out", name)
		}
	}
}

func TestHandleIndex_ServesHTML(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	handleIndex(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "classdiag")
	assert.Contains(t, w.Body.String(), "EventSource")
}

func TestHandleSSE_StreamsDiagramEvent(t *testing.T) {
	b := newBroker()

	// Pre-publish so the subscriber gets data immediately on subscribe.
	require.NoError(t, b.publish(protocol.DiagramSnapshot{Mermaid: "classDiagram"}))

	server := httptest.NewServer(handleSSE(b))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	buf := make([]byte, 4096)
	n, _ := resp.Body.Read(buf)
	body := string(buf[:n])

	assert.Contains(t, body, "event: diagram")
	assert.Contains(t, body, `data: {"id":1`)
}

func TestIsExportChange(t *testing.T) {
	write := fsnotify.Event{Name: "out/graph.json", Op: fsnotify.Write}
	assert.True(t, isExportChange(write, "out/graph.json"))

	rename := fsnotify.Event{Name: "out/graph.json", Op: fsnotify.Rename}
	assert.True(t, isExportChange(rename, "out/graph.json"))

	chmod := fsnotify.Event{Name: "out/graph.json", Op: fsnotify.Chmod}
	assert.False(t, isExportChange(chmod, "out/graph.json"))

	other := fsnotify.Event{Name: "out/notes.txt", Op: fsnotify.Write}
	assert.False(t, isExportChange(other, "out/graph.json"))

	// Path comparison tolerates unclean forms.
	unclean := fsnotify.Event{Name: "out/./graph.json", Op: fsnotify.Write}
	assert.True(t, isExportChange(unclean, "out/graph.json"))
}

func TestParseSelections(t *testing.T) {
	selections := parseSelections([]string{"Order", "com/acme/billing:Invoice", "", "a:b:C"})

	require.Len(t, selections, 3)
	assert.Equal(t, diagram.Selection{ClassName: "Order"}, selections[0])
	assert.Equal(t, diagram.Selection{ClassName: "Invoice", Directory: "com/acme/billing"}, selections[1])
	// The last colon splits, so directories may themselves contain colons.
	assert.Equal(t, diagram.Selection{ClassName: "C", Directory: "a:b"}, selections[2])
}

func TestSnapshotOf(t *testing.T) {
	result := diagram.Result{
		Diagram: uml.ClassDiagram{
			Classes: []uml.Class{{ID: "c1", Name: "Order", Kind: "class"}},
		},
		Positions:  layout.Positions{"c1": layout.Point{X: 10, Y: 20}},
		Generation: 7,
	}

	snap := snapshotOf(result, "orders")

	assert.Equal(t, 1, snap.Classes)
	assert.Equal(t, 0, snap.Edges)
	assert.Equal(t, protocol.Position{X: 10, Y: 20}, snap.Positions["c1"])
	assert.Contains(t, snap.Mermaid, "title: orders")
	assert.Contains(t, snap.Mermaid, "classDiagram")
}

func TestNewCommand_DefaultPort(t *testing.T) {
	cmd := NewCommand()
	port, err := cmd.Flags().GetInt("port")
	require.NoError(t, err)
	assert.Equal(t, 4900, port)
}
