// Package ingest consumes the understanding backend's streaming events and
// merges graph deltas into the store. Consumption is best-effort: error
// events and undecodable lines are logged and skipped, never fatal.
package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/jinyoung/classdiag/graph"
)

// Event envelope types emitted by the understanding stream.
const (
	EventMessage  = "message"
	EventGraph    = "graph"
	EventStatus   = "status"
	EventComplete = "complete"
	EventError    = "error"
)

// GraphDelta is an incremental batch of nodes and links. Entries repeat an
// existing id to overwrite it wholesale.
type GraphDelta struct {
	Nodes []graph.Node `json:"nodes"`
	Links []graph.Link `json:"links"`
}

// Envelope is one streamed event.
type Envelope struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	Status  string      `json:"status,omitempty"`
	Graph   *GraphDelta `json:"graph,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Consumer applies streamed events to a graph store.
type Consumer struct {
	store *graph.Store
	log   *zap.SugaredLogger
}

// NewConsumer creates a consumer over the store. A nil logger disables
// logging.
func NewConsumer(store *graph.Store, log *zap.SugaredLogger) *Consumer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Consumer{store: store, log: log}
}

// Apply folds one envelope into the store. It reports whether the stream
// is complete.
func (c *Consumer) Apply(env Envelope) bool {
	switch env.Type {
	case EventGraph:
		if env.Graph != nil {
			c.store.Merge(env.Graph.Nodes, env.Graph.Links)
			c.log.Debugw("merged graph delta", "nodes", len(env.Graph.Nodes), "links", len(env.Graph.Links))
		}
	case EventMessage:
		c.log.Infow("backend message", "message", env.Message)
	case EventStatus:
		c.log.Infow("backend status", "status", env.Status)
	case EventError:
		// Best-effort visualization: an error event never aborts the stream.
		c.log.Warnw("backend error event", "error", env.Error)
	case EventComplete:
		return true
	}
	return false
}

// ConsumeNDJSON reads envelopes framed one-per-line until a complete event
// or EOF. Undecodable lines are skipped.
func (c *Consumer) ConsumeNDJSON(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var env Envelope
		if err := json.Unmarshal([]byte(line), &env); err != nil {
			c.log.Warnw("skipping undecodable stream line", "error", err)
			continue
		}
		if done := c.Apply(env); done {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("understanding stream read failed: %w", err)
	}
	return nil
}

// ConsumeSSE reads envelopes framed as server-sent events: an optional
// `event:` line naming the envelope type, `data:` lines carrying JSON
// (multi-line data is concatenated), a blank line ending the event.
func (c *Consumer) ConsumeSSE(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var eventName string
	var data strings.Builder

	dispatch := func() bool {
		defer func() {
			eventName = ""
			data.Reset()
		}()
		if data.Len() == 0 {
			return false
		}

		var env Envelope
		if err := json.Unmarshal([]byte(data.String()), &env); err != nil {
			c.log.Warnw("skipping undecodable SSE event", "event", eventName, "error", err)
			return false
		}
		if env.Type == "" {
			env.Type = eventName
		}
		return c.Apply(env)
	}

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if done := dispatch(); done {
				return nil
			}
		case strings.HasPrefix(line, "event:"):
			eventName = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("understanding stream read failed: %w", err)
	}
	dispatch()
	return nil
}
