package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// flexID accepts node/link identifiers serialized either as JSON strings
// or as bare numbers; exports differ between backend versions.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

// rawNode tolerates the property/label spellings seen across backend
// export versions.
type rawNode struct {
	ID         flexID     `json:"id"`
	Labels     []string   `json:"labels"`
	Properties Properties `json:"properties"`
}

type rawLink struct {
	ID         flexID       `json:"id"`
	Source     flexID       `json:"source"`
	Target     flexID       `json:"target"`
	Start      flexID       `json:"start"`
	End        flexID       `json:"end"`
	Type       RelationType `json:"type"`
	Properties Properties   `json:"properties"`
}

type rawGraph struct {
	Nodes []rawNode `json:"nodes"`
	// Graph-database exports name the edge list either way.
	Links         []rawLink `json:"links"`
	Relationships []rawLink `json:"relationships"`
}

// Decode reads a graph export ({"nodes": [...], "links"|"relationships":
// [...]}) and returns classified nodes and links. Entries without an id or
// with missing endpoints are skipped rather than rejected.
func Decode(r io.Reader) ([]Node, []Link, error) {
	dec := json.NewDecoder(r)

	var raw rawGraph
	if err := dec.Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("failed to decode graph export: %w", err)
	}

	nodes := make([]Node, 0, len(raw.Nodes))
	for _, rn := range raw.Nodes {
		id := string(rn.ID)
		if id == "" {
			continue
		}
		props := rn.Properties
		if props == nil {
			props = Properties{}
		}
		nodes = append(nodes, Node{
			ID:     id,
			Labels: rn.Labels,
			Props:  props,
			Role:   ClassifyLabels(rn.Labels),
		})
	}

	rawLinks := raw.Links
	if len(rawLinks) == 0 {
		rawLinks = raw.Relationships
	}
	links := make([]Link, 0, len(rawLinks))
	for _, rl := range rawLinks {
		source := firstNonEmpty(string(rl.Source), string(rl.Start))
		target := firstNonEmpty(string(rl.Target), string(rl.End))
		if string(rl.ID) == "" || source == "" || target == "" {
			continue
		}
		props := rl.Properties
		if props == nil {
			props = Properties{}
		}
		links = append(links, Link{
			ID:       string(rl.ID),
			SourceID: source,
			TargetID: target,
			Type:     RelationType(strings.ToUpper(string(rl.Type))),
			Props:    props,
		})
	}

	return nodes, links, nil
}

// DecodeFile decodes a graph export from disk.
func DecodeFile(path string) ([]Node, []Link, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open graph export %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
