package workflow

import (
	"encoding/json"
	"fmt"
)

// Parser handles parsing of workflow JSON payloads.
type Parser struct{}

// NewParser creates a new workflow parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses a JSON workflow payload into a Workflow and validates its
// structural invariants (non-empty, unique node ids, connections reference
// existing nodes).
func (p *Parser) Parse(jsonData []byte) (*Workflow, error) {
	var wf Workflow
	if err := json.Unmarshal(jsonData, &wf); err != nil {
		return nil, fmt.Errorf("failed to parse workflow JSON: %w", err)
	}

	if err := p.validate(&wf); err != nil {
		return nil, fmt.Errorf("workflow validation failed: %w", err)
	}

	return &wf, nil
}

func (p *Parser) validate(wf *Workflow) error {
	if len(wf.Nodes) == 0 {
		return ErrEmptyWorkflow
	}

	nodeIDs := make(map[string]bool, len(wf.Nodes))
	for _, node := range wf.Nodes {
		if node.ID == "" {
			return ErrMissingNodeID
		}
		if node.Type == "" {
			return fmt.Errorf("%w: node %q", ErrMissingNodeType, node.ID)
		}
		if nodeIDs[node.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateNodeID, node.ID)
		}
		nodeIDs[node.ID] = true
	}

	for _, conn := range wf.Connections {
		if !nodeIDs[conn.From.NodeID] {
			return fmt.Errorf("%w: %s", ErrConnectionUnknownSource, conn.From.NodeID)
		}
		if !nodeIDs[conn.To.NodeID] {
			return fmt.Errorf("%w: %s", ErrConnectionUnknownTarget, conn.To.NodeID)
		}
	}

	return nil
}
