package content

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnknownBlock marks a block whose type tag is not one of Kinds.
var ErrUnknownBlock = errors.New("content: unknown block type")

// Blocks is an ordered list of page blocks. Each element is a pointer to one
// of the variant structs, or *Unknown.
type Blocks []Block

// UnmarshalYAML reads the `type` tag of every item and decodes the rest of the
// mapping into the matching variant.
func (b *Blocks) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("content: blocks must be a sequence (line %d)", node.Line)
	}
	out := make(Blocks, 0, len(node.Content))
	for _, item := range node.Content {
		var probe struct {
			Type string `yaml:"type"`
		}
		if err := item.Decode(&probe); err != nil {
			return fmt.Errorf("content: block at line %d: %w", item.Line, err)
		}
		if probe.Type == "" {
			return fmt.Errorf("content: block at line %d has no type", item.Line)
		}
		blk, ok := newBlock(Kind(probe.Type))
		if !ok {
			out = append(out, &Unknown{Type: probe.Type})
			continue
		}
		if err := item.Decode(blk); err != nil {
			return fmt.Errorf("content: %s block at line %d: %w", probe.Type, item.Line, err)
		}
		out = append(out, blk)
	}
	*b = out
	return nil
}

// MarshalJSON emits each block as an object with its `type` tag first-class.
func (b Blocks) MarshalJSON() ([]byte, error) {
	items := make([]map[string]json.RawMessage, 0, len(b))
	for _, blk := range b {
		if _, ok := blk.(*Unknown); ok {
			continue
		}
		raw, err := json.Marshal(blk)
		if err != nil {
			return nil, err
		}
		fields := map[string]json.RawMessage{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
		tag, _ := json.Marshal(string(blk.Kind()))
		fields["type"] = tag
		items = append(items, fields)
	}
	return json.Marshal(items)
}

// UnknownTypes returns the tags of blocks that were not recognised.
func (b Blocks) UnknownTypes() []string {
	var tags []string
	for _, blk := range b {
		if u, ok := blk.(*Unknown); ok {
			tags = append(tags, u.Type)
		}
	}
	return tags
}
