// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package format

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// yamlAdapter works on yaml.Node trees so mapping order survives decoding.
type yamlAdapter struct {
	doc documentCodec
}

func newYAMLAdapter(logger zerolog.Logger) *yamlAdapter {
	return &yamlAdapter{doc: documentCodec{fieldCodec: fieldCodec{format: YAML, logger: logger}}}
}

func (a *yamlAdapter) ID() string { return YAML }

func (a *yamlAdapter) Decode(path string, s *schema.Schema) (schema.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read yaml file: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse yaml file: %w", err)
	}

	root := newObject()
	if node.Kind != 0 {
		v, err := fromYAMLNode(&node)
		if err != nil {
			return nil, err
		}
		switch t := v.(type) {
		case *object:
			root = t
		case nil:
		default:
			return nil, fmt.Errorf("yaml file: %w", ErrNotAMapping)
		}
	}
	return a.doc.decode(root, s), nil
}

func (a *yamlAdapter) Encode(path string, rec schema.Record, s *schema.Schema) error {
	node, err := toYAMLNode(a.doc.encode(rec, s))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close yaml encoder: %w", err)
	}

	return writeFile(a.doc.logger, path, func(w io.Writer) error {
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func fromYAMLNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.MappingNode:
		o := newObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			o.set(n.Content[i].Value, v)
		}
		return o, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := fromYAMLNode(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode yaml scalar at line %d: %w", n.Line, err)
		}
		return fromNative(v), nil
	}
	return nil, fmt.Errorf("unsupported yaml node kind %d at line %d", n.Kind, n.Line)
}

func toYAMLNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case *object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range t.keys {
			child, err := toYAMLNode(t.values[k])
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				child,
			)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t {
			child, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, fmt.Errorf("encode yaml value: %w", err)
	}
	return n, nil
}
