// Package document loads and saves YAML files as node trees so that comments,
// quoting and key order survive a load-modify-save round trip.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Codec carries the serializer settings used for every load and save.
type Codec struct {
	Indent int
}

func DefaultCodec() Codec {
	return Codec{Indent: 2}
}

// LoadFile reads path and returns its document node.
func (c Codec) LoadFile(path string) (*yaml.Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return c.Decode(file)
}

// Decode parses the first YAML document in r. An empty stream yields an empty
// document node rather than an error.
func (c Codec) Decode(r io.Reader) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &yaml.Node{Kind: yaml.DocumentNode}, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &doc, nil
}

// SaveFile overwrites path with the encoded document. The file is truncated
// before writing, so a failure halfway leaves a partial file behind.
func (c Codec) SaveFile(path string, doc *yaml.Node) error {
	data, err := c.Encode(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (c Codec) Encode(doc *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(c.indent())
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func (c Codec) indent() int {
	if c.Indent <= 0 {
		return 2
	}
	return c.Indent
}

// Root returns the top-level content node of doc, or nil for an empty document.
func Root(doc *yaml.Node) *yaml.Node {
	if doc == nil {
		return nil
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return doc.Content[0]
	}
	return doc
}

// Lookup returns the value node stored under key in a mapping node.
func Lookup(mapping *yaml.Node, key string) (*yaml.Node, bool) {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1], true
		}
	}
	return nil, false
}

// Append adds key: value to the end of a mapping node.
func Append(mapping *yaml.Node, key, value *yaml.Node) {
	mapping.Content = append(mapping.Content, key, value)
}

// IsNull reports whether n is absent or an explicit YAML null.
func IsNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func StringNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func BoolNode(v bool) *yaml.Node {
	value := "false"
	if v {
		value = "true"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: value}
}

func MappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// PlainNode returns an untagged scalar whose type is resolved from its text
// when re-read, so a year such as 2021 stays an integer key.
func PlainNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}
