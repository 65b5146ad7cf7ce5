// Package loader decodes YAML template descriptors into template trees and host metadata.
package loader

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"ngc-pipeline/packages/compiler/src/render3"
	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src"
	"ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// Descriptor is a decoded template descriptor
type Descriptor struct {
	Path   string
	Digest string

	Component string
	// Mode as written in the file, empty when the file leaves it to the configuration.
	Mode     string
	Template []render3.Node
	Host     *pipeline.HostBindings
}

// Metadata returns the component metadata of the descriptor. The file's own mode wins over defaultMode.
func (d *Descriptor) Metadata(defaultMode compilation.TemplateCompilationMode) *pipeline.ComponentMetadata {
	mode := defaultMode
	switch d.Mode {
	case "full":
		mode = compilation.TemplateCompilationModeFull
	case "dom-only":
		mode = compilation.TemplateCompilationModeDomOnly
	}
	return &pipeline.ComponentMetadata{
		Name:     d.Component,
		Template: d.Template,
		Mode:     mode,
		Host:     d.Host,
	}
}

// Error is a problem at a position of a descriptor file
type Error struct {
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

func errorAt(node *yaml.Node, format string, args ...interface{}) error {
	return &Error{Line: node.Line, Column: node.Column, Message: fmt.Sprintf(format, args...)}
}

// Cache memoizes decoded descriptors by path and content digest for the length of one run.
// It is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Descriptor
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Descriptor)}
}

// Len returns the number of cached descriptors
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) get(key string) (*Descriptor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.entries[key]
	return d, ok
}

func (c *Cache) put(key string, d *Descriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = d
}

// Load reads and decodes the descriptor at path. A nil cache disables memoization.
func Load(path string, cache *Cache) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	key := path + "@" + digest
	if cache != nil {
		if d, ok := cache.get(key); ok {
			return d, nil
		}
	}

	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	d.Path = path
	d.Digest = digest
	if cache != nil {
		cache.put(key, d)
	}
	return d, nil
}

// Parse decodes a descriptor from YAML source
func Parse(data []byte) (*Descriptor, error) {
	var doc yaml.Node
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, errorAt(&doc, "expected a single document")
	}
	var d Descriptor
	if err := d.UnmarshalYAML(doc.Content[0]); err != nil {
		return nil, err
	}
	return &d, nil
}

// UnmarshalYAML decodes the top level mapping of a descriptor
func (d *Descriptor) UnmarshalYAML(node *yaml.Node) error {
	fields, err := mappingFields(node, "descriptor", "component", "mode", "template", "host")
	if err != nil {
		return err
	}

	component, ok := fields["component"]
	if !ok {
		return errorAt(node, "descriptor has no component name")
	}
	if d.Component, err = scalarString(component); err != nil {
		return err
	}

	if mode, ok := fields["mode"]; ok {
		if d.Mode, err = scalarString(mode); err != nil {
			return err
		}
		if d.Mode != "full" && d.Mode != "dom-only" {
			return errorAt(mode, "unknown mode %q, expected full or dom-only", d.Mode)
		}
	}

	if template, ok := fields["template"]; ok {
		if d.Template, err = decodeNodes(template); err != nil {
			return err
		}
	}

	if host, ok := fields["host"]; ok {
		if d.Host, err = decodeHost(host); err != nil {
			return err
		}
	}
	return nil
}

func decodeHost(node *yaml.Node) (*pipeline.HostBindings, error) {
	fields, err := mappingFields(node, "host", "properties", "attributes", "listeners")
	if err != nil {
		return nil, err
	}
	host := &pipeline.HostBindings{}
	if properties, ok := fields["properties"]; ok {
		if host.Properties, err = decodeInputs(properties, ""); err != nil {
			return nil, err
		}
	}
	if attributes, ok := fields["attributes"]; ok {
		if host.Attributes, err = decodeAttributes(attributes); err != nil {
			return nil, err
		}
	}
	if listeners, ok := fields["listeners"]; ok {
		if host.Listeners, err = decodeOutputs(listeners); err != nil {
			return nil, err
		}
	}
	return host, nil
}

// mappingFields returns the values of a mapping by key, rejecting keys outside of allowed
func mappingFields(node *yaml.Node, what string, allowed ...string) (map[string]*yaml.Node, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errorAt(node, "expected a mapping for %s", what)
	}
	known := make(map[string]bool, len(allowed))
	for _, key := range allowed {
		known[key] = true
	}
	fields := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if !known[key.Value] {
			return nil, errorAt(key, "unknown key %q in %s", key.Value, what)
		}
		if _, dup := fields[key.Value]; dup {
			return nil, errorAt(key, "duplicate key %q in %s", key.Value, what)
		}
		fields[key.Value] = value
	}
	return fields, nil
}

// mappingPairs returns the entries of a mapping in source order
func mappingPairs(node *yaml.Node, what string) ([][2]*yaml.Node, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errorAt(node, "expected a mapping for %s", what)
	}
	pairs := make([][2]*yaml.Node, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		pairs = append(pairs, [2]*yaml.Node{node.Content[i], node.Content[i+1]})
	}
	return pairs, nil
}

func sequence(node *yaml.Node, what string) ([]*yaml.Node, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, errorAt(node, "expected a list for %s", what)
	}
	return node.Content, nil
}

func scalarString(node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode {
		return "", errorAt(node, "expected a string")
	}
	return node.Value, nil
}

func optionalString(fields map[string]*yaml.Node, key string) (*string, error) {
	node, ok := fields[key]
	if !ok {
		return nil, nil
	}
	value, err := scalarString(node)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func stringList(node *yaml.Node) ([]string, error) {
	items, err := sequence(node, "strings")
	if err != nil {
		return nil, err
	}
	values := make([]string, len(items))
	for i, item := range items {
		if values[i], err = scalarString(item); err != nil {
			return nil, err
		}
	}
	return values, nil
}
