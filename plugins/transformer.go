// Package plugins defines the Transformer interface for AST middleware.
package plugins

import "github.com/bawdo/wincall/nodes"

// Transformer is the interface that AST transformation plugins implement.
// Plugins embed BaseTransformer and override only the methods they need.
type Transformer interface {
	TransformSelect(core *nodes.SelectCore) (*nodes.SelectCore, error)
}

// BaseTransformer provides a no-op default for Transformer.
type BaseTransformer struct{}

func (BaseTransformer) TransformSelect(c *nodes.SelectCore) (*nodes.SelectCore, error) {
	return c, nil
}
