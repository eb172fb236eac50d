package builders

import "github.com/bawdo/wincall/nodes"

// NewArg0Builder returns a Builder that accepts calls with no arguments.
func NewArg0Builder(kind nodes.WindowKind, fn func(name string) nodes.Node) *Builder {
	return &Builder{kind: kind, arity: 0, create0: fn}
}

// NewArg1Builder returns a Builder that accepts calls with exactly one argument.
func NewArg1Builder(kind nodes.WindowKind, fn func(name string, arg1 nodes.Node) nodes.Node) *Builder {
	return &Builder{kind: kind, arity: 1, create1: fn}
}

// NewArg2Builder returns a Builder that accepts calls with exactly two arguments.
func NewArg2Builder(kind nodes.WindowKind, fn func(name string, arg1, arg2 nodes.Node) nodes.Node) *Builder {
	return &Builder{kind: kind, arity: 2, create2: fn}
}

// NewArg3Builder returns a Builder that accepts calls with exactly three arguments.
func NewArg3Builder(kind nodes.WindowKind, fn func(name string, arg1, arg2, arg3 nodes.Node) nodes.Node) *Builder {
	return &Builder{kind: kind, arity: 3, create3: fn}
}

// newVariadicBuilder returns a Builder whose list form applies its own
// argument policy before forwarding four operands to fn.
func newVariadicBuilder(kind nodes.WindowKind, list createListFunc, fn create4Func) *Builder {
	return &Builder{kind: kind, arity: Variadic, createList: list, create4: fn}
}
