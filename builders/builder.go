// Package builders resolves window-function calls into AST nodes.
//
// A Builder turns a function name and its raw argument list into a
// nodes.WindowFuncNode, checking the argument count and filling in the
// operands a call may leave implicit. Builders are immutable process-wide
// values; the registry maps case-insensitive names onto them.
package builders

import (
	"github.com/bawdo/wincall/nodes"
	"github.com/pingcap/errors"
)

// Variadic is the arity of builders that apply their own argument policy
// to the whole list instead of requiring a fixed count.
const Variadic = -1

// Options carries the call-site modifiers that a builder folds into the node
// it constructs. The zero value is FROM FIRST RESPECT NULLS.
type Options struct {
	// FromLast is set by a FROM LAST clause. FIRST_VALUE and LAST_VALUE
	// ignore it.
	FromLast bool
	// IgnoreNulls is set by an IGNORE NULLS clause.
	IgnoreNulls bool
}

type (
	create0Func    func(name string) nodes.Node
	create1Func    func(name string, arg1 nodes.Node) nodes.Node
	create2Func    func(name string, arg1, arg2 nodes.Node) nodes.Node
	create3Func    func(name string, arg1, arg2, arg3 nodes.Node) nodes.Node
	create4Func    func(name string, arg1, arg2, arg3, arg4 nodes.Node) nodes.Node
	createListFunc func(b *Builder, name string, args *nodes.ArgList, opts Options) (nodes.Node, error)
)

// Builder constructs the AST node for one window function or family of
// functions. Which construction forms it supports is fixed when it is
// created; a Builder is never modified afterwards, so it may be shared
// freely between goroutines.
type Builder struct {
	kind  nodes.WindowKind
	arity int

	create0    create0Func
	create1    create1Func
	create2    create2Func
	create3    create3Func
	create4    create4Func
	createList createListFunc
}

// Kind returns the node kind the builder produces.
func (b *Builder) Kind() nodes.WindowKind { return b.kind }

// Arity returns the fixed argument count, or Variadic.
func (b *Builder) Arity() int { return b.arity }

// Create builds the node for a call of name with args. Arguments are popped
// from the front of args as they are bound. On an argument count violation
// the error is reported to r (when non-nil) and returned with a nil node.
func (b *Builder) Create(r Reporter, name string, args *nodes.ArgList, opts Options) (nodes.Node, error) {
	var (
		n   nodes.Node
		err error
	)
	if b.arity == Variadic {
		n, err = b.createList(b, name, args, opts)
	} else {
		n, err = b.createFixed(name, args)
	}
	if err != nil {
		report(r, err)
		return nil, err
	}
	return n, nil
}

// createFixed pops exactly arity arguments and forwards them to the
// matching fixed form.
func (b *Builder) createFixed(name string, args *nodes.ArgList) (nodes.Node, error) {
	if args.Len() != b.arity {
		return nil, wrongArguments(name)
	}
	popped := make([]nodes.Node, b.arity)
	for i := range popped {
		popped[i] = args.Pop()
	}
	return b.Construct(name, popped...)
}

// Construct calls the fixed-arity form that takes len(args) operands. It
// bypasses defaulting, so variadic builders accept only their full
// operand count here.
func (b *Builder) Construct(name string, args ...nodes.Node) (nodes.Node, error) {
	switch len(args) {
	case 0:
		if b.create0 != nil {
			return b.create0(name), nil
		}
	case 1:
		if b.create1 != nil {
			return b.create1(name, args[0]), nil
		}
	case 2:
		if b.create2 != nil {
			return b.create2(name, args[0], args[1]), nil
		}
	case 3:
		if b.create3 != nil {
			return b.create3(name, args[0], args[1], args[2]), nil
		}
	case 4:
		if b.create4 != nil {
			return b.create4(name, args[0], args[1], args[2], args[3]), nil
		}
	}
	return nil, wrongArguments(name)
}

func (b *Builder) construct4(name string, arg1, arg2, arg3, arg4 nodes.Node) (nodes.Node, error) {
	if b.create4 == nil {
		return nil, errors.Errorf("window function %s has no four-operand form", name)
	}
	return b.create4(name, arg1, arg2, arg3, arg4), nil
}
