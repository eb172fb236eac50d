package testutil

import (
	"slices"
	"testing"

	"github.com/bawdo/wincall/nodes"
)

// AssertEqual fails the test when got differs from want.
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("want:\n  %v\ngot:\n  %v", want, got)
	}
}

// AssertSQL renders node with v and compares the text.
func AssertSQL(t *testing.T, v nodes.Visitor, node nodes.Node, expected string) {
	t.Helper()
	if got := node.Accept(v); got != expected {
		t.Errorf("want SQL:\n  %s\ngot:\n  %s", expected, got)
	}
}

// AssertParams compares the values a parameterizing visitor has bound so
// far. An empty want means nothing may have been bound.
func AssertParams(t *testing.T, v nodes.Visitor, want ...any) {
	t.Helper()
	p, ok := v.(nodes.Parameterizer)
	if !ok {
		t.Fatalf("%T does not collect parameters", v)
	}
	if got := p.Params(); !slices.Equal(got, want) {
		t.Errorf("want params %v, got %v", want, got)
	}
}

// AssertNoError stops the test on a non-nil err.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError stops the test when err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
}
