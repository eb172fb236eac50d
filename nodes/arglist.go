package nodes

// ArgList is the ordered argument list of a function call. Builders consume
// it from the front with Pop as they bind formal parameters, so a list must
// not be reused after it has been handed to a builder.
//
// A nil *ArgList is a valid empty list.
type ArgList struct {
	items []Node
}

// NewArgList creates an ArgList holding items in call order.
func NewArgList(items ...Node) *ArgList {
	l := &ArgList{items: make([]Node, len(items))}
	copy(l.items, items)
	return l
}

// Len returns the number of arguments left in the list.
func (l *ArgList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Push appends n to the end of the list.
func (l *ArgList) Push(n Node) {
	l.items = append(l.items, n)
}

// Pop removes and returns the first argument, or nil when the list is empty.
func (l *ArgList) Pop() Node {
	if l.Len() == 0 {
		return nil
	}
	n := l.items[0]
	l.items[0] = nil
	l.items = l.items[1:]
	return n
}

// Items returns the arguments left in the list without consuming them.
func (l *ArgList) Items() []Node {
	if l == nil {
		return nil
	}
	return l.items
}
