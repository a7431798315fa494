// Package nodebuf implements the node buffer the parser uses to
// assemble sub-parses (selector groups, value lists, string interiors)
// before splicing them into the emitted stream. It is a singly linked
// list chosen specifically for O(1) prepend, append, and concat, the
// three operations a compound-wrapping recursive descent needs; a
// growable slice would make prepend O(n) every time a compound turns out
// to need a *Start node in front of what's already been collected.
package nodebuf

type entry[T any] struct {
	val  T
	next *entry[T]
}

// List is an ordered sequence of T with cheap prepend, append, and
// take-from-front.
type List[T any] struct {
	head, tail *entry[T]
	size       int
}

func New[T any]() *List[T] {
	return &List[T]{}
}

func (l *List[T]) Size() int {
	return l.size
}

// Add appends v to the tail.
func (l *List[T]) Add(v T) {
	e := &entry[T]{val: v}
	if l.tail == nil {
		l.head, l.tail = e, e
	} else {
		l.tail.next = e
		l.tail = e
	}
	l.size++
}

// Unshift prepends v to the head.
func (l *List[T]) Unshift(v T) {
	e := &entry[T]{val: v, next: l.head}
	l.head = e
	if l.tail == nil {
		l.tail = e
	}
	l.size++
}

// Take removes and returns the head item, if any.
func (l *List[T]) Take() (T, bool) {
	if l.head == nil {
		var zero T
		return zero, false
	}
	e := l.head
	l.head = e.next
	if l.head == nil {
		l.tail = nil
	}
	l.size--
	return e.val, true
}

// Concat moves all of b onto the tail of a in O(1) and returns the
// combined list. b is left empty. Either argument may be empty.
func Concat[T any](a, b *List[T]) *List[T] {
	if b.head == nil {
		return a
	}
	if a.head == nil {
		a.head, a.tail, a.size = b.head, b.tail, b.size
		b.head, b.tail, b.size = nil, nil, 0
		return a
	}
	a.tail.next = b.head
	a.tail = b.tail
	a.size += b.size
	b.head, b.tail, b.size = nil, nil, 0
	return a
}
