package streams

import "testing"

func TestBufferPushReplaysInOrder(t *testing.T) {
	b := NewBuffer(New(sliceProducer([]int{5, 6})))
	b.Push(1)
	b.Push(2)

	for _, want := range []int{1, 2, 5, 6} {
		got, ok := b.Next()
		if !ok || got != want {
			t.Fatalf("Next() = (%d, %v), want (%d, true)", got, ok, want)
		}
	}
}

func TestBufferPeekPrefersQueue(t *testing.T) {
	b := NewBuffer(New(sliceProducer([]int{9})))
	b.Push(1)
	got, ok := b.Peek()
	if !ok || got != 1 {
		t.Fatalf("Peek() = (%d, %v), want (1, true)", got, ok)
	}
	b.Junk()
	got, ok = b.Peek()
	if !ok || got != 9 {
		t.Fatalf("Peek() after draining queue = (%d, %v), want (9, true)", got, ok)
	}
}
