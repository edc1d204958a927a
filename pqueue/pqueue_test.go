package pqueue_test

import (
	"testing"

	"github.com/wattpath/evroute/pqueue"
)

func TestIDQueue_PushPopOrder(t *testing.T) {
	q := pqueue.New(5)
	q.Push(0, 10)
	q.Push(1, 2)
	q.Push(2, 7)

	var order []int
	for q.Len() > 0 {
		order = append(order, q.Pop().ID)
	}
	want := []int{1, 2, 0}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestIDQueue_DecreaseKey(t *testing.T) {
	q := pqueue.New(3)
	q.Push(0, 10)
	q.Push(1, 20)
	if !q.Contains(1) {
		t.Fatalf("expected id 1 to be queued")
	}
	q.DecreaseKey(1, 1)
	if got := q.Pop().ID; got != 1 {
		t.Fatalf("Pop() = %d, want 1 after decrease-key", got)
	}
}

func TestIDQueue_IncreaseKey(t *testing.T) {
	q := pqueue.New(3)
	q.Push(0, 1)
	q.Push(1, 2)
	q.IncreaseKey(0, 100)
	if got := q.Pop().ID; got != 1 {
		t.Fatalf("Pop() = %d, want 1 after increase-key demotes 0", got)
	}
}

func TestIDQueue_ContainsAfterPop(t *testing.T) {
	q := pqueue.New(2)
	q.Push(0, 5)
	q.Pop()
	if q.Contains(0) {
		t.Fatalf("expected id 0 to not be queued after pop")
	}
}

func TestIDQueue_Clear(t *testing.T) {
	q := pqueue.New(2)
	q.Push(0, 5)
	q.Push(1, 3)
	q.Clear()
	if q.Len() != 0 {
		t.Fatalf("expected empty queue after Clear")
	}
	if q.Contains(0) || q.Contains(1) {
		t.Fatalf("expected no ids queued after Clear")
	}
}
