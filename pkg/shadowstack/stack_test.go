package shadowstack

import "testing"

func TestStackPushPopPeek(t *testing.T) {
	var s Stack

	if s.Depth() != 0 {
		t.Fatalf("Depth() = %d; want 0", s.Depth())
	}

	s.Push(CallRecord{CalleeAddr: 1, Name: "f"})
	s.Push(CallRecord{CalleeAddr: 2, Name: "g"})

	if s.Depth() != 2 {
		t.Fatalf("Depth() = %d; want 2", s.Depth())
	}

	top, err := s.Peek(0)
	if err != nil || top.Name != "g" {
		t.Fatalf("Peek(0) = %+v, %v; want g, nil", top, err)
	}

	bottom, err := s.Peek(1)
	if err != nil || bottom.Name != "f" {
		t.Fatalf("Peek(1) = %+v, %v; want f, nil", bottom, err)
	}

	if _, err := s.Peek(2); err == nil {
		t.Fatalf("Peek(2) on a depth-2 stack did not fail")
	}

	s.Pop()
	if s.Depth() != 1 {
		t.Fatalf("Depth() after Pop() = %d; want 1", s.Depth())
	}

	s.Pop()
	s.Pop() // pop on empty is a no-op
	if s.Depth() != 0 {
		t.Fatalf("Depth() after draining = %d; want 0", s.Depth())
	}
}

func TestStackForeachOrder(t *testing.T) {
	var s Stack
	s.Push(CallRecord{Name: "f"})
	s.Push(CallRecord{Name: "g"})
	s.Push(CallRecord{Name: "h"})

	var order []string
	s.Foreach(func(offset int, r CallRecord) {
		order = append(order, r.Name)
	})

	want := []string{"h", "g", "f"}
	if len(order) != len(want) {
		t.Fatalf("Foreach visited %v; want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Foreach order[%d] = %s; want %s", i, order[i], want[i])
		}
	}
}

func TestStackRecursionAllowsDuplicateAddr(t *testing.T) {
	var s Stack
	s.Push(CallRecord{CalleeAddr: 0x42, Name: "recurse"})
	s.Push(CallRecord{CalleeAddr: 0x42, Name: "recurse"})

	if s.Depth() != 2 {
		t.Fatalf("Depth() = %d; want 2 (recursion must not be deduplicated)", s.Depth())
	}
}
