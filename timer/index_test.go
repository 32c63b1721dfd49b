package timer

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/gotimer/internal/timeutil"
)

func newTestEntry(base time.Time, id ID, d time.Duration) Entry {
	return NewEntryWithClock(timeutil.ClockFunc(func() time.Time { return base }), id, func(any) {}, nil, 0, int64(d))
}

// checkIndex verifies that both views hold the same items.
func checkIndex(t *testing.T, idx *index) {
	t.Helper()

	if got, want := len(idx.byID), len(idx.byDeadline); got != want {
		t.Fatalf("len(idx.byID) = %d, len(idx.byDeadline) = %d, want equal", got, want)
	}
	for i, it := range idx.byDeadline {
		if it.pos != i {
			t.Fatalf("idx.byDeadline[%d].pos = %d, want %d", i, it.pos, i)
		}
		if idx.byID[it.entry.id] != it {
			t.Fatalf("idx.byID[%q] does not match idx.byDeadline[%d]", it.entry.id, i)
		}
	}
}

func ids(entries []Entry) []ID {
	out := make([]ID, len(entries))
	for i, e := range entries {
		out[i] = e.ID()
	}
	return out
}

func TestIndex_InsertRemove(t *testing.T) {
	t.Parallel()

	base := time.Now()
	var idx index

	if _, ok := idx.peek(); ok {
		t.Fatal("idx.peek() on empty index ok = true, want false")
	}

	for _, e := range []Entry{
		newTestEntry(base, "c", 30*time.Millisecond),
		newTestEntry(base, "a", 10*time.Millisecond),
		newTestEntry(base, "d", 40*time.Millisecond),
		newTestEntry(base, "b", 20*time.Millisecond),
	} {
		if !idx.insert(e) {
			t.Fatalf("idx.insert(%q) = false, want true", e.ID())
		}
		checkIndex(t, &idx)
	}

	if idx.insert(newTestEntry(base, "a", 5*time.Millisecond)) {
		t.Fatal("idx.insert(duplicate a) = true, want false")
	}
	checkIndex(t, &idx)
	if e, _ := idx.get("a"); !e.Deadline().Equal(base.Add(10 * time.Millisecond)) {
		t.Errorf("idx.get(a).Deadline() = %v, want unchanged %v", e.Deadline(), base.Add(10*time.Millisecond))
	}

	if got := idx.len(); got != 4 {
		t.Errorf("idx.len() = %d, want 4", got)
	}
	if e, ok := idx.peek(); !ok || e.ID() != "a" {
		t.Errorf("idx.peek() = %q, %v, want a, true", e.ID(), ok)
	}

	if e, ok := idx.remove("c"); !ok || e.ID() != "c" {
		t.Errorf("idx.remove(c) = %q, %v, want c, true", e.ID(), ok)
	}
	checkIndex(t, &idx)
	if _, ok := idx.remove("c"); ok {
		t.Error("idx.remove(c) twice ok = true, want false")
	}
	if idx.has("c") {
		t.Error("idx.has(c) = true, want false")
	}

	if got := idx.popFront(); got.ID() != "a" {
		t.Errorf("idx.popFront() = %q, want a", got.ID())
	}
	checkIndex(t, &idx)

	if diff := cmp.Diff([]ID{"b", "d"}, ids(idx.entries())); diff != "" {
		t.Errorf("idx.entries() mismatch (-want +got):\n%s", diff)
	}
}

func TestIndex_EqualDeadlinesKeepRegistrationOrder(t *testing.T) {
	t.Parallel()

	base := time.Now()
	var idx index
	for _, id := range []ID{"z", "m", "a", "q"} {
		idx.insert(newTestEntry(base, id, time.Millisecond))
	}
	idx.insert(newTestEntry(base, "early", time.Microsecond))

	if diff := cmp.Diff([]ID{"early", "z", "m", "a", "q"}, ids(idx.entries())); diff != "" {
		t.Errorf("idx.entries() mismatch (-want +got):\n%s", diff)
	}

	var got []ID
	for idx.len() > 0 {
		got = append(got, idx.popFront().ID())
		checkIndex(t, &idx)
	}
	if diff := cmp.Diff([]ID{"early", "z", "m", "a", "q"}, got); diff != "" {
		t.Errorf("popFront order mismatch (-want +got):\n%s", diff)
	}
}

func TestIndex_RemoveMiddleKeepsHeapOrder(t *testing.T) {
	t.Parallel()

	base := time.Now()
	var idx index
	want := make([]ID, 0, 20)
	for i := range 20 {
		id := ID(string(rune('a' + i)))
		idx.insert(newTestEntry(base, id, time.Duration(20-i)*time.Millisecond))
	}
	for i := 19; i >= 0; i-- {
		if i%3 == 0 {
			idx.remove(ID(string(rune('a' + i))))
			checkIndex(t, &idx)
			continue
		}
		want = append(want, ID(string(rune('a'+i))))
	}

	var got []ID
	for idx.len() > 0 {
		got = append(got, idx.popFront().ID())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("popFront order mismatch (-want +got):\n%s", diff)
	}
}

func TestIndex_Clear(t *testing.T) {
	t.Parallel()

	base := time.Now()
	var idx index
	idx.insert(newTestEntry(base, "a", time.Millisecond))
	idx.insert(newTestEntry(base, "b", time.Millisecond))

	if got := idx.clear(); got != 2 {
		t.Errorf("idx.clear() = %d, want 2", got)
	}
	checkIndex(t, &idx)
	if got := idx.len(); got != 0 {
		t.Errorf("idx.len() after clear = %d, want 0", got)
	}
	if !idx.insert(newTestEntry(base, "a", time.Millisecond)) {
		t.Error("idx.insert(a) after clear = false, want true")
	}
	checkIndex(t, &idx)
}
