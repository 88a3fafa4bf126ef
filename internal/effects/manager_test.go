package effects

import (
	"math/rand"
	"sort"
	"testing"
	"time"
)

func TestManagerFiltersUnknownNames(t *testing.T) {
	m := NewManager(testScene(), []string{"Rain", "Bogus", "AlsoBogus"}, 0, rand.New(rand.NewSource(1)))
	if len(m.names) != 1 || m.names[0] != "Rain" {
		t.Fatalf("rotation: got %v want [Rain]", m.names)
	}
}

func TestManagerFallsBackWhenNothingValid(t *testing.T) {
	m := NewManager(testScene(), []string{"Nope", "Nada"}, 0, rand.New(rand.NewSource(1)))

	got := append([]string(nil), m.names...)
	sort.Strings(got)
	want := append([]string(nil), fallbackNames...)
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("fallback rotation: got %v want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("fallback rotation: got %v want %v", got, want)
		}
	}
}

func TestManagerSwitchesWhenEffectCompletes(t *testing.T) {
	m := NewManager(testScene(), []string{"Print", "Wipe"}, 0, rand.New(rand.NewSource(5)))

	first := m.CurrentName()
	for i := 0; i < 5000; i++ {
		m.NextFrame()
		if m.CurrentName() != first {
			return
		}
	}
	t.Fatalf("never switched away from %s with a zero duration cap", first)
}

func TestManagerHoldsFinishedEffectUntilCap(t *testing.T) {
	m := NewManager(testScene(), []string{"Print"}, 5*time.Second, rand.New(rand.NewSource(5)))

	clock := time.Now()
	m.now = func() time.Time { return clock }
	m.started = clock

	for i := 0; i < 5000 && !m.exhausted; i++ {
		m.NextFrame()
	}
	if !m.exhausted {
		t.Fatalf("effect never finished")
	}

	held := m.NextFrame()
	for i := 0; i < 10; i++ {
		if got := m.NextFrame(); got != held {
			t.Fatalf("held frame changed before the cap elapsed")
		}
	}

	clock = clock.Add(6 * time.Second)
	m.NextFrame()
	if m.exhausted {
		t.Fatalf("cap elapsed but the manager did not switch")
	}
}

func TestManagerCutsRunningEffectAtCap(t *testing.T) {
	m := NewManager(testScene(), []string{"Rain", "Wipe"}, time.Second, rand.New(rand.NewSource(5)))

	clock := time.Now()
	m.now = func() time.Time { return clock }
	m.started = clock

	first := m.CurrentName()
	m.NextFrame()
	if m.CurrentName() != first {
		t.Fatalf("switched before the cap")
	}

	clock = clock.Add(2 * time.Second)
	m.NextFrame()
	if m.CurrentName() == first {
		t.Fatalf("cap elapsed but the running effect was not cut")
	}
}

func TestManagerFrameAvailableOnSwitchTick(t *testing.T) {
	m := NewManager(testScene(), []string{"Print", "Wipe"}, 0, rand.New(rand.NewSource(9)))

	first := m.CurrentName()
	var prev string
	for i := 0; i < 5000; i++ {
		frame := m.NextFrame()
		if m.CurrentName() != first {
			// The switch call itself must still return a drawable frame,
			// either the new effect's first or the previous one held over.
			if frame == "" && prev == "" {
				t.Fatalf("switch tick produced nothing to draw")
			}
			return
		}
		prev = frame
	}
	t.Fatalf("never observed a switch")
}
