// Package effects generates terminal text animations as ANSI-encoded frames.
//
// Every effect animates the same Scene, the user's art centered on a cell
// canvas, and emits complete frames (cursor positioning plus truecolor SGR
// runs) that the renderer parses back into a grid. The Manager cycles a
// shuffled rotation of enabled effects, pre-building the next one so a
// switch never stalls the frame loop.
package effects

import (
	"math/rand"
	"sort"
)

// Effect produces successive animation frames.
type Effect interface {
	// Step renders the next frame. ok turns false once the animation has
	// finished; the accompanying frame is then empty.
	Step() (frame string, ok bool)
}

// NewFunc builds an effect over a scene using the supplied random source.
type NewFunc func(s *Scene, rng *rand.Rand) Effect

var registry = map[string]NewFunc{}

func register(name string, fn NewFunc) {
	registry[name] = fn
}

// Names returns every registered effect name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named effect. The boolean reports whether the name is
// registered.
func New(name string, s *Scene, rng *rand.Rand) (Effect, bool) {
	fn, ok := registry[name]
	if !ok {
		return nil, false
	}
	return fn(s, rng), true
}
