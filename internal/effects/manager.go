package effects

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// fallbackNames keeps the saver alive when the configured list filters down
// to nothing.
var fallbackNames = []string{"Matrix", "Rain", "Decrypt"}

// Manager cycles effects over one scene. It filters the enabled names
// against the registry, shuffles the rotation, pre-builds the upcoming
// effect so a switch costs nothing, and enforces the per-effect duration
// cap: a finished effect holds its last frame until the cap elapses, a
// zero cap switches the moment an effect completes.
type Manager struct {
	scene *Scene
	rng   *rand.Rand

	names   []string
	idx     int
	nextIdx int
	cur     Effect
	next    Effect

	last      string
	exhausted bool
	maxDur    time.Duration
	started   time.Time
	now       func() time.Time
}

// NewManager builds a manager over the scene. Unknown effect names are
// dropped with a warning; an empty result falls back to a small builtin
// rotation.
func NewManager(scene *Scene, enabled []string, maxDur time.Duration, rng *rand.Rand) *Manager {
	var names []string
	for _, name := range enabled {
		if _, ok := registry[name]; !ok {
			log.Warn().Str("effect", name).Msg("unknown effect name, skipping")
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		log.Warn().Msg("no usable effects enabled, using fallback rotation")
		names = append(names, fallbackNames...)
	}
	rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

	m := &Manager{
		scene:  scene,
		rng:    rng,
		names:  names,
		maxDur: maxDur,
		now:    time.Now,
	}
	m.cur = m.build(0)
	m.preload()
	m.started = m.now()
	return m
}

func (m *Manager) build(idx int) Effect {
	e, _ := New(m.names[idx], m.scene, m.rng)
	return e
}

// preload picks a random different effect and builds it ahead of time.
func (m *Manager) preload() {
	if len(m.names) > 1 {
		m.nextIdx = m.rng.Intn(len(m.names) - 1)
		if m.nextIdx >= m.idx {
			m.nextIdx++
		}
	} else {
		m.nextIdx = 0
	}
	m.next = m.build(m.nextIdx)
}

// CurrentName reports the active effect, for logging.
func (m *Manager) CurrentName() string {
	return m.names[m.idx]
}

func (m *Manager) switchNext() {
	m.idx = m.nextIdx
	m.cur = m.next
	m.exhausted = false
	m.started = m.now()
	m.preload()
	log.Debug().Str("effect", m.names[m.idx]).Msg("switched effect")
}

// NextFrame returns the frame to draw this tick. It never fails: a finished
// effect either holds its final frame (nonzero cap) or is swapped for the
// pre-built next one whose first frame is returned in the same call.
func (m *Manager) NextFrame() string {
	if m.maxDur > 0 && m.now().Sub(m.started) >= m.maxDur {
		m.switchNext()
	}
	if m.exhausted {
		return m.last
	}

	frame, ok := m.cur.Step()
	if !ok {
		m.exhausted = true
		if m.maxDur == 0 {
			m.switchNext()
			if first, ok := m.cur.Step(); ok {
				m.last = first
			}
		}
		return m.last
	}
	m.last = frame
	return frame
}
