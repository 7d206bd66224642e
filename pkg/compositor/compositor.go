// Package compositor maintains between one and MaxLayers concurrently
// active visual patterns, cycling membership over time through a
// spawn/fade-in/fade-out/retire lifecycle, and routes each tick's frozen
// signal snapshot to every active pattern.
package compositor

import (
	"errors"
	"math/rand"
	"time"

	"github.com/kaleidolab/go-kaleido/internal/log"
	"github.com/kaleidolab/go-kaleido/pkg/audio"
	"github.com/kaleidolab/go-kaleido/pkg/gesture"
	"github.com/kaleidolab/go-kaleido/pkg/pattern"
)

// ErrQueueFull is returned when too many manual requests are pending.
var ErrQueueFull = errors.New("compositor: queue full")

const maxQueued = 8

// Compositor owns the active layer set. It is driven by a single tick loop;
// it is not safe for concurrent Update calls.
type Compositor struct {
	cfg      Config
	registry *pattern.Registry
	rng      *rand.Rand

	enabled bool
	layers  []*ActiveLayer
	queue   []int

	timeSinceSpawn float64

	// legacy is the single always-visible pattern shown while composition
	// mode is disabled.
	legacy pattern.Pattern
}

// New creates a compositor in composition mode. rng drives pool selection;
// inject a fixed seed in tests for reproducible spawns.
func New(cfg Config, registry *pattern.Registry, rng *rand.Rand) *Compositor {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Compositor{
		cfg:      cfg.Clamp(),
		registry: registry,
		rng:      rng,
		enabled:  true,
	}
}

// Enabled reports whether composition mode is on.
func (c *Compositor) Enabled() bool { return c.enabled }

// SetEnabled toggles composition mode. Enabling resets: all layers are
// cleared and the spawn timer restarts, so the next tick spawns fresh.
// Disabling tears down every active layer and shows the first registered
// pattern as a single always-visible legacy layer. The toggle completes
// within the call; no tick observes an intermediate state.
func (c *Compositor) SetEnabled(enabled bool) {
	if enabled == c.enabled {
		return
	}

	c.clearLayers()
	c.timeSinceSpawn = 0
	c.enabled = enabled

	if enabled {
		if c.legacy != nil {
			c.legacy.Surface().Visible = false
			c.legacy.Destroy()
			c.legacy = nil
		}
		log.Info("compositor: composition mode enabled")
		return
	}

	p, err := c.registry.Instantiate(0)
	if err != nil {
		log.Warn("compositor: no pattern available for legacy mode", "error", err)
	} else {
		p.Surface().Visible = true
		p.Surface().Alpha = 1
		c.legacy = p
	}
	log.Info("compositor: composition mode disabled")
}

// QueueNext requests that a specific pattern be spawned at the next spawn
// opportunity, ahead of pool-random selection. The request is deferred, not
// dropped, when the layer cap is reached.
func (c *Compositor) QueueNext(idx int) error {
	if idx < 0 || idx >= c.registry.Count() {
		return pattern.ErrBadIndex
	}
	if len(c.queue) >= maxQueued {
		return ErrQueueFull
	}
	c.queue = append(c.queue, idx)
	return nil
}

// Update advances all layer lifecycles by dt seconds, spawns and retires
// layers per policy, and forwards the signal bundle to every active
// pattern. Every active layer receives the same dt/feature/gesture snapshot
// within a tick.
func (c *Compositor) Update(dt float64, fv audio.FeatureVector, gs gesture.State) {
	if !c.enabled {
		if c.legacy != nil && !c.updatePattern(c.legacy, dt, fv, gs) {
			log.Warn("compositor: legacy pattern panicked, removing",
				"pattern", c.legacy.Name())
			c.legacy.Surface().Visible = false
			c.legacy.Destroy()
			c.legacy = nil
		}
		return
	}

	// Advance lifecycles and retire fully faded layers.
	kept := c.layers[:0]
	for _, l := range c.layers {
		l.advance(dt, c.cfg)
		if l.expired() {
			l.retire()
			continue
		}
		kept = append(kept, l)
	}
	c.layers = kept

	// Forward this tick's snapshot to every surviving layer. A panic in
	// one pattern retires that layer; the rest of the tick proceeds.
	kept = c.layers[:0]
	for _, l := range c.layers {
		if c.updatePattern(l.pattern, dt, fv, gs) {
			kept = append(kept, l)
		} else {
			log.Warn("compositor: pattern update panicked, retiring layer",
				"layer", l.ID, "pattern", l.pattern.Name())
			l.retire()
		}
	}
	c.layers = kept

	c.timeSinceSpawn += dt

	// Liveness: never show nothing while patterns exist.
	if len(c.layers) == 0 && (len(c.queue) > 0 || len(c.registry.Pool()) > 0) {
		c.spawn()
		return
	}

	if c.timeSinceSpawn > c.cfg.SpawnInterval.Seconds() && len(c.layers) < c.cfg.MaxLayers {
		c.spawn()
	}
}

// updatePattern runs one pattern update with panic isolation. Returns false
// if the pattern panicked.
func (c *Compositor) updatePattern(p pattern.Pattern, dt float64, fv audio.FeatureVector, gs gesture.State) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("compositor: pattern panic", "pattern", p.Name(), "panic", r)
			ok = false
		}
	}()
	p.Update(dt, fv, gs)
	return true
}

// spawn creates one new layer: a queued request first, otherwise a uniform
// pick among pool members not already active. Resets the spawn timer only
// when something actually spawned.
func (c *Compositor) spawn() {
	idx, ok := c.nextIndex()
	if !ok {
		return
	}

	p, err := c.registry.Instantiate(idx)
	if err != nil {
		log.Warn("compositor: spawn failed", "index", idx, "error", err)
		return
	}

	c.layers = append(c.layers, newLayer(idx, p))
	c.timeSinceSpawn = 0
	log.Debug("compositor: spawned layer", "pattern", p.Name(), "active", len(c.layers))
}

func (c *Compositor) nextIndex() (int, bool) {
	if len(c.queue) > 0 {
		idx := c.queue[0]
		c.queue = c.queue[1:]
		return idx, true
	}

	active := make(map[int]bool, len(c.layers))
	for _, l := range c.layers {
		active[l.PatternIndex] = true
	}

	var candidates []int
	for _, idx := range c.registry.Pool() {
		if !active[idx] {
			candidates = append(candidates, idx)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[c.rng.Intn(len(candidates))], true
}

func (c *Compositor) clearLayers() {
	for _, l := range c.layers {
		l.retire()
	}
	c.layers = nil
}

// LayerCount returns the number of active layers.
func (c *Compositor) LayerCount() int { return len(c.layers) }

// Layers returns a read-only snapshot of the active layers.
func (c *Compositor) Layers() []LayerInfo {
	names := c.registry.Names()
	infos := make([]LayerInfo, len(c.layers))
	for i, l := range c.layers {
		info := LayerInfo{
			ID:              l.ID,
			PatternIndex:    l.PatternIndex,
			Lifetime:        l.Lifetime,
			FadeInProgress:  l.FadeInProgress,
			FadeOutProgress: l.FadeOutProgress,
			IsRemoving:      l.IsRemoving,
			Alpha:           l.Alpha(),
		}
		if l.PatternIndex >= 0 && l.PatternIndex < len(names) {
			info.PatternName = names[l.PatternIndex]
		}
		infos[i] = info
	}
	return infos
}

// Surfaces returns the renderable surfaces of the active layers in spawn
// order (oldest first), for a renderer to blend.
func (c *Compositor) Surfaces() []*pattern.Surface {
	out := make([]*pattern.Surface, 0, len(c.layers)+1)
	if !c.enabled && c.legacy != nil {
		return append(out, c.legacy.Surface())
	}
	for _, l := range c.layers {
		out = append(out, l.pattern.Surface())
	}
	return out
}
