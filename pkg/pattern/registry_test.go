package pattern

import (
	"testing"

	"github.com/kaleidolab/go-kaleido/pkg/audio"
	"github.com/kaleidolab/go-kaleido/pkg/gesture"
)

type nullPattern struct {
	name    string
	surface *Surface
}

func (p *nullPattern) Name() string { return p.name }
func (p *nullPattern) Update(dt float64, fv audio.FeatureVector, gs gesture.State) {
}
func (p *nullPattern) Surface() *Surface { return p.surface }
func (p *nullPattern) Destroy()          {}

func nullFactory(name string) Factory {
	return Factory{Name: name, New: func() Pattern {
		return &nullPattern{name: name, surface: NewSurface()}
	}}
}

func TestRegistry_RegisterAndNames(t *testing.T) {
	r := NewRegistry()
	r.Register(nullFactory("a"))
	r.Register(nullFactory("b"))

	names := r.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names: got %v, want [a b]", names)
	}
	if r.Count() != 2 {
		t.Errorf("Count: got %d, want 2", r.Count())
	}
}

func TestRegistry_NewPatternsAreInPool(t *testing.T) {
	r := NewRegistry()
	idx := r.Register(nullFactory("a"))
	if !r.InPool(idx) {
		t.Error("Newly registered pattern not in pool")
	}
	if pool := r.Pool(); len(pool) != 1 || pool[0] != idx {
		t.Errorf("Pool: got %v, want [%d]", pool, idx)
	}
}

func TestRegistry_PoolToggle(t *testing.T) {
	r := NewRegistry()
	r.Register(nullFactory("a"))
	r.Register(nullFactory("b"))

	if err := r.SetInPool(0, false); err != nil {
		t.Fatalf("SetInPool: %v", err)
	}
	if r.InPool(0) {
		t.Error("Pattern 0 still in pool after removal")
	}
	if pool := r.Pool(); len(pool) != 1 || pool[0] != 1 {
		t.Errorf("Pool after removal: got %v, want [1]", pool)
	}

	if err := r.SetInPool(5, true); err != ErrBadIndex {
		t.Errorf("SetInPool out of range: got %v, want ErrBadIndex", err)
	}
}

func TestRegistry_InstantiateCreatesFreshInstances(t *testing.T) {
	r := NewRegistry()
	r.Register(nullFactory("a"))

	p1, err := r.Instantiate(0)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	p2, _ := r.Instantiate(0)
	if p1 == p2 {
		t.Error("Instantiate returned a shared instance")
	}

	if _, err := r.Instantiate(3); err != ErrBadIndex {
		t.Errorf("Instantiate out of range: got %v, want ErrBadIndex", err)
	}
}

func TestBuiltins_SatisfyContract(t *testing.T) {
	var fv audio.FeatureVector
	fv.Spectrum[4] = 0.8
	fv.RMS = 0.5
	fv.Beat = true

	gs := gesture.State{X: 0.5, Y: 0.5, MotionIntensity: 0.4, HasMotion: true}

	for _, f := range Builtins() {
		p := f.New()
		if p.Name() == "" {
			t.Errorf("Factory %q produced unnamed pattern", f.Name)
		}
		if p.Surface() == nil || p.Surface().Img == nil {
			t.Fatalf("Pattern %q has no surface", f.Name)
		}
		// A few ticks must not panic and must stay confined to the surface.
		for i := 0; i < 10; i++ {
			p.Update(1.0/60, fv, gs)
		}
		p.Destroy()
	}
}
