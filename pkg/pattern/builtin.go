package pattern

import (
	"image/color"
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/kaleidolab/go-kaleido/pkg/audio"
	"github.com/kaleidolab/go-kaleido/pkg/gesture"
)

// Builtins returns factories for the bundled demo patterns. Real scene
// packs register their own factories; these exist so the compositor has
// something to show out of the box.
func Builtins() []Factory {
	return []Factory{
		{Name: "spectrum-bars", New: func() Pattern { return newSpectrumBars() }},
		{Name: "beat-particles", New: func() Pattern { return newBeatParticles() }},
		{Name: "motion-ripple", New: func() Pattern { return newMotionRipple() }},
	}
}

// spectrumBars draws one vertical bar per spectrum band, hue-swept across
// the band index and brightness driven by loudness.
type spectrumBars struct {
	surface *Surface
	hue     float64
}

func newSpectrumBars() *spectrumBars {
	return &spectrumBars{surface: NewSurface()}
}

func (p *spectrumBars) Name() string { return "spectrum-bars" }

func (p *spectrumBars) Update(dt float64, fv audio.FeatureVector, gs gesture.State) {
	p.hue += dt * 12
	if p.hue >= 360 {
		p.hue -= 360
	}

	p.surface.Clear()

	barW := SurfaceWidth / audio.BandCount
	for i, v := range fv.Spectrum {
		h := int(v * SurfaceHeight)
		hue := math.Mod(p.hue+float64(i)*(360.0/audio.BandCount), 360)
		r, g, b := colorful.Hsv(hue, 0.9, 0.4+0.6*fv.RMS).RGB255()
		c := color.RGBA{R: r, G: g, B: b, A: 255}
		for y := SurfaceHeight - h; y < SurfaceHeight; y++ {
			for x := i * barW; x < (i+1)*barW; x++ {
				p.surface.Set(x, y, c)
			}
		}
	}
}

func (p *spectrumBars) Surface() *Surface { return p.surface }

func (p *spectrumBars) Destroy() { p.surface.Visible = false }

// beatParticles bursts particles from the gesture centroid on every beat
// and lets them fall out under drag-free decay.
type beatParticles struct {
	surface   *Surface
	rng       *rand.Rand
	particles []particle
}

type particle struct {
	x, y   float64
	vx, vy float64
	life   float64
	hue    float64
}

func newBeatParticles() *beatParticles {
	return &beatParticles{
		surface: NewSurface(),
		rng:     rand.New(rand.NewSource(1)),
	}
}

func (p *beatParticles) Name() string { return "beat-particles" }

func (p *beatParticles) Update(dt float64, fv audio.FeatureVector, gs gesture.State) {
	if fv.Beat {
		cx := gs.X * SurfaceWidth
		cy := gs.Y * SurfaceHeight
		n := 12 + int(fv.Bass*24)
		for i := 0; i < n; i++ {
			a := p.rng.Float64() * 2 * math.Pi
			speed := 20 + p.rng.Float64()*60*fv.RMS
			p.particles = append(p.particles, particle{
				x: cx, y: cy,
				vx:   math.Cos(a) * speed,
				vy:   math.Sin(a) * speed,
				life: 1,
				hue:  fv.Centroid * 360,
			})
		}
	}

	alive := p.particles[:0]
	for _, pt := range p.particles {
		pt.x += pt.vx * dt
		pt.y += pt.vy * dt
		pt.life -= dt * 0.8
		if pt.life > 0 {
			alive = append(alive, pt)
		}
	}
	p.particles = alive

	p.surface.Clear()
	for _, pt := range p.particles {
		r, g, b := colorful.Hsv(pt.hue, 0.8, pt.life).RGB255()
		p.surface.Set(int(pt.x), int(pt.y), color.RGBA{R: r, G: g, B: b, A: 255})
	}
}

func (p *beatParticles) Surface() *Surface { return p.surface }

func (p *beatParticles) Destroy() {
	p.particles = nil
	p.surface.Visible = false
}

// motionRipple expands rings from the motion centroid while motion is
// present; ring brightness follows intensity.
type motionRipple struct {
	surface *Surface
	rings   []ripple
	cadence float64
}

type ripple struct {
	x, y   float64
	radius float64
	life   float64
}

func newMotionRipple() *motionRipple {
	return &motionRipple{surface: NewSurface()}
}

func (p *motionRipple) Name() string { return "motion-ripple" }

func (p *motionRipple) Update(dt float64, fv audio.FeatureVector, gs gesture.State) {
	p.cadence -= dt
	if gs.HasMotion && p.cadence <= 0 {
		p.rings = append(p.rings, ripple{
			x:    gs.X * SurfaceWidth,
			y:    gs.Y * SurfaceHeight,
			life: 0.6 + gs.MotionIntensity,
		})
		p.cadence = 0.15
	}

	alive := p.rings[:0]
	for _, rg := range p.rings {
		rg.radius += dt * (30 + 60*gs.MotionIntensity)
		rg.life -= dt
		if rg.life > 0 {
			alive = append(alive, rg)
		}
	}
	p.rings = alive

	p.surface.Clear()
	for _, rg := range p.rings {
		v := rg.life
		if v > 1 {
			v = 1
		}
		r, g, b := colorful.Hsv(200, 0.5, v).RGB255()
		c := color.RGBA{R: r, G: g, B: b, A: 255}
		steps := int(2 * math.Pi * rg.radius)
		if steps < 12 {
			steps = 12
		}
		for i := 0; i < steps; i++ {
			a := float64(i) / float64(steps) * 2 * math.Pi
			p.surface.Set(int(rg.x+math.Cos(a)*rg.radius), int(rg.y+math.Sin(a)*rg.radius), c)
		}
	}
}

func (p *motionRipple) Surface() *Surface { return p.surface }

func (p *motionRipple) Destroy() {
	p.rings = nil
	p.surface.Visible = false
}
