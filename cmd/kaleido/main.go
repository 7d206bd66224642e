// Kaleido - audio/motion-reactive visual generator.
//
// Runs the three signal subsystems once per display frame: the audio
// analysis engine, the motion/gesture engine, and the layer compositor.
// A fiber dashboard exposes control endpoints and a websocket stream of
// per-tick signal snapshots.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kaleidolab/go-kaleido/internal/config"
	"github.com/kaleidolab/go-kaleido/internal/log"
	"github.com/kaleidolab/go-kaleido/pkg/audio"
	"github.com/kaleidolab/go-kaleido/pkg/compositor"
	"github.com/kaleidolab/go-kaleido/pkg/gesture"
	"github.com/kaleidolab/go-kaleido/pkg/pattern"
	"github.com/kaleidolab/go-kaleido/pkg/web"
)

const tickRate = 60.0

func main() {
	log.Init(config.LogLevel())

	file, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	audioCfg, gestureCfg, compCfg, cameraIndex := buildConfigs(file)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Pattern registry with the bundled demo patterns.
	registry := pattern.NewRegistry()
	for _, f := range pattern.Builtins() {
		registry.Register(f)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	audioEngine := audio.NewEngine(audioCfg, audio.NewCaptureSource(audioCfg.SampleRate, audioCfg.FFTSize), rng)
	motionEngine := gesture.NewEngine(gestureCfg, gesture.NewCameraSource(cameraIndex))
	comp := compositor.New(compCfg, registry, rng)

	// Device failures degrade, never abort: audio falls back to synthetic,
	// motion stays not-ready.
	audioEngine.Enable(ctx)
	motionEngine.Enable(ctx)

	// Commands from the dashboard run at the top of the next tick so the
	// core stays single-threaded.
	cmds := make(chan func(), 32)
	server := newServer(registry, comp, audioEngine, motionEngine, cmds, ctx)
	server.StartAsync()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info("kaleido: running", "tick_rate", tickRate, "patterns", registry.Count())

	ticker := time.NewTicker(time.Duration(float64(time.Second) / tickRate))
	defer ticker.Stop()

	var tick uint64
	last := time.Now()

	for {
		select {
		case <-sigChan:
			log.Info("kaleido: shutting down")
			audioEngine.Disable()
			motionEngine.Disable()
			server.Shutdown()
			return

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			tick++

			for {
				select {
				case cmd := <-cmds:
					cmd()
					continue
				default:
				}
				break
			}

			fv := audioEngine.Update()
			gs := motionEngine.Update(dt)
			comp.Update(dt, fv, gs)

			server.PublishSnapshot(web.Snapshot{
				Tick:        tick,
				Features:    fv,
				Gesture:     gs,
				Layers:      comp.Layers(),
				Enabled:     comp.Enabled(),
				AudioReady:  audioEngine.Ready(),
				CameraReady: motionEngine.Ready(),
			})
		}
	}
}

// newServer wires the dashboard callbacks to the tick loop's command
// channel. Registry reads are thread-safe and answered inline; everything
// that touches the compositor or the engines is deferred to the tick loop.
func newServer(
	registry *pattern.Registry,
	comp *compositor.Compositor,
	audioEngine *audio.Engine,
	motionEngine *gesture.Engine,
	cmds chan func(),
	ctx context.Context,
) *web.Server {
	server := web.NewServer(config.Port())

	submit := func(cmd func()) {
		select {
		case cmds <- cmd:
		default:
			log.Warn("web: command dropped, tick loop backlogged")
		}
	}

	server.OnListPatterns = func() []web.PatternInfo {
		names := registry.Names()
		infos := make([]web.PatternInfo, len(names))
		for i, name := range names {
			infos[i] = web.PatternInfo{Index: i, Name: name, InPool: registry.InPool(i)}
		}
		return infos
	}

	server.OnQueuePattern = func(idx int) error {
		if idx < 0 || idx >= registry.Count() {
			return pattern.ErrBadIndex
		}
		submit(func() {
			if err := comp.QueueNext(idx); err != nil {
				log.Warn("kaleido: queue request rejected", "index", idx, "error", err)
			}
		})
		return nil
	}

	server.OnSetPool = func(idx int, inPool bool) error {
		return registry.SetInPool(idx, inPool)
	}

	server.OnSetMode = func(enabled bool) {
		submit(func() { comp.SetEnabled(enabled) })
	}

	server.OnSetAudio = func(enabled bool) {
		submit(func() {
			if enabled {
				audioEngine.Enable(ctx)
			} else {
				audioEngine.Disable()
			}
		})
	}

	server.OnSetCamera = func(enabled bool) {
		submit(func() {
			if enabled {
				motionEngine.Enable(ctx)
			} else {
				motionEngine.Disable()
			}
		})
	}

	return server
}

// buildConfigs merges the YAML tunables file over package defaults.
func buildConfigs(f *config.File) (audio.Config, gesture.Config, compositor.Config, int) {
	a := audio.DefaultConfig()
	if f.Audio.Smoothing != 0 {
		a.Smoothing = f.Audio.Smoothing
	}
	if f.Audio.BeatThreshold != 0 {
		a.BeatThreshold = f.Audio.BeatThreshold
	}
	a.MinBeatInterval = config.Duration(f.Audio.MinBeatInterval, a.MinBeatInterval)
	if f.Audio.HistorySize != 0 {
		a.HistorySize = f.Audio.HistorySize
	}
	if f.Audio.BPM != 0 {
		a.BPM = f.Audio.BPM
	}
	if f.Audio.SampleRate != 0 {
		a.SampleRate = f.Audio.SampleRate
	}
	if f.Audio.FFTSize != 0 {
		a.FFTSize = f.Audio.FFTSize
	}
	a = a.Clamp()

	g := gesture.DefaultConfig()
	if f.Gesture.Sensitivity != 0 {
		g.Sensitivity = f.Gesture.Sensitivity
	}
	if f.Gesture.ClickThreshold != 0 {
		g.ClickThreshold = f.Gesture.ClickThreshold
	}
	if f.Gesture.Smoothing != 0 {
		g.Smoothing = f.Gesture.Smoothing
	}
	if f.Gesture.StillnessThreshold != 0 {
		g.StillnessThreshold = f.Gesture.StillnessThreshold
	}
	if f.Gesture.SlowMotionThreshold != 0 {
		g.SlowMotionThreshold = f.Gesture.SlowMotionThreshold
	}
	if f.Gesture.QuickMotionThreshold != 0 {
		g.QuickMotionThreshold = f.Gesture.QuickMotionThreshold
	}
	g.StillnessDuration = config.Duration(f.Gesture.StillnessDuration, g.StillnessDuration)
	g.ClickCooldown = config.Duration(f.Gesture.ClickCooldown, g.ClickCooldown)
	if f.Gesture.FrameSkip != 0 {
		g.FrameSkip = f.Gesture.FrameSkip
	}
	g = g.Clamp()

	c := compositor.DefaultConfig()
	if f.Compositor.MaxLayers != 0 {
		c.MaxLayers = f.Compositor.MaxLayers
	}
	c.LayerDuration = config.Duration(f.Compositor.LayerDuration, c.LayerDuration)
	c.SpawnInterval = config.Duration(f.Compositor.SpawnInterval, c.SpawnInterval)
	c.FadeInDuration = config.Duration(f.Compositor.FadeInDuration, c.FadeInDuration)
	c.FadeOutDuration = config.Duration(f.Compositor.FadeOutDuration, c.FadeOutDuration)
	c = c.Clamp()

	return a, g, c, f.Gesture.CameraIndex
}
