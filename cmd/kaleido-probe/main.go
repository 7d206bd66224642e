// Kaleido-probe - tail the signal stream of a running kaleido instance.
//
// Connects to the dashboard websocket and prints beats, clicks-in-waiting
// and drag-mode transitions as they happen. Useful for checking that the
// sensor engines are alive without opening the dashboard.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

type snapshot struct {
	Tick     uint64 `json:"tick"`
	Features struct {
		RMS      float64 `json:"rms"`
		Bass     float64 `json:"bass"`
		Centroid float64 `json:"centroid"`
		Beat     bool    `json:"beat"`
	} `json:"features"`
	Gesture struct {
		X               float64 `json:"x"`
		Y               float64 `json:"y"`
		MotionIntensity float64 `json:"motion_intensity"`
		DragMode        int     `json:"drag_mode"`
	} `json:"gesture"`
	Layers      []json.RawMessage `json:"layers"`
	AudioReady  bool              `json:"audio_ready"`
	CameraReady bool              `json:"camera_ready"`
}

var dragNames = []string{"none", "ready", "dragging"}

func main() {
	addr := flag.String("addr", "localhost:8089", "kaleido dashboard address")
	flag.Parse()

	url := fmt.Sprintf("ws://%s/ws/signals", *addr)
	fmt.Printf("Connecting to %s...\n", url)

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: connect failed: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		conn.Close()
		os.Exit(0)
	}()

	fmt.Println("Connected. Watching for beats and gestures (Ctrl+C to stop)")

	lastDrag := 0
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: read: %v\n", err)
			os.Exit(1)
		}

		var s snapshot
		if err := json.Unmarshal(data, &s); err != nil {
			continue
		}

		if s.Features.Beat {
			fmt.Printf("[%8d] BEAT  rms=%.2f bass=%.2f centroid=%.2f layers=%d\n",
				s.Tick, s.Features.RMS, s.Features.Bass, s.Features.Centroid, len(s.Layers))
		}

		if s.Gesture.DragMode != lastDrag {
			fmt.Printf("[%8d] DRAG  %s -> %s  at (%.2f, %.2f) intensity=%.2f\n",
				s.Tick, dragName(lastDrag), dragName(s.Gesture.DragMode),
				s.Gesture.X, s.Gesture.Y, s.Gesture.MotionIntensity)
			lastDrag = s.Gesture.DragMode
		}
	}
}

func dragName(mode int) string {
	if mode < 0 || mode >= len(dragNames) {
		return "unknown"
	}
	return dragNames[mode]
}
