package gesture

import (
	"context"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// CameraSource captures webcam frames through gocv and downsamples them to
// the fixed analysis resolution. A grab goroutine keeps only the latest
// frame; the tick loop never blocks on the camera.
type CameraSource struct {
	deviceIndex int

	mu     sync.Mutex
	cap    *gocv.VideoCapture
	latest Frame
	seq    uint64
	seen   uint64
	closed bool
	stop   chan struct{}
}

// NewCameraSource creates a webcam frame source for the given device index.
func NewCameraSource(deviceIndex int) *CameraSource {
	return &CameraSource{deviceIndex: deviceIndex}
}

// Start opens the device and begins the grab loop.
func (c *CameraSource) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrSourceClosed
	}
	if c.cap != nil {
		return nil
	}

	cap, err := gocv.OpenVideoCapture(c.deviceIndex)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoCamera, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return fmt.Errorf("%w: device %d did not open", ErrNoCamera, c.deviceIndex)
	}

	c.cap = cap
	c.stop = make(chan struct{})
	go c.grabLoop(ctx, cap, c.stop)
	return nil
}

func (c *CameraSource) grabLoop(ctx context.Context, cap *gocv.VideoCapture, stop chan struct{}) {
	img := gocv.NewMat()
	defer img.Close()
	gray := gocv.NewMat()
	defer gray.Close()
	small := gocv.NewMat()
	defer small.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		default:
		}

		if ok := cap.Read(&img); !ok || img.Empty() {
			continue
		}

		gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
		gocv.Resize(gray, &small, image.Pt(FrameWidth, FrameHeight), 0, 0, gocv.InterpolationArea)

		frame := make(Frame, FrameWidth*FrameHeight)
		copy(frame, small.ToBytes())

		c.mu.Lock()
		c.latest = frame
		c.seq++
		c.mu.Unlock()
	}
}

// Grab returns the latest frame if it is newer than the last one returned.
func (c *CameraSource) Grab() (Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.latest == nil || c.seq == c.seen {
		return nil, false
	}
	c.seen = c.seq
	return c.latest, true
}

// Close stops the grab loop and releases the device.
func (c *CameraSource) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	if c.cap != nil {
		err := c.cap.Close()
		c.cap = nil
		return err
	}
	return nil
}
