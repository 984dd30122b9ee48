package renderer

import (
	"fmt"
	"log"

	encoder "github.com/richinsley/goflatsquare/encoder"
)

const numBuffers = 3 // frames in flight between the renderer and the encoder

// FrameSink consumes rendered frames until the channel is closed.
type FrameSink interface {
	Encode(frames <-chan *encoder.Frame) error
}

// bindOffscreen points drawing at an offscreen target the size of the surface.
func (r *Renderer) bindOffscreen() error {
	width, height := r.context.GetFramebufferSize()
	if err := r.device.BindOffscreen(int32(width), int32(height)); err != nil {
		return fmt.Errorf("failed to bind offscreen target: %w", err)
	}
	return nil
}

// readFrame reads back the frame just drawn.
func (r *Renderer) readFrame() (width, height int, pixels []byte) {
	width, height = r.context.GetFramebufferSize()
	pixels = r.device.ReadPixels(0, 0, int32(width), int32(height))
	return width, height, pixels
}

// Snapshot draws one frame and saves it to path as PNG, BMP or WebP.
func (r *Renderer) Snapshot(path string) error {
	if !r.ready {
		return ErrNotReady
	}
	if err := r.bindOffscreen(); err != nil {
		return err
	}
	r.Update(0)
	width, height, pixels := r.readFrame()
	r.context.EndFrame()

	if err := encoder.WriteSnapshot(path, width, height, pixels); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	log.Printf("Wrote %dx%d snapshot to %s", width, height, path)
	return nil
}

// Record is a Producer. It renders duration*fps frames at a fixed time step
// and hands them to sink, which runs in its own goroutine.
func (r *Renderer) Record(sink FrameSink, duration float64, fps int) error {
	if !r.ready {
		return ErrNotReady
	}
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}
	if err := r.bindOffscreen(); err != nil {
		return err
	}
	log.Println("Starting in record mode...")

	frameChan := make(chan *encoder.Frame, numBuffers)
	encoderDoneChan := make(chan error, 1)

	// Start the consumer goroutine
	go func() {
		encoderDoneChan <- sink.Encode(frameChan)
	}()

	totalFrames := int(duration * float64(fps))
	timeStep := 1.0 / float64(fps)

	for i := 0; i < totalFrames; i++ {
		r.Update(timeStep)
		_, _, pixels := r.readFrame()
		r.context.EndFrame()

		frameChan <- &encoder.Frame{Pixels: pixels, PTS: int64(i)}
	}

	close(frameChan)

	err := <-encoderDoneChan
	if err == nil {
		log.Printf("Recorded %d frames", totalFrames)
	}
	return err
}
