package encoder

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame represents a single rendered video frame's data, ready for encoding.
// Pixels are RGBA8 with the bottom row first, as read back from GL.
type Frame struct {
	Pixels []byte
	PTS    int64
}

var errFFmpegExited = errors.New("ffmpeg exited")

// Encoder pipes raw frames into an ffmpeg process.
type Encoder struct {
	Width      int
	Height     int
	FPS        int
	Codec      string // "h264" or "hevc"
	OutputFile string
	FFMPEGPath string
}

// New returns an encoder for frames of the given size.
func New(width, height, fps int, codec, outputFile, ffmpegPath string) *Encoder {
	return &Encoder{
		Width:      width,
		Height:     height,
		FPS:        fps,
		Codec:      codec,
		OutputFile: outputFile,
		FFMPEGPath: ffmpegPath,
	}
}

// FrameSize is the number of bytes in one frame.
func (e *Encoder) FrameSize() int {
	return e.Width * e.Height * 4
}

// Args returns the ffmpeg arguments for the raw input pipe and the output file.
func (e *Encoder) Args() (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", e.Width, e.Height),
		"framerate": e.FPS,
	}

	// GL rows arrive bottom-up
	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}
	if e.Codec == "hevc" {
		outputArgs["c:v"] = "libx265"
		if strings.HasSuffix(strings.ToLower(e.OutputFile), ".mp4") {
			outputArgs["tag:v"] = "hvc1"
		}
	} else {
		outputArgs["c:v"] = "libx264"
	}
	return
}

// Encode runs ffmpeg and writes every frame received on frames to it. It
// returns once frames is closed and ffmpeg has exited. Frames arriving after
// a failure are drained so the producer never blocks.
func (e *Encoder) Encode(frames <-chan *Frame) error {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := e.Args()

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(e.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if e.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(e.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		pipeReader.CloseWithError(errFFmpegExited)
		errc <- err
	}()

	writeErr := writeFrames(pipeWriter, frames, e.FrameSize())
	for range frames {
	}
	pipeWriter.Close()

	if err := <-errc; err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return writeErr
}

func writeFrames(w io.Writer, frames <-chan *Frame, frameSize int) error {
	for frame := range frames {
		if len(frame.Pixels) != frameSize {
			return fmt.Errorf("frame %d has %d bytes, expected %d", frame.PTS, len(frame.Pixels), frameSize)
		}
		if _, err := w.Write(frame.Pixels); err != nil {
			log.Printf("Error writing frame %d to ffmpeg: %v", frame.PTS, err)
			return fmt.Errorf("failed to write frame %d: %w", frame.PTS, err)
		}
	}
	return nil
}
