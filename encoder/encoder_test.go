package encoder

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsH264(t *testing.T) {
	e := New(640, 480, 30, "h264", "square.mp4", "")
	in, out := e.Args()

	assert.Equal(t, "rawvideo", in["f"])
	assert.Equal(t, "rgba", in["pix_fmt"])
	assert.Equal(t, "640x480", in["s"])
	assert.Equal(t, 30, in["framerate"])

	assert.Equal(t, "libx264", out["c:v"])
	assert.Equal(t, "vflip", out["vf"])
	assert.Equal(t, "yuv420p", out["pix_fmt"])
	assert.NotContains(t, out, "tag:v")
}

func TestArgsHEVC(t *testing.T) {
	_, out := New(640, 480, 60, "hevc", "square.MP4", "").Args()
	assert.Equal(t, "libx265", out["c:v"])
	assert.Equal(t, "hvc1", out["tag:v"])

	_, out = New(640, 480, 60, "hevc", "square.mkv", "").Args()
	assert.NotContains(t, out, "tag:v")
}

func TestWriteFrames(t *testing.T) {
	e := New(2, 1, 60, "h264", "out.mp4", "")
	frames := make(chan *Frame, 2)
	frames <- &Frame{Pixels: []byte{1, 2, 3, 4, 5, 6, 7, 8}, PTS: 0}
	frames <- &Frame{Pixels: []byte{9, 9, 9, 9, 9, 9, 9, 9}, PTS: 1}
	close(frames)

	var buf bytes.Buffer
	require.NoError(t, writeFrames(&buf, frames, e.FrameSize()))
	assert.Equal(t, 16, buf.Len())
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, buf.Bytes()[:8])
}

func TestWriteFramesRejectsShortFrame(t *testing.T) {
	frames := make(chan *Frame, 1)
	frames <- &Frame{Pixels: []byte{1, 2, 3}, PTS: 7}
	close(frames)

	var buf bytes.Buffer
	err := writeFrames(&buf, frames, 8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame 7")
	assert.Zero(t, buf.Len())
}
