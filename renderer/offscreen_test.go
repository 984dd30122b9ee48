package renderer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	encoder "github.com/richinsley/goflatsquare/encoder"
	"github.com/richinsley/goflatsquare/graphics/graphicstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectSink struct {
	frames []*encoder.Frame
	err    error
}

func (s *collectSink) Encode(frames <-chan *encoder.Frame) error {
	for f := range frames {
		s.frames = append(s.frames, f)
	}
	return s.err
}

func TestRecord(t *testing.T) {
	r, rec, ctx := newTestRenderer(t)
	rec.Reset()

	sink := &collectSink{}
	require.NoError(t, r.Record(sink, 0.5, 10))

	require.Len(t, sink.frames, 5)
	for i, f := range sink.frames {
		assert.Equal(t, int64(i), f.PTS)
		assert.Len(t, f.Pixels, AppWidth*AppHeight*4)
	}
	assert.Len(t, rec.Draws, 5)
	assert.Equal(t, 5, ctx.Ended)
	require.NotEmpty(t, rec.Calls)
	assert.Equal(t, "BindOffscreen", rec.Calls[0].Name)
}

func TestRecordSinkError(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	sink := &collectSink{err: errors.New("ffmpeg failed")}
	assert.EqualError(t, r.Record(sink, 0.1, 10), "ffmpeg failed")
	assert.Error(t, r.Record(sink, 1, 0))
}

func TestSnapshot(t *testing.T) {
	r, rec, _ := newTestRenderer(t)
	rec.Reset()

	path := filepath.Join(t.TempDir(), "square.png")
	require.NoError(t, r.Snapshot(path))
	assert.Len(t, rec.Draws, 1)
	assert.Equal(t, graphicstest.Call{Name: "BindOffscreen", Args: []interface{}{int32(AppWidth), int32(AppHeight)}}, rec.Calls[0])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	assert.Error(t, r.Snapshot(filepath.Join(t.TempDir(), "square.gif")))
}

func TestOffscreenFailure(t *testing.T) {
	r, rec, _ := newTestRenderer(t)
	rec.OffscreenErr = errors.New("offscreen fbo is not complete")
	rec.Reset()

	assert.Error(t, r.Snapshot(filepath.Join(t.TempDir(), "square.png")))
	assert.Error(t, r.Record(&collectSink{}, 1, 10))
	assert.Empty(t, rec.Draws)
}
