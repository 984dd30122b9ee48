package renderer

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goflatsquare/graphics"
	"github.com/richinsley/goflatsquare/graphics/graphicstest"
	"github.com/richinsley/goflatsquare/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standardTol = float32(1.0e-5)

var locations = map[string]int32{
	shader.VertexPosition:   0,
	shader.ProjectionMatrix: 3,
	shader.ModelViewMatrix:  5,
}

func newTestRenderer(t *testing.T) (*Renderer, *graphicstest.Recorder, *graphicstest.Context) {
	t.Helper()
	rec := graphicstest.NewRecorder(locations)
	ctx := &graphicstest.Context{Width: AppWidth, Height: AppHeight, Frames: 3, Step: 0.016}
	var alerts []string
	r := NewRenderer(Config{
		NewContext: func() (graphics.Context, graphics.Device, error) { return ctx, rec, nil },
		Alert:      func(m string) { alerts = append(alerts, m) },
	})
	require.True(t, r.Ready())
	require.Empty(t, alerts)
	return r, rec, ctx
}

func TestProjectionMatrix(t *testing.T) {
	fov := float32(45) * math32.Pi / 180
	aspect := float32(640) / float32(480)
	near, far := float32(0.1), float32(100)
	f := 1 / math32.Tan(fov/2)

	want := [16]float32{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), -1,
		0, 0, 2 * far * near / (near - far), 0,
	}
	got := ProjectionMatrix()
	for i := range want {
		assert.InDelta(t, want[i], got[i], float64(standardTol), "element %d", i)
	}
}

func TestModelViewMatrix(t *testing.T) {
	mv := ModelViewMatrix()
	assert.Equal(t, mgl32.Translate3D(0, 0, -8), mv)
	assert.Equal(t, mgl32.Vec3{0, 0, -8}, mv.Col(3).Vec3())
	assert.Equal(t, mgl32.Vec3{0, 0, -8}, mv.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3())
	assert.Equal(t, mgl32.Ident3(), mv.Mat3())
}

func TestInitBuffersUploadsSquare(t *testing.T) {
	_, rec, _ := newTestRenderer(t)

	require.Len(t, rec.Uploads, 1)
	up := rec.Uploads[0]
	assert.Equal(t, []float32{-1, 1, 1, 1, -1, -1, 1, -1}, up.Data)
	assert.Equal(t, graphics.ArrayBuffer, up.Target)
	assert.Equal(t, graphics.StaticDraw, up.Usage)
	assert.NotZero(t, up.Buffer)
}

func TestLoadProgramLocations(t *testing.T) {
	r, rec, _ := newTestRenderer(t)

	info := r.ProgramInfo()
	assert.NotZero(t, info.Program)
	assert.Equal(t, int32(0), info.VertexPosition)
	assert.Equal(t, int32(3), info.ProjectionMatrix)
	assert.Equal(t, int32(5), info.ModelViewMatrix)
	require.Len(t, rec.Sources, 1)
	assert.Equal(t, shader.Native(false).Vertex, rec.Sources[0][0])
}

func TestLoadProgramMappedNames(t *testing.T) {
	rec := graphicstest.NewRecorder(map[string]int32{
		"_uaVertexPosition":   2,
		"_uuProjectionMatrix": 7,
		"_uuModelViewMatrix":  9,
	})
	src := shader.Source{Vertex: "vs", Fragment: "fs", Names: map[string]string{
		shader.VertexPosition:   "_uaVertexPosition",
		shader.ProjectionMatrix: "_uuProjectionMatrix",
		shader.ModelViewMatrix:  "_uuModelViewMatrix",
	}}
	info, err := LoadProgram(rec, src)
	require.NoError(t, err)
	assert.Equal(t, int32(2), info.VertexPosition)
	assert.Equal(t, int32(7), info.ProjectionMatrix)
	assert.Equal(t, int32(9), info.ModelViewMatrix)
}

func TestLoadProgramMissingAttribute(t *testing.T) {
	rec := graphicstest.NewRecorder(nil)
	_, err := LoadProgram(rec, shader.Native(false))
	assert.Error(t, err)
}

func TestDrawSceneSingleStrip(t *testing.T) {
	r, rec, _ := newTestRenderer(t)
	rec.Reset()

	r.Update(0.5)

	require.Len(t, rec.Draws, 1)
	assert.Equal(t, graphicstest.Draw{Mode: graphics.TriangleStrip, First: 0, Count: 4}, rec.Draws[0])

	assert.Equal(t, ProjectionMatrix(), rec.Uniforms[3])
	assert.Equal(t, ModelViewMatrix(), rec.Uniforms[5])

	assert.Equal(t, []string{
		"ClearColor", "ClearDepth", "Enable", "DepthFunc", "Clear", "Viewport",
		"BindBuffer", "VertexAttribPointer", "EnableVertexAttribArray",
		"UseProgram", "UniformMatrix4", "UniformMatrix4", "DrawArrays",
	}, rec.Names())

	for _, c := range rec.Calls {
		switch c.Name {
		case "Clear":
			assert.Equal(t, graphics.ColorBufferBit|graphics.DepthBufferBit, c.Args[0])
		case "DepthFunc":
			assert.Equal(t, graphics.LessEqual, c.Args[0])
		case "VertexAttribPointer":
			assert.Equal(t, []interface{}{uint32(0), int32(2), graphics.Float, false, int32(0), 0}, c.Args)
		case "UniformMatrix4":
			assert.Equal(t, false, c.Args[1])
		case "Viewport":
			assert.Equal(t, []interface{}{int32(0), int32(0), int32(AppWidth), int32(AppHeight)}, c.Args)
		}
	}
}

func TestContextFailureAlertsOnce(t *testing.T) {
	var alerts []string
	r := NewRenderer(Config{
		NewContext: func() (graphics.Context, graphics.Device, error) {
			return nil, nil, errors.New("no display")
		},
		Alert: func(m string) { alerts = append(alerts, m) },
	})

	assert.False(t, r.Ready())
	assert.Equal(t, []string{AlertMessage}, alerts)
	assert.Nil(t, r.Context())

	// silent continuation
	assert.NotPanics(t, func() {
		r.Update(0.016)
		r.DrawScene()
		r.Run()
	})
	assert.ErrorIs(t, r.Snapshot("x.png"), ErrNotReady)
}

func TestShaderFailureAlerts(t *testing.T) {
	rec := graphicstest.NewRecorder(locations)
	rec.ProgramErr = errors.New("failed to compile shader: boom")
	ctx := &graphicstest.Context{Width: 1, Height: 1}
	var alerts []string
	r := NewRenderer(Config{
		NewContext: func() (graphics.Context, graphics.Device, error) { return ctx, rec, nil },
		Alert:      func(m string) { alerts = append(alerts, m) },
	})

	assert.False(t, r.Ready())
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0], "boom")
	rec.Reset()
	r.Update(0)
	r.DrawScene()
	assert.Empty(t, rec.Calls)
}

func TestSourceSelection(t *testing.T) {
	rec := graphicstest.NewRecorder(locations)
	ctx := &graphicstest.Context{Width: 1, Height: 1, GLES: true}
	var gotGLES bool
	r := NewRenderer(Config{
		NewContext: func() (graphics.Context, graphics.Device, error) { return ctx, rec, nil },
		Source: func(isGLES bool) (shader.Source, error) {
			gotGLES = isGLES
			return shader.Native(isGLES), nil
		},
	})
	require.True(t, r.Ready())
	assert.True(t, gotGLES)
	assert.Equal(t, shader.Native(true).Fragment, rec.Sources[0][1])
}

func TestRunDrawsEveryFrame(t *testing.T) {
	r, rec, ctx := newTestRenderer(t)
	rec.Reset()

	r.Run()

	assert.Equal(t, 3, ctx.Ended)
	assert.Len(t, rec.Draws, 3)
}
