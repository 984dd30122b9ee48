// Package graphicstest provides a recording graphics.Device and a fake
// graphics.Context so rendering code can be exercised without a GPU.
package graphicstest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goflatsquare/graphics"
)

// Call is one recorded device command.
type Call struct {
	Name string
	Args []interface{}
}

// Draw is a recorded DrawArrays command.
type Draw struct {
	Mode  graphics.Primitive
	First int32
	Count int32
}

// Upload is a recorded BufferData command together with the buffer bound at the time.
type Upload struct {
	Buffer uint32
	Target graphics.BufferTarget
	Data   []float32
	Usage  graphics.BufferUsage
}

// Recorder implements graphics.Device by recording every call.
type Recorder struct {
	Calls    []Call
	Draws    []Draw
	Uploads  []Upload
	Uniforms map[int32]mgl32.Mat4

	// Locations returned by AttribLocation and UniformLocation, keyed by name.
	// Names not present resolve to -1.
	Locations map[string]int32
	// ProgramErr, when set, is returned from CreateProgram.
	ProgramErr error
	// OffscreenErr, when set, is returned from BindOffscreen.
	OffscreenErr error
	// Pixels is returned from ReadPixels; when nil a zeroed buffer is returned.
	Pixels []byte

	Sources [][2]string

	nextHandle uint32
	bound      map[graphics.BufferTarget]uint32
}

// NewRecorder returns a Recorder that resolves the given symbol locations.
func NewRecorder(locations map[string]int32) *Recorder {
	return &Recorder{
		Locations: locations,
		Uniforms:  make(map[int32]mgl32.Mat4),
		bound:     make(map[graphics.BufferTarget]uint32),
	}
}

func (r *Recorder) record(name string, args ...interface{}) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

// Names returns the recorded call names in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		names[i] = c.Name
	}
	return names
}

// Reset drops everything recorded so far, keeping configuration and bindings.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Draws = nil
	r.Uploads = nil
	r.Uniforms = make(map[int32]mgl32.Mat4)
}

func (r *Recorder) handle() uint32 {
	r.nextHandle++
	return r.nextHandle
}

func (r *Recorder) CreateProgram(vertexSource, fragmentSource string) (uint32, error) {
	r.record("CreateProgram")
	r.Sources = append(r.Sources, [2]string{vertexSource, fragmentSource})
	if r.ProgramErr != nil {
		return 0, r.ProgramErr
	}
	return r.handle(), nil
}

func (r *Recorder) lookup(name string) int32 {
	if loc, ok := r.Locations[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) AttribLocation(program uint32, name string) int32 {
	r.record("AttribLocation", program, name)
	return r.lookup(name)
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	r.record("UniformLocation", program, name)
	return r.lookup(name)
}

func (r *Recorder) CreateBuffer() uint32 {
	r.record("CreateBuffer")
	return r.handle()
}

func (r *Recorder) BindBuffer(target graphics.BufferTarget, buffer uint32) {
	r.record("BindBuffer", target, buffer)
	r.bound[target] = buffer
}

func (r *Recorder) BufferData(target graphics.BufferTarget, data []float32, usage graphics.BufferUsage) {
	r.record("BufferData", target, len(data), usage)
	r.Uploads = append(r.Uploads, Upload{
		Buffer: r.bound[target],
		Target: target,
		Data:   append([]float32(nil), data...),
		Usage:  usage,
	})
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) ClearDepth(depth float32) { r.record("ClearDepth", depth) }

func (r *Recorder) Enable(capability graphics.Capability) { r.record("Enable", capability) }

func (r *Recorder) DepthFunc(fn graphics.DepthFunc) { r.record("DepthFunc", fn) }

func (r *Recorder) Clear(mask graphics.ClearMask) { r.record("Clear", mask) }

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, xtype graphics.DataType, normalized bool, stride int32, offset int) {
	r.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
}

func (r *Recorder) UseProgram(program uint32) { r.record("UseProgram", program) }

func (r *Recorder) UniformMatrix4(location int32, transpose bool, m mgl32.Mat4) {
	r.record("UniformMatrix4", location, transpose)
	r.Uniforms[location] = m
}

func (r *Recorder) DrawArrays(mode graphics.Primitive, first, count int32) {
	r.record("DrawArrays", mode, first, count)
	r.Draws = append(r.Draws, Draw{Mode: mode, First: first, Count: count})
}

func (r *Recorder) BindOffscreen(width, height int32) error {
	r.record("BindOffscreen", width, height)
	return r.OffscreenErr
}

func (r *Recorder) ReadPixels(x, y, width, height int32) []byte {
	r.record("ReadPixels", x, y, width, height)
	if r.Pixels != nil {
		return r.Pixels
	}
	return make([]byte, int(width)*int(height)*4)
}

// Context is a fake graphics.Context that closes after a fixed number of frames.
type Context struct {
	Width, Height int
	GLES          bool
	// Frames is the number of EndFrame calls after which ShouldClose reports true.
	Frames int

	Ended   int
	Current bool
	Closed  bool
	clock   float64
	// Step is how far Time advances on every EndFrame.
	Step float64
}

func (c *Context) MakeCurrent()                   { c.Current = true }
func (c *Context) Shutdown()                      { c.Closed = true }
func (c *Context) ShouldClose() bool              { return c.Ended >= c.Frames }
func (c *Context) GetFramebufferSize() (int, int) { return c.Width, c.Height }
func (c *Context) Time() float64                  { return c.clock }
func (c *Context) IsGLES() bool                   { return c.GLES }

func (c *Context) EndFrame() {
	c.Ended++
	c.clock += c.Step
}

func (c *Context) String() string {
	return fmt.Sprintf("fake context %dx%d (%d/%d frames)", c.Width, c.Height, c.Ended, c.Frames)
}
