package graphics

import "github.com/go-gl/mathgl/mgl32"

// BufferTarget selects the binding point for a buffer object.
type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// BufferUsage is the usage hint passed along with buffer data.
type BufferUsage int

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
	StreamDraw
)

// Capability is a server-side capability toggled with Enable.
type Capability int

const (
	DepthTest Capability = iota
	Blend
	CullFace
)

// DepthFunc is the comparison used by the depth test.
type DepthFunc int

const (
	Less DepthFunc = iota
	LessEqual
	Always
)

// ClearMask selects the buffers cleared by Clear.
type ClearMask uint32

const (
	ColorBufferBit ClearMask = 1 << iota
	DepthBufferBit
	StencilBufferBit
)

// DataType is the component type of a vertex attribute.
type DataType int

const (
	Float DataType = iota
	UnsignedByte
)

// Primitive is the mode used by DrawArrays.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
	TriangleFan
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "TRIANGLES"
	case TriangleStrip:
		return "TRIANGLE_STRIP"
	case TriangleFan:
		return "TRIANGLE_FAN"
	}
	return "UNKNOWN"
}

// Device is the subset of the GL API the renderer issues commands through.
// Implementations must be used from the thread that owns the current context.
type Device interface {
	// CreateProgram compiles and links a vertex/fragment pair.
	CreateProgram(vertexSource, fragmentSource string) (uint32, error)
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32

	CreateBuffer() uint32
	BindBuffer(target BufferTarget, buffer uint32)
	BufferData(target BufferTarget, data []float32, usage BufferUsage)

	ClearColor(r, g, b, a float32)
	ClearDepth(depth float32)
	Enable(capability Capability)
	DepthFunc(fn DepthFunc)
	Clear(mask ClearMask)
	Viewport(x, y, width, height int32)

	VertexAttribPointer(index uint32, size int32, xtype DataType, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)
	UseProgram(program uint32)
	UniformMatrix4(location int32, transpose bool, m mgl32.Mat4)
	DrawArrays(mode Primitive, first, count int32)

	// BindOffscreen redirects drawing to an RGBA8 + depth framebuffer of the
	// given size, so read-back never depends on window pixel ownership.
	BindOffscreen(width, height int32) error

	// ReadPixels reads back RGBA8 pixels from the current framebuffer,
	// bottom row first.
	ReadPixels(x, y, width, height int32) []byte
}
