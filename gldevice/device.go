// Package gldevice implements graphics.Device on top of go-gl.
package gldevice

import (
	"fmt"
	"log"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goflatsquare/graphics"
)

var _ graphics.Device = (*Device)(nil)

// Ensure gl.Init() is called only once per process.
var glInitOnce sync.Once

// Device issues GL commands on the context current on the calling thread.
type Device struct {
	vao uint32

	// offscreen target, created on first BindOffscreen
	fbo         uint32
	colorBuffer uint32
	depthBuffer uint32
	fboWidth    int32
	fboHeight   int32
}

// New initializes the OpenGL function pointers for the current context and
// binds the vertex array object every core profile draw needs.
// The context must be current on the calling thread.
func New() (*Device, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	d := &Device{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	return d, nil
}

func (d *Device) CreateProgram(vertexSource, fragmentSource string) (uint32, error) {
	return newProgram(vertexSource, fragmentSource)
}

func (d *Device) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) CreateBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (d *Device) BindBuffer(target graphics.BufferTarget, buffer uint32) {
	gl.BindBuffer(bufferTarget(target), buffer)
}

func (d *Device) BufferData(target graphics.BufferTarget, data []float32, usage graphics.BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(bufferTarget(target), 0, nil, bufferUsage(usage))
		return
	}
	gl.BufferData(bufferTarget(target), len(data)*4, gl.Ptr(data), bufferUsage(usage))
}

func (d *Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

// ClearDepth uses the float variant, which exists on both GL 4.1 and GLES 3.
func (d *Device) ClearDepth(depth float32) { gl.ClearDepthf(depth) }

func (d *Device) Enable(capability graphics.Capability) {
	switch capability {
	case graphics.DepthTest:
		gl.Enable(gl.DEPTH_TEST)
	case graphics.Blend:
		gl.Enable(gl.BLEND)
	case graphics.CullFace:
		gl.Enable(gl.CULL_FACE)
	}
}

func (d *Device) DepthFunc(fn graphics.DepthFunc) {
	switch fn {
	case graphics.Less:
		gl.DepthFunc(gl.LESS)
	case graphics.LessEqual:
		gl.DepthFunc(gl.LEQUAL)
	case graphics.Always:
		gl.DepthFunc(gl.ALWAYS)
	}
}

func (d *Device) Clear(mask graphics.ClearMask) {
	var bits uint32
	if mask&graphics.ColorBufferBit != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&graphics.DepthBufferBit != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&graphics.StencilBufferBit != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *Device) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (d *Device) VertexAttribPointer(index uint32, size int32, xtype graphics.DataType, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, dataType(xtype), normalized, stride, gl.PtrOffset(offset))
}

func (d *Device) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (d *Device) UseProgram(program uint32) { gl.UseProgram(program) }

func (d *Device) UniformMatrix4(location int32, transpose bool, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, transpose, &m[0])
}

func (d *Device) DrawArrays(mode graphics.Primitive, first, count int32) {
	gl.DrawArrays(primitive(mode), first, count)
}

func (d *Device) BindOffscreen(width, height int32) error {
	if d.fbo != 0 && d.fboWidth == width && d.fboHeight == height {
		gl.BindFramebuffer(gl.FRAMEBUFFER, d.fbo)
		return nil
	}
	d.destroyOffscreen()

	gl.GenFramebuffers(1, &d.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, d.fbo)

	gl.GenRenderbuffers(1, &d.colorBuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, d.colorBuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, width, height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, d.colorBuffer)

	gl.GenRenderbuffers(1, &d.depthBuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, d.depthBuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, width, height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, d.depthBuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		d.destroyOffscreen()
		return fmt.Errorf("offscreen fbo is not complete")
	}
	d.fboWidth, d.fboHeight = width, height
	log.Printf("Offscreen FBO: %dx%d RGBA8 + depth", width, height)
	return nil
}

func (d *Device) destroyOffscreen() {
	if d.fbo == 0 {
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.DeleteFramebuffers(1, &d.fbo)
	gl.DeleteRenderbuffers(1, &d.colorBuffer)
	gl.DeleteRenderbuffers(1, &d.depthBuffer)
	d.fbo, d.colorBuffer, d.depthBuffer = 0, 0, 0
	d.fboWidth, d.fboHeight = 0, 0
}

func (d *Device) ReadPixels(x, y, width, height int32) []byte {
	pixels := make([]byte, int(width)*int(height)*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(x, y, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// Destroy releases the vertex array object and the offscreen target.
func (d *Device) Destroy() {
	d.destroyOffscreen()
	gl.DeleteVertexArrays(1, &d.vao)
}

func bufferTarget(t graphics.BufferTarget) uint32 {
	if t == graphics.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func bufferUsage(u graphics.BufferUsage) uint32 {
	switch u {
	case graphics.DynamicDraw:
		return gl.DYNAMIC_DRAW
	case graphics.StreamDraw:
		return gl.STREAM_DRAW
	}
	return gl.STATIC_DRAW
}

func dataType(t graphics.DataType) uint32 {
	if t == graphics.UnsignedByte {
		return gl.UNSIGNED_BYTE
	}
	return gl.FLOAT
}

func primitive(p graphics.Primitive) uint32 {
	switch p {
	case graphics.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case graphics.TriangleFan:
		return gl.TRIANGLE_FAN
	}
	return gl.TRIANGLES
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
