package renderer

import (
	"errors"
	"fmt"
	"log"

	"github.com/richinsley/goflatsquare/graphics"
	"github.com/richinsley/goflatsquare/shader"
)

// Size the projection is built for, independent of the window size.
const (
	AppWidth  = 640
	AppHeight = 480
)

// AlertMessage is shown when no rendering context could be created.
const AlertMessage = "Unable to initialize OpenGL. Your system or driver may not support it."

// ErrNotReady is returned by operations that need a fully initialized renderer.
var ErrNotReady = errors.New("renderer is not initialized")

// AlertFunc reports a failure to the user.
type AlertFunc func(message string)

// LogAlert is the default AlertFunc.
func LogAlert(message string) {
	log.Printf("ALERT: %s", message)
}

// ContextFactory creates the rendering context and the device that issues
// commands on it. The context is current on the calling thread on return.
type ContextFactory func() (graphics.Context, graphics.Device, error)

// SourceFunc produces the shader sources for a desktop GL or GLES context.
type SourceFunc func(isGLES bool) (shader.Source, error)

// NativeSource returns the hand-written GLSL for the context type.
func NativeSource(isGLES bool) (shader.Source, error) {
	return shader.Native(isGLES), nil
}

// Config supplies the context factory and optional overrides to NewRenderer.
type Config struct {
	NewContext ContextFactory
	Source     SourceFunc // defaults to NativeSource
	Alert      AlertFunc  // defaults to LogAlert
}

// Renderer owns the context, the shader program record and the square's
// vertex buffer for its whole lifetime.
type Renderer struct {
	context        graphics.Context
	device         graphics.Device
	programInfo    ProgramInfo
	positionBuffer uint32
	alert          AlertFunc
	ready          bool
}

// NewRenderer runs the setup sequence: create the context, load the shader
// program, upload the vertex buffer. A failure alerts the user and leaves a
// renderer whose Update does nothing.
func NewRenderer(cfg Config) *Renderer {
	if cfg.Source == nil {
		cfg.Source = NativeSource
	}
	if cfg.Alert == nil {
		cfg.Alert = LogAlert
	}
	r := &Renderer{alert: cfg.Alert}

	ctx, dev, err := cfg.NewContext()
	if err != nil || ctx == nil || dev == nil {
		if err != nil {
			log.Printf("Failed to create rendering context: %v", err)
		}
		r.alert(AlertMessage)
		return r
	}
	r.context = ctx
	r.device = dev

	src, err := cfg.Source(ctx.IsGLES())
	if err != nil {
		r.alert(fmt.Sprintf("Unable to prepare shaders: %v", err))
		return r
	}
	r.programInfo, err = LoadProgram(dev, src)
	if err != nil {
		r.alert(fmt.Sprintf("Unable to initialize the shader program: %v", err))
		return r
	}
	r.positionBuffer = InitBuffers(dev)
	r.ready = true
	log.Printf("Renderer initialized (program %d, buffer %d)", r.programInfo.Program, r.positionBuffer)
	return r
}

// Ready reports whether every resource the draw call needs is in place.
func (r *Renderer) Ready() bool {
	return r.ready
}

// Context returns the rendering context, or nil when creation failed.
func (r *Renderer) Context() graphics.Context {
	return r.context
}

// ProgramInfo returns the shader program record.
func (r *Renderer) ProgramInfo() ProgramInfo {
	return r.programInfo
}

// FramebufferSize returns the size of the surface being drawn to.
func (r *Renderer) FramebufferSize() (int, int) {
	if r.context == nil {
		return 0, 0
	}
	return r.context.GetFramebufferSize()
}

// Update is the per-frame hook. The elapsed time is accepted for the caller's
// convenience; the square does not move.
func (r *Renderer) Update(dt float64) {
	if !r.ready {
		return
	}
	r.DrawScene()
}

// Run redraws and presents until the context asks to close.
func (r *Renderer) Run() {
	if r.context == nil {
		log.Println("No rendering context, nothing to run.")
		return
	}
	last := r.context.Time()
	for !r.context.ShouldClose() {
		now := r.context.Time()
		r.Update(now - last)
		last = now
		r.context.EndFrame()
	}
}
