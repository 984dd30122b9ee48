package renderer

import "github.com/richinsley/goflatsquare/graphics"

const (
	numComponents = 2 // values per vertex
	VertexCount   = 4
)

// DrawScene clears the surface and draws the square once. It does nothing
// until the renderer is ready.
func (r *Renderer) DrawScene() {
	if !r.ready {
		return
	}
	dev := r.device

	dev.ClearColor(0.0, 0.0, 0.0, 1.0)
	dev.ClearDepth(1.0)
	dev.Enable(graphics.DepthTest)
	dev.DepthFunc(graphics.LessEqual)
	dev.Clear(graphics.ColorBufferBit | graphics.DepthBufferBit)

	width, height := r.context.GetFramebufferSize()
	dev.Viewport(0, 0, int32(width), int32(height))

	projection := ProjectionMatrix()
	modelView := ModelViewMatrix()

	// stride 0 means tightly packed
	position := uint32(r.programInfo.VertexPosition)
	dev.BindBuffer(graphics.ArrayBuffer, r.positionBuffer)
	dev.VertexAttribPointer(position, numComponents, graphics.Float, false, 0, 0)
	dev.EnableVertexAttribArray(position)

	dev.UseProgram(r.programInfo.Program)

	dev.UniformMatrix4(r.programInfo.ProjectionMatrix, false, projection)
	dev.UniformMatrix4(r.programInfo.ModelViewMatrix, false, modelView)

	dev.DrawArrays(graphics.TriangleStrip, 0, VertexCount)
}
