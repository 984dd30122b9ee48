package renderer

import "github.com/go-gl/mathgl/mgl32"

const (
	FieldOfView    = 45.0 // degrees
	ZNear          = 0.1
	ZFar           = 100.0
	CameraDistance = 8.0
)

// ProjectionMatrix is the fixed perspective for an AppWidth x AppHeight view.
func ProjectionMatrix() mgl32.Mat4 {
	aspect := float32(AppWidth) / float32(AppHeight)
	return mgl32.Perspective(mgl32.DegToRad(FieldOfView), aspect, ZNear, ZFar)
}

// ModelViewMatrix moves the square CameraDistance units into the screen.
func ModelViewMatrix() mgl32.Mat4 {
	return mgl32.Ident4().Mul4(mgl32.Translate3D(0, 0, -CameraDistance))
}
