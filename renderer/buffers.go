package renderer

import "github.com/richinsley/goflatsquare/graphics"

// SquarePositions are the corners of the unit square in triangle strip order.
var SquarePositions = []float32{
	-1.0, 1.0,
	1.0, 1.0,
	-1.0, -1.0,
	1.0, -1.0,
}

// InitBuffers uploads SquarePositions into a new array buffer and returns it.
// The buffer stays bound.
func InitBuffers(dev graphics.Device) uint32 {
	buffer := dev.CreateBuffer()
	dev.BindBuffer(graphics.ArrayBuffer, buffer)
	dev.BufferData(graphics.ArrayBuffer, SquarePositions, graphics.StaticDraw)
	return buffer
}
