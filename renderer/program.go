package renderer

import (
	"fmt"

	"github.com/richinsley/goflatsquare/graphics"
	"github.com/richinsley/goflatsquare/shader"
)

// ProgramInfo is a linked shader program and the locations the draw call feeds.
type ProgramInfo struct {
	Program          uint32
	VertexPosition   int32
	ProjectionMatrix int32
	ModelViewMatrix  int32
}

// LoadProgram compiles src and looks up the locations of its inputs.
func LoadProgram(dev graphics.Device, src shader.Source) (ProgramInfo, error) {
	program, err := dev.CreateProgram(src.Vertex, src.Fragment)
	if err != nil {
		return ProgramInfo{}, fmt.Errorf("failed to create shader program: %w", err)
	}

	info := ProgramInfo{
		Program:          program,
		VertexPosition:   dev.AttribLocation(program, src.Name(shader.VertexPosition)),
		ProjectionMatrix: dev.UniformLocation(program, src.Name(shader.ProjectionMatrix)),
		ModelViewMatrix:  dev.UniformLocation(program, src.Name(shader.ModelViewMatrix)),
	}
	if info.VertexPosition < 0 {
		return ProgramInfo{}, fmt.Errorf("attribute %s not found in program %d", shader.VertexPosition, program)
	}
	return info, nil
}
