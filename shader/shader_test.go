package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNativeVersions(t *testing.T) {
	assert.True(t, strings.HasPrefix(Native(false).Vertex, "#version 410 core"))
	assert.True(t, strings.HasPrefix(Native(false).Fragment, "#version 410 core"))
	assert.True(t, strings.HasPrefix(Native(true).Vertex, "#version 300 es"))
	assert.True(t, strings.HasPrefix(Native(true).Fragment, "#version 300 es"))
}

func TestSourcesDeclareSymbols(t *testing.T) {
	for _, vs := range []string{Native(false).Vertex, Native(true).Vertex, WebGLVertexShader()} {
		assert.Contains(t, vs, VertexPosition)
		assert.Contains(t, vs, ProjectionMatrix)
		assert.Contains(t, vs, ModelViewMatrix)
	}
	assert.Contains(t, WebGLFragmentShader(), "vec4(1.0, 1.0, 1.0, 1.0)")
}

func TestSourceName(t *testing.T) {
	src := Source{Names: map[string]string{
		ProjectionMatrix: "_uuProjectionMatrix",
		ModelViewMatrix:  "",
	}}
	assert.Equal(t, "_uuProjectionMatrix", src.Name(ProjectionMatrix))
	assert.Equal(t, ModelViewMatrix, src.Name(ModelViewMatrix))
	assert.Equal(t, VertexPosition, src.Name(VertexPosition))
	assert.Equal(t, VertexPosition, Native(false).Name(VertexPosition))
}
