package translator

import (
	"testing"

	"github.com/richinsley/goflatsquare/graphics/graphicstest"
	"github.com/richinsley/goflatsquare/renderer"
	"github.com/richinsley/goflatsquare/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mappedNames = map[string]string{
	shader.VertexPosition:   "_uaVertexPosition",
	shader.ProjectionMatrix: "_uuProjectionMatrix",
	shader.ModelViewMatrix:  "_uuModelViewMatrix",
}

func TestTranslateDesktop(t *testing.T) {
	src, err := Translate(false)
	require.NoError(t, err)
	assert.Contains(t, src.Vertex, "#version 410")
	assert.Contains(t, src.Fragment, "#version 410")
}

func TestTranslateGLES(t *testing.T) {
	src, err := Translate(true)
	require.NoError(t, err)
	assert.Contains(t, src.Vertex, "#version 300 es")
	assert.Contains(t, src.Fragment, "#version 300 es")
}

func TestTranslateNames(t *testing.T) {
	src, err := Translate(false)
	require.NoError(t, err)
	for symbol, mapped := range mappedNames {
		assert.Equal(t, mapped, src.Name(symbol), symbol)
		assert.Contains(t, src.Vertex, mapped)
	}
}

func TestTranslatedProgramLocations(t *testing.T) {
	src, err := Translate(false)
	require.NoError(t, err)

	rec := graphicstest.NewRecorder(map[string]int32{
		mappedNames[shader.VertexPosition]:   1,
		mappedNames[shader.ProjectionMatrix]: 4,
		mappedNames[shader.ModelViewMatrix]:  6,
	})
	info, err := renderer.LoadProgram(rec, src)
	require.NoError(t, err)
	assert.Equal(t, int32(1), info.VertexPosition)
	assert.Equal(t, int32(4), info.ProjectionMatrix)
	assert.Equal(t, int32(6), info.ModelViewMatrix)

	require.Len(t, rec.Sources, 1)
	assert.Equal(t, src.Vertex, rec.Sources[0][0])
	assert.Equal(t, src.Fragment, rec.Sources[0][1])
}
