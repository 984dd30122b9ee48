package shader

// Symbol names shared by every variant of the flat shader.
const (
	VertexPosition   = "aVertexPosition"
	ProjectionMatrix = "uProjectionMatrix"
	ModelViewMatrix  = "uModelViewMatrix"
)

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSourceGL = `#version 410 core
in vec4 aVertexPosition;
uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;
void main() {
    gl_Position = uProjectionMatrix * uModelViewMatrix * aVertexPosition;
}
`

const fragmentShaderSourceGL = `#version 410 core
out vec4 fragColor;
void main() { fragColor = vec4(1.0, 1.0, 1.0, 1.0); }
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const vertexShaderSourceGLES = `#version 300 es
in vec4 aVertexPosition;
uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;
void main() {
    gl_Position = uProjectionMatrix * uModelViewMatrix * aVertexPosition;
}
`

const fragmentShaderSourceGLES = `#version 300 es
precision mediump float;
out vec4 fragColor;
void main() { fragColor = vec4(1.0, 1.0, 1.0, 1.0); }
`

// ─────────────────────────────────── WebGL2 ─────────────────────────────────────

// The WebGL sources are fed through the translator; they never reach the driver as is.
const vertexShaderSourceWebGL = `#version 300 es
in vec4 aVertexPosition;
uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;
void main() {
    gl_Position = uProjectionMatrix * uModelViewMatrix * aVertexPosition;
}
`

const fragmentShaderSourceWebGL = `#version 300 es
precision highp float;
out vec4 fragColor;
void main() {
    fragColor = vec4(1.0, 1.0, 1.0, 1.0);
}
`

// Source is a vertex/fragment pair ready for compilation, along with the
// names the compiled stages use for the shader's symbols.
type Source struct {
	Vertex   string
	Fragment string
	// Names maps a symbol to the name it was given by translation.
	// Symbols missing from the map keep their own name.
	Names map[string]string
}

// Name returns the compiled name of symbol.
func (s Source) Name(symbol string) string {
	if mapped, ok := s.Names[symbol]; ok && mapped != "" {
		return mapped
	}
	return symbol
}

// ────────────────────────────────── Public API ─────────────────────────────────

// Native returns the hand-written sources for desktop GL or GLES.
func Native(isGLES bool) Source {
	if isGLES {
		return Source{Vertex: vertexShaderSourceGLES, Fragment: fragmentShaderSourceGLES}
	}
	return Source{Vertex: vertexShaderSourceGL, Fragment: fragmentShaderSourceGL}
}

func WebGLVertexShader() string {
	return vertexShaderSourceWebGL
}

func WebGLFragmentShader() string {
	return fragmentShaderSourceWebGL
}
