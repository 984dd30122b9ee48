package translator

import (
	"context"
	"fmt"
	"sync"

	shader "github.com/richinsley/goflatsquare/shader"
	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process-wide shader translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		ctx := context.Background()
		translator, translatorErr = gst.NewShaderTranslator(ctx)
	})
	return translator, translatorErr
}

// Translate converts the WebGL sources of the flat shader to desktop GLSL 4.10,
// or to ESSL when isGLES is set.
func Translate(isGLES bool) (shader.Source, error) {
	t, err := GetTranslator()
	if err != nil {
		return shader.Source{}, fmt.Errorf("failed to create shader translator: %w", err)
	}

	outputFormat := gst.OutputFormatGLSL410
	if isGLES {
		outputFormat = gst.OutputFormatESSL
	}

	vsShader, err := t.TranslateShader(shader.WebGLVertexShader(), "vertex", gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return shader.Source{}, fmt.Errorf("vertex shader translation failed: %w", err)
	}
	fsShader, err := t.TranslateShader(shader.WebGLFragmentShader(), "fragment", gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return shader.Source{}, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	names := make(map[string]string)
	for name, v := range vsShader.Variables {
		names[name] = v.MappedName
	}
	for name, v := range fsShader.Variables {
		if _, ok := names[name]; !ok {
			names[name] = v.MappedName
		}
	}

	return shader.Source{
		Vertex:   vsShader.Code,
		Fragment: fsShader.Code,
		Names:    names,
	}, nil
}
