package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	encoder "github.com/richinsley/goflatsquare/encoder"
	"github.com/richinsley/goflatsquare/gldevice"
	"github.com/richinsley/goflatsquare/glfwcontext"
	"github.com/richinsley/goflatsquare/graphics"
	"github.com/richinsley/goflatsquare/headless"
	options "github.com/richinsley/goflatsquare/options"
	renderer "github.com/richinsley/goflatsquare/renderer"
	"github.com/richinsley/goflatsquare/shader"
	xlate "github.com/richinsley/goflatsquare/translator"
)

func init() {
	runtime.LockOSThread()
}

// contextFactory opens the surface the options ask for and binds a GL device to it.
func contextFactory(opts *options.SquareOptions) renderer.ContextFactory {
	return func() (graphics.Context, graphics.Device, error) {
		var ctx graphics.Context
		if *opts.Headless {
			h, err := headless.NewHeadless(*opts.Width, *opts.Height)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to create headless context: %w", err)
			}
			ctx = h
		} else {
			if err := glfwcontext.InitGraphics(); err != nil {
				return nil, nil, fmt.Errorf("failed to initialize glfw: %w", err)
			}
			w, err := glfwcontext.New(opts)
			if err != nil {
				glfwcontext.TerminateGraphics()
				return nil, nil, fmt.Errorf("failed to create window: %w", err)
			}
			ctx = w
		}

		dev, err := gldevice.New()
		if err != nil {
			ctx.Shutdown()
			return nil, nil, err
		}
		return ctx, dev, nil
	}
}

func sourceFunc(opts *options.SquareOptions) renderer.SourceFunc {
	if !*opts.Translate {
		return renderer.NativeSource
	}
	return func(isGLES bool) (shader.Source, error) {
		log.Println("Translating WebGL shader sources...")
		return xlate.Translate(isGLES)
	}
}

func run(opts *options.SquareOptions) error {
	r := renderer.NewRenderer(renderer.Config{
		NewContext: contextFactory(opts),
		Source:     sourceFunc(opts),
	})
	if ctx := r.Context(); ctx != nil {
		defer func() {
			ctx.Shutdown()
			if !*opts.Headless {
				glfwcontext.TerminateGraphics()
			}
		}()
	}

	switch *opts.Mode {
	case options.ModeRecord:
		width, height := r.FramebufferSize()
		enc := encoder.New(width, height, *opts.FPS, *opts.Codec, opts.Output(), *opts.FFMPEGPath)
		if err := r.Record(enc, *opts.Duration, *opts.FPS); err != nil {
			return fmt.Errorf("recording failed: %w", err)
		}
		log.Printf("Successfully rendered to %s", opts.Output())
	case options.ModeSnapshot:
		if err := r.Snapshot(opts.Output()); err != nil {
			return err
		}
	default:
		log.Println("Starting interactive render loop...")
		r.Run()
	}
	return nil
}

func main() {
	fs := flag.CommandLine
	opts := options.Register(fs)
	flag.Parse()

	if *opts.Help {
		fmt.Println("Flat square renderer")
		flag.PrintDefaults()
		return
	}

	if *opts.ConfigFile != "" {
		cfg, err := options.LoadConfig(*opts.ConfigFile)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		cfg.Apply(opts, fs)
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	if err := run(opts); err != nil {
		log.Fatalf("%v", err)
	}
}
