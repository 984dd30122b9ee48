package options

import "flag"

type SquareOptions struct {
	ConfigFile *string
	Help       *bool
	Mode       *string // "window", "record" or "snapshot"
	Width      *int
	Height     *int
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
	Codec      *string
	Headless   *bool // Use an EGL pbuffer instead of a GLFW window (linux only)
	Translate  *bool // Build the shader program from the WebGL sources through the translator
}

const (
	ModeWindow   = "window"
	ModeRecord   = "record"
	ModeSnapshot = "snapshot"
)

// Register defines the command-line flags on fs and returns the options they fill.
func Register(fs *flag.FlagSet) *SquareOptions {
	return &SquareOptions{
		ConfigFile: fs.String("config", "", "Path to a TOML config file"),
		Help:       fs.Bool("help", false, "Show help message"),
		Mode:       fs.String("mode", ModeWindow, "Run mode: window, record or snapshot"),
		Width:      fs.Int("width", 640, "Width of the window or output"),
		Height:     fs.Int("height", 480, "Height of the window or output"),
		Duration:   fs.Float64("duration", 5.0, "Duration to record in seconds"),
		FPS:        fs.Int("fps", 60, "Frames per second for recording"),
		OutputFile: fs.String("output", "", "Output file (default square.mp4 for record, square.png for snapshot)"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		Codec:      fs.String("codec", "h264", "Video codec for recording: h264 or hevc"),
		Headless:   fs.Bool("headless", false, "Render on a headless EGL surface (linux only)"),
		Translate:  fs.Bool("translate", false, "Translate the WebGL shader sources instead of using the native GLSL"),
	}
}

// Interactive reports whether the options ask for an on-screen window.
func (o *SquareOptions) Interactive() bool {
	return *o.Mode == ModeWindow && !*o.Headless
}

// Output returns the output file, falling back to a per-mode default.
func (o *SquareOptions) Output() string {
	if *o.OutputFile != "" {
		return *o.OutputFile
	}
	if *o.Mode == ModeSnapshot {
		return "square.png"
	}
	return "square.mp4"
}
