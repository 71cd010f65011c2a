// Package window wraps a GLFW window with an OpenGL 4.1 core context.
package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string
}

type Config struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

func DefaultConfig() Config {
	return Config{
		Width:     1280,
		Height:    720,
		Title:     "Haunted House",
		Resizable: true,
		VSync:     true,
	}
}

func New(config Config) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w, h := handle.GetSize()
	return &Window{
		Handle: handle,
		Width:  w,
		Height: h,
		Title:  config.Title,
	}, nil
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

// Size returns the window size in logical (screen coordinate) pixels.
func (w *Window) Size() (int, int) {
	return w.Width, w.Height
}

func (w *Window) FramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

// PixelRatio is the device pixel ratio: framebuffer pixels per screen
// coordinate along X, falling back to the content scale.
func (w *Window) PixelRatio() float64 {
	fw, _ := w.Handle.GetFramebufferSize()
	if w.Width > 0 && fw > 0 {
		return float64(fw) / float64(w.Width)
	}
	sx, _ := w.Handle.GetContentScale()
	if sx <= 0 {
		return 1
	}
	return float64(sx)
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

type ResizeCallback func(width, height int, pixelRatio float64)

// SetResizeCallback fires when either the window size or the framebuffer
// size changes, so moving between monitors of different density is seen.
func (w *Window) SetResizeCallback(cb ResizeCallback) {
	w.Handle.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.Width = width
		w.Height = height
		cb(width, height, w.PixelRatio())
	})
	w.Handle.SetFramebufferSizeCallback(func(_ *glfw.Window, _, _ int) {
		cb(w.Width, w.Height, w.PixelRatio())
	})
}

type CursorCallback func(x, y float64)

func (w *Window) SetCursorCallback(cb CursorCallback) {
	w.Handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		cb(x, y)
	})
}

type MouseButtonCallback func(button int, pressed bool)

func (w *Window) SetMouseButtonCallback(cb MouseButtonCallback) {
	w.Handle.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		cb(int(b), action == glfw.Press)
	})
}

// ScrollCallback is the type for scroll event handlers
type ScrollCallback func(xoff, yoff float64)

func (w *Window) SetScrollCallback(cb ScrollCallback) {
	w.Handle.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		cb(xoff, yoff)
	})
}

// KeyCallback receives presses and repeats, never releases.
type KeyCallback func(key int, shift bool)

func (w *Window) SetKeyCallback(cb KeyCallback) {
	w.Handle.SetKeyCallback(func(_ *glfw.Window, k glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		cb(int(k), mods&glfw.ModShift != 0)
	})
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

const (
	KeyEscape = int(glfw.KeyEscape)
	KeyTab    = int(glfw.KeyTab)
	KeyUp     = int(glfw.KeyUp)
	KeyDown   = int(glfw.KeyDown)
)
