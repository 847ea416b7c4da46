// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"fmt"

	"gaudium.org/io/system"
)

// ErrNoWindows is returned by NewWindow if the platform doesn't support
// windows.
var ErrNoWindows = errors.New("app: platform does not support windows")

// Window is a native window. Its events are delivered to the reactor of
// the event thread that created it.
type Window struct {
	native NativeWindow
}

// Config describes a Window.
type Config struct {
	// Title is the window title.
	Title string
	// Width and Height are the client area dimensions in platform units.
	Width, Height int
}

// Option configures a window.
type Option func(cfg *Config)

// Title sets the title of the window.
func Title(t string) Option {
	return func(cfg *Config) {
		cfg.Title = t
	}
}

// Size sets the size of the window. Non-positive dimensions are ignored.
func Size(w, h int) Option {
	return func(cfg *Config) {
		if w > 0 && h > 0 {
			cfg.Width, cfg.Height = w, h
		}
	}
}

// NewWindow creates a window on the event thread of ctx. The default
// size is 640x480.
func NewWindow(ctx *Context, options ...Option) (*Window, error) {
	if err := ctx.Check(); err != nil {
		return nil, err
	}
	f, ok := ctx.loop.(WindowFactory)
	if !ok {
		return nil, ErrNoWindows
	}
	cfg := Config{
		Width:  640,
		Height: 480,
	}
	for _, o := range options {
		o(&cfg)
	}
	nw, err := f.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("app: new window: %w", err)
	}
	return &Window{native: nw}, nil
}

// Handle returns the identifier carried by events of w.
func (w *Window) Handle() system.WindowHandle {
	return w.native.Handle()
}

// Close asks the platform to destroy w.
func (w *Window) Close() error {
	return w.native.Close()
}
