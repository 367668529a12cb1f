//go:build js && wasm

// Command hidpi-web draws the test scene into the page's #surface canvas and
// keeps it device-pixel exact across resizes and zoom changes.
package main

import (
	"log/slog"
	"os"

	"github.com/go-drift/hidpi/internal/scene"
	"github.com/go-drift/hidpi/pkg/binding"
	"github.com/go-drift/hidpi/pkg/errors"
	"github.com/go-drift/hidpi/pkg/platform/web"
	"github.com/go-drift/hidpi/pkg/rendering"
	"github.com/go-drift/hidpi/pkg/target"
)

func main() {
	errors.SetLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	win := web.Global()
	el, ok := win.ElementByID("surface")
	if !ok {
		errors.Logger().Error("no #surface canvas on the page")
		return
	}
	b, err := binding.Bind(el, binding.Target{Kind: binding.KindDevicePixelContentBox})
	if err != nil {
		errors.Logger().Error("bind failed", "err", err)
		return
	}

	pending := false
	frame := func() {
		pending = false
		if err := b.ApplySuggestedBitmapSize(); err != nil {
			return
		}
		t, err := target.TryCreate(b, nil)
		if err != nil {
			errors.Logger().Warn("rendering target failed", "err", err)
			return
		}
		if t == nil {
			return
		}
		if err := scene.Draw(t); err != nil {
			errors.Logger().Warn("draw failed", "err", err)
		}
	}
	_, _ = b.SubscribeSuggestedBitmapSizeChanged(func(_, _ *rendering.Size) {
		if !pending {
			pending = true
			win.RequestAnimationFrame(frame)
		}
	})
	win.RequestAnimationFrame(frame)

	select {}
}
