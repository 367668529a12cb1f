package cmd

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/go-drift/hidpi/internal/scene"
	"github.com/go-drift/hidpi/pkg/target"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render the test scene to an image",
		Long: `Render a checkerboard test scene into a bound offscreen surface and
write the backing store to an image file.

The surface is bound, the suggested backing-store size is applied and the
scene is drawn through a rendering target. Cell edges stay sharp only when
the backing store matches the displayed size in device pixels.

Settings are read from hidpi.yaml in the project directory. Flags override
them:
  --dir DIR                  Directory containing hidpi.yaml (default: .)
  --density N                Display density (device pixels per logical pixel)
  --output FILE              Output file (.png, .bmp, .tif or .tiff)
  --preview FILE             Also write the frame scaled to its logical size
  --polling                  Disable the native resize observer
  --no-device-pixel-box      Simulate a host without device-pixel sizes`,
		Usage: "hidpi render [flags]",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	opts, err := parseSessionArgs(args)
	if err != nil {
		return err
	}
	cfg, err := opts.resolve()
	if err != nil {
		return err
	}
	s, err := newSession(cfg, opts)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.binding.ApplySuggestedBitmapSize(); err != nil {
		return err
	}
	t, err := target.Create(s.binding, nil)
	if err != nil {
		return fmt.Errorf("surface is not drawable: %w", err)
	}
	if err := scene.Draw(t); err != nil {
		return err
	}

	frame := s.el.Image()
	if err := writeImage(cfg.Output, frame); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%s logical, %s device pixels, density %g, %s)\n",
		cfg.Output, formatSize(t.MediaSize()), formatSize(t.BitmapSize()), cfg.Density, s.binding.State())

	if opts.preview != "" {
		w, h := int(math.Round(t.MediaSize().Width)), int(math.Round(t.MediaSize().Height))
		preview := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(preview, preview.Bounds(), frame, frame.Bounds(), draw.Src, nil)
		if err := writeImage(opts.preview, preview); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%dx%d preview)\n", opts.preview, w, h)
	}
	return nil
}

// writeImage encodes img in the format implied by the file extension.
func writeImage(path string, img image.Image) (err error) {
	encode, err := encoderFor(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func encoderFor(path string) (func(*os.File, image.Image) error, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return func(f *os.File, img image.Image) error { return png.Encode(f, img) }, nil
	case ".bmp":
		return func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }, nil
	case ".tif", ".tiff":
		return func(f *os.File, img image.Image) error {
			return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("unsupported image format %q (use .png, .bmp, .tif or .tiff)", ext)
	}
}
