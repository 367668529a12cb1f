package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-drift/hidpi/pkg/binding"
	"github.com/go-drift/hidpi/pkg/config"
	"github.com/go-drift/hidpi/pkg/platform/offscreen"
	"github.com/go-drift/hidpi/pkg/rendering"
)

// sessionOptions are the flags shared by render and inspect.
type sessionOptions struct {
	dir         string
	density     float64
	output      string
	preview     string
	polling     bool
	noDeviceBox bool
}

func parseSessionArgs(args []string) (sessionOptions, error) {
	opts := sessionOptions{dir: "."}
	value := func(i int, flag string) (string, error) {
		if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
			return "", fmt.Errorf("%s requires a value", flag)
		}
		return args[i+1], nil
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--dir", "--output", "--preview", "--density":
			v, err := value(i, args[i])
			if err != nil {
				return opts, err
			}
			switch args[i] {
			case "--dir":
				opts.dir = v
			case "--output":
				opts.output = v
			case "--preview":
				opts.preview = v
			case "--density":
				d, err := strconv.ParseFloat(v, 64)
				if err != nil || d <= 0 {
					return opts, fmt.Errorf("--density must be a positive number, got %q", v)
				}
				opts.density = d
			}
			i++
		case "--polling":
			opts.polling = true
		case "--no-device-pixel-box":
			opts.noDeviceBox = true
		default:
			return opts, fmt.Errorf("unknown flag %q", args[i])
		}
	}
	return opts, nil
}

// resolve loads hidpi.yaml from opts.dir and applies flag overrides.
func (opts sessionOptions) resolve() (*config.Resolved, error) {
	dir, err := filepath.Abs(opts.dir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, err
	}
	if opts.density > 0 {
		cfg.Density = opts.density
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}
	if opts.polling {
		o := *cfg.Target.Options
		o.AllowNativeObserver = false
		cfg.Target.Options = &o
	}
	return cfg, nil
}

// session is one bound element on an offscreen window.
type session struct {
	win     *offscreen.Window
	el      *offscreen.Element
	binding *binding.Binding
}

func newSession(cfg *config.Resolved, opts sessionOptions) (*session, error) {
	winOpts := []offscreen.Option{offscreen.WithDevicePixelRatio(cfg.Density)}
	if opts.noDeviceBox {
		winOpts = append(winOpts, offscreen.WithoutDevicePixelContentBox())
	}
	win := offscreen.NewWindow(winOpts...)
	el := win.NewElement(cfg.LogicalSize.Width, cfg.LogicalSize.Height)
	b, err := binding.Bind(el, cfg.Target)
	if err != nil {
		return nil, err
	}
	win.Settle()
	return &session{win: win, el: el, binding: b}, nil
}

func (s *session) close() {
	_ = s.binding.Dispose()
}

func formatSize(s rendering.Size) string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}
