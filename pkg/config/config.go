// Package config loads hidpi.yaml, the optional configuration file read by
// the hidpi command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/hidpi/pkg/binding"
	"github.com/go-drift/hidpi/pkg/rendering"
)

// FileName is the configuration file looked up by LoadOptional.
const FileName = "hidpi.yaml"

// Config represents the optional hidpi.yaml configuration.
type Config struct {
	Binding BindingConfig `yaml:"binding"`
	Render  RenderConfig  `yaml:"render"`
}

// BindingConfig contains binding options and size transforms.
type BindingConfig struct {
	AllowNativeObserver *bool   `yaml:"allow_native_observer,omitempty"`
	AllowDownsampling   *bool   `yaml:"allow_downsampling,omitempty"`
	MaxBitmapSize       float64 `yaml:"max_bitmap_size,omitempty"`
	EvenBitmapSize      bool    `yaml:"even_bitmap_size,omitempty"`
}

// RenderConfig contains headless render settings.
type RenderConfig struct {
	LogicalWidth  float64 `yaml:"logical_width,omitempty"`
	LogicalHeight float64 `yaml:"logical_height,omitempty"`
	Density       float64 `yaml:"density,omitempty"`
	Output        string  `yaml:"output,omitempty"`
}

// Defaults applied by Resolve.
const (
	DefaultLogicalWidth  = 320
	DefaultLogicalHeight = 200
	DefaultDensity       = 2
)

// Resolved contains resolved configuration values.
type Resolved struct {
	Root        string
	ModulePath  string
	Target      binding.Target
	LogicalSize rendering.Size
	Density     float64
	Output      string
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return parse(filepath.Base(path), data)
}

// LoadOptional reads hidpi.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

func parse(name string, data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Binding.MaxBitmapSize < 0 {
		return fmt.Errorf("binding.max_bitmap_size must not be negative, got %v", c.Binding.MaxBitmapSize)
	}
	if c.Render.LogicalWidth < 0 || c.Render.LogicalHeight < 0 {
		return fmt.Errorf("render size must not be negative, got %vx%v", c.Render.LogicalWidth, c.Render.LogicalHeight)
	}
	if c.Render.Density < 0 {
		return fmt.Errorf("render.density must be positive, got %v", c.Render.Density)
	}
	return nil
}

// Options returns the binding options, defaulting unset fields to true.
func (c *Config) Options() binding.Options {
	opts := binding.DefaultOptions()
	if c.Binding.AllowNativeObserver != nil {
		opts.AllowNativeObserver = *c.Binding.AllowNativeObserver
	}
	if c.Binding.AllowDownsampling != nil {
		opts.AllowDownsampling = *c.Binding.AllowDownsampling
	}
	return opts
}

// BindingTarget builds a device-pixel content box target whose transform
// applies the configured clamp, then the even rounding.
func (c *Config) BindingTarget() binding.Target {
	var transforms []binding.SizeTransform
	if c.Binding.MaxBitmapSize > 0 {
		transforms = append(transforms, binding.ClampTransform(c.Binding.MaxBitmapSize))
	}
	if c.Binding.EvenBitmapSize {
		transforms = append(transforms, binding.EvenTransform)
	}
	opts := c.Options()
	return binding.Target{
		Kind:      binding.KindDevicePixelContentBox,
		Transform: binding.ComposeTransforms(transforms...),
		Options:   &opts,
	}
}

// Resolve loads hidpi.yaml (if present) from dir and resolves defaults. The
// default output file is named after the enclosing Go module, or after dir
// when there is none.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(dir)
}

// Resolve applies defaults relative to dir.
func (c *Config) Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	width, height := c.Render.LogicalWidth, c.Render.LogicalHeight
	if width == 0 {
		width = DefaultLogicalWidth
	}
	if height == 0 {
		height = DefaultLogicalHeight
	}
	logical, err := rendering.LogicalSize(width, height)
	if err != nil {
		return nil, fmt.Errorf("render size: %w", err)
	}
	density := c.Render.Density
	if density == 0 {
		density = DefaultDensity
	}

	output := strings.TrimSpace(c.Render.Output)
	if output == "" {
		output = defaultOutputName(modulePath, dir) + ".png"
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(dir, output)
	}

	return &Resolved{
		Root:        dir,
		ModulePath:  modulePath,
		Target:      c.BindingTarget(),
		LogicalSize: logical,
		Density:     density,
		Output:      output,
	}, nil
}

// modulePath returns the module path declared by dir/go.mod, or "" when dir
// is not a module root.
func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultOutputName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "hidpi"
	}
	return base
}
