package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-drift/hidpi/pkg/config"
	"github.com/go-drift/hidpi/pkg/rendering"
)

// inspectDensities are common browser zoom levels and display densities.
var inspectDensities = []float64{0.5, 1, 1.25, 1.5, 1.75, 2, 2.5, 3}

func init() {
	RegisterCommand(&Command{
		Name:  "inspect",
		Short: "Show binding decisions for a surface",
		Long: `Bind an offscreen surface and report the selected strategy, the
logical and backing-store sizes and the suggested size. The density is then
moved through common zoom levels and the suggestion at each is listed.

Accepts the same flags as render, except --output and --preview.`,
		Usage: "hidpi inspect [flags]",
		Run:   runInspect,
	})
}

func runInspect(args []string) error {
	opts, err := parseSessionArgs(args)
	if err != nil {
		return err
	}
	if opts.output != "" || opts.preview != "" {
		return fmt.Errorf("inspect does not write images")
	}
	cfg, err := opts.resolve()
	if err != nil {
		return err
	}
	return inspect(os.Stdout, cfg, opts)
}

func inspect(w io.Writer, cfg *config.Resolved, opts sessionOptions) error {
	s, err := newSession(cfg, opts)
	if err != nil {
		return err
	}
	defer s.close()

	logical, err := s.binding.ElementLogicalSize()
	if err != nil {
		return err
	}
	bitmap, err := s.binding.BitmapSize()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Strategy:  %s\n", s.binding.State())
	fmt.Fprintf(w, "Density:   %g\n", s.win.DevicePixelRatio())
	fmt.Fprintf(w, "Logical:   %s\n", formatSize(logical))
	fmt.Fprintf(w, "Bitmap:    %s\n", formatSize(bitmap))
	suggested, err := s.binding.SuggestedBitmapSize()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Suggested: %s\n", formatSuggestion(suggested))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Density sweep:")
	for _, d := range inspectDensities {
		s.win.SetDevicePixelRatio(d)
		s.win.Settle()
		suggested, err := s.binding.SuggestedBitmapSize()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-6s %s\n", strconv.FormatFloat(d, 'g', -1, 64), formatSuggestion(suggested))
	}
	return nil
}

func formatSuggestion(s *rendering.Size) string {
	if s == nil {
		return "none (backing store is up to date)"
	}
	return formatSize(*s)
}
