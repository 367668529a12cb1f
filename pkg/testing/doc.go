// Package testing provides canvas test helpers for hidpi.
//
// # Recording Canvas
//
// Canvas records every call as a DisplayOp while tracking the transform
// like a real drawing context:
//
//	canvas := hidpitest.NewCanvas(rendering.Size{Width: 200, Height: 100})
//	tgt, _ := target.New(canvas, media, bitmap)
//	tgt.UseMediaCoordinateSpace(draw)
//
//	if !canvas.Transform().IsIdentity() {
//	    t.Error("transform leaked")
//	}
//
// # Snapshot Testing
//
// Capture and compare drawn operations:
//
//	hidpitest.Capture(canvas).MatchesFile(t, "testdata/frame.snapshot.json")
//
// Update snapshots with:
//
//	HIDPI_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import hidpitest "github.com/go-drift/hidpi/pkg/testing"
package testing
