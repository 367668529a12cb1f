// Package scene draws the checkerboard test scene used to judge sharpness.
package scene

import (
	"math"

	"github.com/go-drift/hidpi/pkg/rendering"
	"github.com/go-drift/hidpi/pkg/target"
)

// cellSize is the checkerboard cell edge in logical units.
const cellSize = 10

// Record records the logical-unit part of the test scene: a
// checkerboard and both diagonals. Blurry cell edges in the output mean the
// backing store does not match the displayed size.
func Record(media rendering.Size) *rendering.DisplayList {
	var rec rendering.PictureRecorder
	c := rec.BeginRecording(media)
	dark := rendering.FillPaint(rendering.RGB(0x30, 0x30, 0x30))
	cols := int(math.Ceil(media.Width / cellSize))
	rows := int(math.Ceil(media.Height / cellSize))
	for y := range rows {
		for x := range cols {
			if (x+y)%2 == 0 {
				continue
			}
			c.DrawRect(rendering.RectFromLTWH(float64(x*cellSize), float64(y*cellSize), cellSize, cellSize), dark)
		}
	}
	diagonal := rendering.StrokePaint(rendering.ColorRed, 2)
	c.DrawLine(rendering.Offset{}, rendering.Offset{X: media.Width, Y: media.Height}, diagonal)
	c.DrawLine(rendering.Offset{X: media.Width}, rendering.Offset{Y: media.Height}, diagonal)
	return rec.EndRecording()
}

// Draw paints the scene into t: the checkerboard in logical units and a
// border exactly one device pixel wide.
func Draw(t *target.Target) error {
	scene := Record(t.MediaSize())
	err := t.UseBitmapCoordinateSpace(func(s target.BitmapScope) error {
		s.Canvas.Clear(rendering.ColorWhite)
		return nil
	})
	if err != nil {
		return err
	}
	err = t.UseMediaCoordinateSpace(func(s target.MediaScope) error {
		scene.Paint(s.Canvas)
		return nil
	})
	if err != nil {
		return err
	}
	return t.UseBitmapCoordinateSpace(func(s target.BitmapScope) error {
		b := s.BitmapSize
		s.Canvas.DrawRect(rendering.RectFromLTWH(0.5, 0.5, b.Width-1, b.Height-1), rendering.StrokePaint(rendering.ColorBlue, 1))
		return nil
	})
}
