package scene

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/hidpi/pkg/rendering"
	"github.com/go-drift/hidpi/pkg/target"
	hidpitest "github.com/go-drift/hidpi/pkg/testing"
)

func count(ops []hidpitest.DisplayOp, name string) int {
	n := 0
	for _, op := range ops {
		if op.Op == name {
			n++
		}
	}
	return n
}

func TestRecord(t *testing.T) {
	ops := hidpitest.SerializeDisplayList(Record(rendering.Size{Width: 100, Height: 50}))
	assert.Equal(t, 25, count(ops, "drawRect"), "every other cell of a 10x5 board")
	assert.Equal(t, 2, count(ops, "drawLine"))
}

func TestRecordSnapshot(t *testing.T) {
	dl := Record(rendering.Size{Width: 20, Height: 20})
	hidpitest.CaptureDisplayList(dl).MatchesFile(t, filepath.Join("testdata", "checkerboard_20x20.snapshot.json"))
}

func TestDraw(t *testing.T) {
	canvas := hidpitest.NewCanvas(rendering.Size{Width: 150, Height: 75})
	tgt, err := target.New(canvas, rendering.Size{Width: 100, Height: 50}, rendering.Size{Width: 150, Height: 75})
	require.NoError(t, err)
	require.NoError(t, Draw(tgt))

	ops := canvas.Ops()
	assert.Equal(t, 3, count(ops, "save"))
	assert.Equal(t, 3, count(ops, "restore"))
	assert.Equal(t, "scale(sx=1.5, sy=1.5)", ops[6].String())
	assert.True(t, canvas.Transform().IsIdentity())

	border := ops[len(ops)-2]
	assert.Equal(t, "drawRect", border.Op)
	assert.Equal(t, 1.0, border.Params["strokeWidth"])
	assert.Equal(t, 149.5, border.Params["rect"].(map[string]any)["right"])
}
