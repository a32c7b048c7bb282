package drawing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MyLocalSketch/internal/raster"
	"MyLocalSketch/internal/state"
)

func newAttached(t *testing.T, opts ...Option) (*Surface, *raster.Recorder, *raster.Canvas) {
	t.Helper()
	c := raster.NewCanvas(80, 80)
	rec := raster.NewRecorder(c)
	d := New(opts...)
	require.NoError(t, d.Attach(rec))
	rec.Reset()
	return d, rec, c
}

func pt(x, y float64) state.Point { return state.Point{X: x, Y: y} }

func ops(rec *raster.Recorder) []string {
	var out []string
	for _, c := range rec.Calls() {
		out = append(out, c.Op)
	}
	return out
}

// referenceLine strokes a single segment on a fresh canvas with the settings
// a freshly attached surface uses.
func referenceLine(t *testing.T, from, to state.Point) raster.Snapshot {
	t.Helper()
	c := raster.NewCanvas(80, 80)
	c.SetLineCap(raster.CapRound)
	c.SetStrokeColor(state.DefaultColor)
	c.SetLineWidth(state.DefaultStrokeWidth)
	c.BeginPath()
	c.MoveTo(from.X, from.Y)
	c.LineTo(to.X, to.Y)
	require.NoError(t, c.Stroke())
	return c.Snapshot()
}

func TestDefaultsOnFreshSurface(t *testing.T) {
	c := raster.NewCanvas(80, 80)
	rec := raster.NewRecorder(c)
	d := New()
	require.NoError(t, d.Attach(rec))

	s := d.Settings()
	assert.Equal(t, "#000000", s.Color)
	assert.Equal(t, 2, s.StrokeWidth)
	assert.Equal(t, state.Freehand, s.Mode)
	assert.Equal(t, 2.0, c.LineWidth())
	assert.False(t, d.IsDrawing())
	assert.True(t, d.Attached())

	calls := rec.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "setLineCap(round)", calls[1].String())
	assert.True(t, c.Snapshot().Blank())
}

func TestWithSettings(t *testing.T) {
	d := New(WithSettings(state.Settings{Color: "#00FF00", StrokeWidth: 9, Mode: state.Line}))
	assert.Equal(t, state.Settings{Color: "#00ff00", StrokeWidth: 9, Mode: state.Line}, d.Settings())

	d = New(WithSettings(state.Settings{Color: "green", StrokeWidth: 40, Mode: state.Mode(5)}))
	assert.Equal(t, state.DefaultSettings(), d.Settings())
}

func TestOperationsBeforeAttach(t *testing.T) {
	d := New()
	assert.ErrorIs(t, d.BeginStroke(pt(1, 1)), ErrNotInitialized)
	assert.ErrorIs(t, d.ContinueStroke(pt(1, 1)), ErrNotInitialized)
	assert.ErrorIs(t, d.EndStroke(pt(1, 1)), ErrNotInitialized)
	assert.ErrorIs(t, d.Clear(), ErrNotInitialized)
	assert.ErrorIs(t, d.Detach(), ErrNotInitialized)
	assert.False(t, d.IsDrawing())

	// Settings only touch the settings and are accepted early.
	require.NoError(t, d.SetColor("#ff0000"))
	require.NoError(t, d.SetStrokeWidth(5))
	require.NoError(t, d.SetMode(state.Line))

	c := raster.NewCanvas(10, 10)
	require.NoError(t, d.Attach(c))
	assert.Equal(t, 5.0, c.LineWidth())
}

func TestAttachErrors(t *testing.T) {
	d := New()
	assert.ErrorIs(t, d.Attach(nil), ErrNilSurface)
	require.NoError(t, d.Attach(raster.NewCanvas(10, 10)))
	assert.ErrorIs(t, d.Attach(raster.NewCanvas(10, 10)), ErrAlreadyAttached)
}

func TestMoveWithoutGestureDrawsNothing(t *testing.T) {
	d, rec, c := newAttached(t)

	require.NoError(t, d.ContinueStroke(pt(100, 100)))
	require.NoError(t, d.ContinueStroke(pt(20, 20)))
	require.NoError(t, d.EndStroke(pt(20, 20)))

	assert.Empty(t, rec.Calls())
	assert.True(t, c.Snapshot().Blank())

	require.NoError(t, d.SetMode(state.Line))
	require.NoError(t, d.ContinueStroke(pt(30, 30)))
	assert.Zero(t, rec.Count("stroke"))
	assert.Zero(t, rec.Count("restore"))
}

func TestFreehandRoundTrip(t *testing.T) {
	d, rec, c := newAttached(t)

	require.NoError(t, d.BeginStroke(pt(10, 10)))
	assert.True(t, d.IsDrawing())
	assert.Zero(t, rec.Count("stroke"), "pointer-down draws nothing")
	assert.True(t, c.Snapshot().Blank())

	require.NoError(t, d.ContinueStroke(pt(50, 50)))
	require.NoError(t, d.EndStroke(pt(50, 50)))

	assert.Equal(t, []string{
		"beginPath", "moveTo",
		"setStrokeColor", "setLineWidth", "lineTo", "stroke", "beginPath", "moveTo",
		"beginPath",
	}, ops(rec))
	calls := rec.Calls()
	assert.Equal(t, []float64{10, 10}, calls[1].Args)
	assert.Equal(t, "#000000", calls[2].Text)
	assert.Equal(t, []float64{2}, calls[3].Args)
	assert.Equal(t, []float64{50, 50}, calls[4].Args)
	assert.Equal(t, 1, rec.Count("stroke"))

	assert.Equal(t, referenceLine(t, pt(10, 10), pt(50, 50)).Pix, c.Snapshot().Pix)

	assert.False(t, d.IsDrawing())
	assert.Equal(t, stroke{}, d.stroke)
}

func TestFreehandSegmentsAreIndependent(t *testing.T) {
	d, rec, _ := newAttached(t)

	require.NoError(t, d.BeginStroke(pt(5, 5)))
	for i := 1; i <= 10; i++ {
		require.NoError(t, d.ContinueStroke(pt(5+float64(i)*5, 5)))
	}
	require.NoError(t, d.EndStroke(pt(55, 5)))

	// One stroke per move, each on a path holding a single segment.
	assert.Equal(t, 10, rec.Count("stroke"))
	assert.Equal(t, 10, rec.Count("lineTo"))
}

func TestWidthChangeMidStrokeIsLive(t *testing.T) {
	d, rec, c := newAttached(t)

	require.NoError(t, d.BeginStroke(pt(10, 10)))
	require.NoError(t, d.ContinueStroke(pt(20, 10)))

	require.NoError(t, d.SetStrokeWidth(8))
	assert.Equal(t, 8.0, c.LineWidth(), "pushed into the raster immediately")

	rec.Reset()
	require.NoError(t, d.ContinueStroke(pt(30, 10)))
	calls := rec.Calls()
	require.Equal(t, "setLineWidth", calls[1].Op)
	assert.Equal(t, []float64{8}, calls[1].Args)

	snap := c.Snapshot()
	assert.NotZero(t, snap.AlphaAt(25, 13), "thick segment")
	assert.Zero(t, snap.AlphaAt(15, 13), "thin segment")
}

func TestColorChangeMidStrokeIsLive(t *testing.T) {
	d, rec, _ := newAttached(t)

	require.NoError(t, d.BeginStroke(pt(10, 10)))
	require.NoError(t, d.SetColor("#FF0000"))
	require.NoError(t, d.ContinueStroke(pt(20, 10)))

	assert.Equal(t, "#ff0000", rec.Calls()[2].Text)
}

func TestStrokeWidthBounds(t *testing.T) {
	d, _, c := newAttached(t)

	require.NoError(t, d.SetStrokeWidth(1))
	assert.Equal(t, 1.0, c.LineWidth())
	assert.Equal(t, 1, d.Settings().StrokeWidth)

	require.NoError(t, d.SetStrokeWidth(20))
	assert.Equal(t, 20.0, c.LineWidth())
	assert.Equal(t, 20, d.Settings().StrokeWidth)

	assert.ErrorIs(t, d.SetStrokeWidth(0), ErrWidthOutOfRange)
	assert.ErrorIs(t, d.SetStrokeWidth(21), ErrWidthOutOfRange)
	assert.Equal(t, 20, d.Settings().StrokeWidth)
	assert.Equal(t, 20.0, c.LineWidth())
}

func TestSetColorRejectsMalformed(t *testing.T) {
	d := New()
	for _, bad := range []string{"red", "#12345", "#1234567", "#zzzzzz", ""} {
		assert.ErrorIs(t, d.SetColor(bad), state.ErrInvalidColor, bad)
	}
	assert.Equal(t, "#000000", d.Settings().Color)
}

func TestSetModeRejectsUnknown(t *testing.T) {
	d := New()
	assert.ErrorIs(t, d.SetMode(state.Mode(3)), state.ErrInvalidMode)
	assert.Equal(t, state.Freehand, d.Settings().Mode)
}

func TestLineModeSnapshotsOnBegin(t *testing.T) {
	d, rec, c := newAttached(t)
	require.NoError(t, d.SetMode(state.Line))

	require.NoError(t, d.BeginStroke(pt(10, 10)))
	assert.Equal(t, []string{"snapshot"}, ops(rec))
	require.NotNil(t, d.stroke.start)
	require.NotNil(t, d.stroke.snapshot)
	assert.Equal(t, pt(10, 10), *d.stroke.start)
	assert.True(t, c.Snapshot().Blank())
}

func TestLinePreviewLeavesOneSegment(t *testing.T) {
	d, rec, c := newAttached(t)
	require.NoError(t, d.SetMode(state.Line))
	require.NoError(t, d.BeginStroke(pt(10, 10)))

	require.NoError(t, d.ContinueStroke(pt(60, 10)))
	assert.NotZero(t, c.Snapshot().AlphaAt(35, 10))

	require.NoError(t, d.ContinueStroke(pt(10, 60)))
	snap := c.Snapshot()
	assert.Zero(t, snap.AlphaAt(35, 10), "previous preview erased")
	assert.NotZero(t, snap.AlphaAt(10, 35))

	rec.Reset()
	require.NoError(t, d.ContinueStroke(pt(60, 60)))
	assert.Equal(t, []string{
		"restore", "beginPath", "moveTo", "lineTo", "setStrokeColor", "setLineWidth", "stroke",
	}, ops(rec))
	assert.Equal(t, []float64{10, 10}, rec.Calls()[2].Args)

	require.NoError(t, d.EndStroke(pt(60, 60)))
	assert.Equal(t, referenceLine(t, pt(10, 10), pt(60, 60)).Pix, c.Snapshot().Pix)
	assert.Equal(t, stroke{}, d.stroke)
}

func TestLineKeepsEarlierDrawing(t *testing.T) {
	d, _, c := newAttached(t)

	require.NoError(t, d.BeginStroke(pt(10, 70)))
	require.NoError(t, d.ContinueStroke(pt(70, 70)))
	require.NoError(t, d.EndStroke(pt(70, 70)))

	require.NoError(t, d.SetMode(state.Line))
	require.NoError(t, d.BeginStroke(pt(10, 10)))
	require.NoError(t, d.ContinueStroke(pt(70, 10)))
	require.NoError(t, d.EndStroke(pt(70, 10)))

	snap := c.Snapshot()
	assert.NotZero(t, snap.AlphaAt(40, 70), "freehand stroke survives the line preview")
	assert.NotZero(t, snap.AlphaAt(40, 10))
}

func TestLeaveFinalizesLine(t *testing.T) {
	released, _, releasedCanvas := newAttached(t)
	require.NoError(t, released.SetMode(state.Line))
	require.NoError(t, released.BeginStroke(pt(10, 10)))
	require.NoError(t, released.ContinueStroke(pt(70, 40)))
	require.NoError(t, released.EndStroke(pt(70, 40)))

	// A stale last move, then the pointer leaves at the real endpoint.
	left, _, leftCanvas := newAttached(t)
	require.NoError(t, left.SetMode(state.Line))
	require.NoError(t, left.BeginStroke(pt(10, 10)))
	require.NoError(t, left.ContinueStroke(pt(20, 60)))
	require.NoError(t, left.EndStroke(pt(70, 40)))

	assert.Equal(t, releasedCanvas.Snapshot().Pix, leftCanvas.Snapshot().Pix)
	assert.False(t, left.IsDrawing())
	assert.Nil(t, left.stroke.start)
	assert.Nil(t, left.stroke.snapshot)

	// No move at all before leaving still commits the segment.
	noMove, _, noMoveCanvas := newAttached(t)
	require.NoError(t, noMove.SetMode(state.Line))
	require.NoError(t, noMove.BeginStroke(pt(10, 10)))
	require.NoError(t, noMove.EndStroke(pt(70, 40)))
	assert.Equal(t, releasedCanvas.Snapshot().Pix, noMoveCanvas.Snapshot().Pix)
}

func TestModeIsFixedForTheGesture(t *testing.T) {
	d, rec, _ := newAttached(t)

	require.NoError(t, d.BeginStroke(pt(10, 10)))
	require.NoError(t, d.SetMode(state.Line))
	require.NoError(t, d.ContinueStroke(pt(30, 30)))
	require.NoError(t, d.EndStroke(pt(30, 30)))
	assert.Zero(t, rec.Count("restore"), "freehand gesture stays freehand")
	assert.Zero(t, rec.Count("snapshot"))

	rec.Reset()
	require.NoError(t, d.BeginStroke(pt(10, 10)))
	assert.Equal(t, 1, rec.Count("snapshot"), "next gesture picks up line mode")
	require.NoError(t, d.SetMode(state.Freehand))
	require.NoError(t, d.ContinueStroke(pt(40, 40)))
	assert.Equal(t, 1, rec.Count("restore"))
	require.NoError(t, d.EndStroke(pt(40, 40)))
	assert.Equal(t, 2, rec.Count("restore"))
}

func TestClearMatchesFreshSurface(t *testing.T) {
	d, rec, c := newAttached(t)
	require.NoError(t, d.SetStrokeWidth(7))
	require.NoError(t, d.SetColor("#3366cc"))

	require.NoError(t, d.BeginStroke(pt(5, 5)))
	require.NoError(t, d.ContinueStroke(pt(70, 30)))
	require.NoError(t, d.ContinueStroke(pt(20, 75)))
	require.NoError(t, d.EndStroke(pt(20, 75)))
	require.NoError(t, d.SetMode(state.Line))
	require.NoError(t, d.BeginStroke(pt(0, 79)))
	require.NoError(t, d.EndStroke(pt(79, 0)))
	require.False(t, c.Snapshot().Blank())

	rec.Reset()
	require.NoError(t, d.Clear())

	assert.Equal(t, raster.NewCanvas(80, 80).Snapshot().Pix, c.Snapshot().Pix)
	require.Len(t, rec.Calls(), 1)
	assert.Equal(t, "clearRect(0, 0, 80, 80)", rec.Calls()[0].String())
	assert.Equal(t, state.Settings{Color: "#3366cc", StrokeWidth: 7, Mode: state.Line}, d.Settings())
	assert.Equal(t, 7.0, c.LineWidth())
}

func TestClearDuringLineGesture(t *testing.T) {
	d, rec, c := newAttached(t)
	require.NoError(t, d.SetMode(state.Line))
	require.NoError(t, d.BeginStroke(pt(10, 10)))
	require.NoError(t, d.ContinueStroke(pt(60, 60)))

	require.NoError(t, d.Clear())
	assert.True(t, d.IsDrawing(), "clear leaves the drawing flag alone")
	assert.Nil(t, d.stroke.start)
	assert.Nil(t, d.stroke.snapshot)

	rec.Reset()
	require.NoError(t, d.ContinueStroke(pt(70, 20)))
	require.NoError(t, d.EndStroke(pt(70, 20)))
	assert.Zero(t, rec.Count("stroke"))
	assert.False(t, d.IsDrawing())
	assert.True(t, c.Snapshot().Blank())
}

func TestSnapshotMismatchAbortsGesture(t *testing.T) {
	d, _, c := newAttached(t)
	require.NoError(t, d.SetMode(state.Line))
	require.NoError(t, d.BeginStroke(pt(10, 10)))

	// The host resized the buffer behind the surface's back.
	require.NoError(t, c.Resize(40, 40))
	before := c.Snapshot()

	err := d.ContinueStroke(pt(30, 30))
	assert.ErrorIs(t, err, raster.ErrSnapshotMismatch)
	assert.False(t, d.IsDrawing())
	assert.Equal(t, stroke{}, d.stroke)
	assert.Equal(t, before.Pix, c.Snapshot().Pix)

	// The next gesture works against the new buffer.
	require.NoError(t, d.BeginStroke(pt(5, 5)))
	require.NoError(t, d.EndStroke(pt(35, 35)))
	assert.NotZero(t, c.Snapshot().AlphaAt(20, 20))
}

func TestSnapshotMismatchOnEnd(t *testing.T) {
	d, _, c := newAttached(t)
	require.NoError(t, d.SetMode(state.Line))
	require.NoError(t, d.BeginStroke(pt(10, 10)))
	require.NoError(t, c.Resize(40, 40))

	assert.ErrorIs(t, d.EndStroke(pt(30, 30)), raster.ErrSnapshotMismatch)
	assert.False(t, d.IsDrawing())
	assert.True(t, c.Snapshot().Blank())
}

func TestBeginWhileActiveStartsOver(t *testing.T) {
	d, _, _ := newAttached(t)
	require.NoError(t, d.SetMode(state.Line))
	require.NoError(t, d.BeginStroke(pt(10, 10)))
	first := d.stroke.id

	require.NoError(t, d.BeginStroke(pt(40, 40)))
	assert.NotEqual(t, first, d.stroke.id)
	assert.Equal(t, pt(40, 40), *d.stroke.start)
}

func TestDetachReleases(t *testing.T) {
	d, _, _ := newAttached(t)
	require.NoError(t, d.BeginStroke(pt(10, 10)))

	require.NoError(t, d.Detach())
	assert.False(t, d.Attached())
	assert.False(t, d.IsDrawing())
	assert.ErrorIs(t, d.ContinueStroke(pt(20, 20)), ErrNotInitialized)

	// A detached surface can be attached to a new buffer.
	require.NoError(t, d.Attach(raster.NewCanvas(10, 10)))
}
