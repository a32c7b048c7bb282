package raster

import (
	"fmt"
	"strings"
)

// Call is one recorded Surface operation.
type Call struct {
	Op   string
	Args []float64
	Text string
}

func (c Call) String() string {
	var b strings.Builder
	b.WriteString(c.Op)
	b.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%g", a)
	}
	if c.Text != "" {
		if len(c.Args) > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Text)
	}
	b.WriteByte(')')
	return b.String()
}

// Recorder forwards every call to another Surface and keeps a log of the
// mutating ones. OnCall, when set, sees each call as it happens.
type Recorder struct {
	target Surface
	calls  []Call
	OnCall func(Call)
	// Passthrough turns off the call history; OnCall still fires.
	Passthrough bool
}

var _ Surface = (*Recorder)(nil)

func NewRecorder(target Surface) *Recorder {
	return &Recorder{target: target}
}

func (r *Recorder) record(c Call) {
	if !r.Passthrough {
		r.calls = append(r.calls, c)
	}
	if r.OnCall != nil {
		r.OnCall(c)
	}
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	return append([]Call(nil), r.calls...)
}

// Count returns how many calls of the given op were recorded.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.calls = r.calls[:0]
}

// Target returns the wrapped surface.
func (r *Recorder) Target() Surface {
	return r.target
}

func (r *Recorder) Width() int  { return r.target.Width() }
func (r *Recorder) Height() int { return r.target.Height() }

func (r *Recorder) BeginPath() {
	r.record(Call{Op: "beginPath"})
	r.target.BeginPath()
}

func (r *Recorder) MoveTo(x, y float64) {
	r.record(Call{Op: "moveTo", Args: []float64{x, y}})
	r.target.MoveTo(x, y)
}

func (r *Recorder) LineTo(x, y float64) {
	r.record(Call{Op: "lineTo", Args: []float64{x, y}})
	r.target.LineTo(x, y)
}

func (r *Recorder) Stroke() error {
	r.record(Call{Op: "stroke"})
	return r.target.Stroke()
}

func (r *Recorder) SetStrokeColor(hex string) {
	r.record(Call{Op: "setStrokeColor", Text: hex})
	r.target.SetStrokeColor(hex)
}

func (r *Recorder) SetLineWidth(w float64) {
	r.record(Call{Op: "setLineWidth", Args: []float64{w}})
	r.target.SetLineWidth(w)
}

func (r *Recorder) LineWidth() float64 {
	return r.target.LineWidth()
}

func (r *Recorder) SetLineCap(c LineCap) {
	r.record(Call{Op: "setLineCap", Text: c.String()})
	r.target.SetLineCap(c)
}

func (r *Recorder) ClearRect(x, y, w, h int) {
	r.record(Call{Op: "clearRect", Args: []float64{float64(x), float64(y), float64(w), float64(h)}})
	r.target.ClearRect(x, y, w, h)
}

func (r *Recorder) Snapshot() Snapshot {
	r.record(Call{Op: "snapshot"})
	return r.target.Snapshot()
}

func (r *Recorder) Restore(s Snapshot) error {
	r.record(Call{Op: "restore"})
	return r.target.Restore(s)
}

// Close closes the wrapped surface when it supports it.
func (r *Recorder) Close() error {
	if c, ok := r.target.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
