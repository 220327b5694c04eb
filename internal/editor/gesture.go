package editor

import (
	"github.com/diewo77/doc-designer/internal/geometry"
	"github.com/diewo77/doc-designer/internal/layout"
)

// GestureKind is the kind of pointer gesture.
type GestureKind uint8

const (
	Move GestureKind = iota
	Resize
)

// Gesture tracks one drag or resize. Every Update recomputes the geometry
// from the origin captured at Begin and the total pointer delta, so
// intermediate frames never accumulate rounding. End commits once.
type Gesture struct {
	ed      *Editor
	kind    GestureKind
	origin  layout.Block
	zoom    float64
	changed bool
	done    bool
}

// BeginMove starts moving the block.
func (e *Editor) BeginMove(id string) (*Gesture, Result) {
	return e.begin(id, Move)
}

// BeginResize starts resizing the block from its bottom-right corner.
func (e *Editor) BeginResize(id string) (*Gesture, Result) {
	return e.begin(id, Resize)
}

func (e *Editor) begin(id string, kind GestureKind) (*Gesture, Result) {
	b, ok := e.template.Block(id)
	if !ok {
		return nil, NotFound
	}
	if b.Locked {
		return nil, Locked
	}
	e.selected = id
	return &Gesture{ed: e, kind: kind, origin: b, zoom: e.zoom}, Applied
}

// Update applies the total pointer delta (pixels since the gesture began)
// as an uncommitted patch.
func (g *Gesture) Update(dxPx, dyPx float64) Result {
	if g.done {
		return Applied
	}
	d := geometry.DragDelta(dxPx, dyPx, g.zoom)
	var p layout.BlockPatch
	switch g.kind {
	case Move:
		x := g.ed.snap(g.origin.X + d.X)
		y := g.ed.snap(g.origin.Y + d.Y)
		p.X, p.Y = &x, &y
	case Resize:
		w := g.ed.snap(g.origin.Width + d.X)
		h := g.ed.snap(g.origin.Height + d.Y)
		p.Width, p.Height = &w, &h
	}
	r := g.ed.UpdateBlock(g.origin.ID, p)
	if r == Applied {
		g.changed = true
	}
	return r
}

// End finishes the gesture with a single commit when anything changed.
func (g *Gesture) End() {
	if g.done {
		return
	}
	g.done = true
	if g.changed {
		g.ed.CommitChanges()
	}
}

// Cancel restores the origin geometry without committing.
func (g *Gesture) Cancel() {
	if g.done {
		return
	}
	g.done = true
	o := g.origin
	g.ed.UpdateBlock(o.ID, layout.BlockPatch{X: &o.X, Y: &o.Y, Width: &o.Width, Height: &o.Height})
}
