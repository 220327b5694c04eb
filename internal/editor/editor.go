// Package editor implements template editing with snapshot-based undo/redo.
//
// Fine-grained changes (UpdateBlock, gesture updates) are never recorded on
// their own: the interactive surface decides when a change is complete and
// calls CommitChanges, so one drag or resize becomes one undoable step.
// Structural operations (add, delete, page settings) commit immediately.
package editor

import (
	"time"

	"github.com/diewo77/doc-designer/internal/geometry"
	"github.com/diewo77/doc-designer/internal/layout"
	"github.com/google/uuid"
)

// Result tells the caller what an operation referencing a block did.
// Unknown ids are not errors; callers may discard the result.
type Result uint8

const (
	Applied Result = iota
	NotFound
	Locked
)

func (r Result) String() string {
	switch r {
	case Applied:
		return "applied"
	case NotFound:
		return "not_found"
	case Locked:
		return "locked"
	}
	return "unknown"
}

// Option configures an Editor.
type Option func(*Editor)

// WithHistoryCapacity sets the maximum number of snapshots kept.
func WithHistoryCapacity(n int) Option {
	return func(e *Editor) { e.capacity = n }
}

// WithZoomRange sets the allowed zoom range.
func WithZoomRange(r geometry.ZoomRange) Option {
	return func(e *Editor) { e.zoomRange = r }
}

// WithIDGenerator replaces the uuid generator used for new blocks.
func WithIDGenerator(gen func() string) Option {
	return func(e *Editor) { e.newID = gen }
}

// WithClock replaces time.Now for UpdatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

// Editor owns one template, its selection, the zoom and the history.
// It is not safe for concurrent use.
type Editor struct {
	template  layout.Template
	selected  string
	zoom      float64
	zoomRange geometry.ZoomRange
	history   *History
	capacity  int
	newID     func() string
	now       func() time.Time
}

// New starts an editor on t with a one-entry history.
func New(t layout.Template, opts ...Option) *Editor {
	e := &Editor{
		zoom:      1,
		zoomRange: geometry.DefaultZoomRange,
		capacity:  DefaultHistoryCapacity,
		newID:     uuid.NewString,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.zoom = e.zoomRange.Clamp(e.zoom)
	e.template = t.Clone()
	e.history = NewHistory(e.template, e.capacity)
	return e
}

// Template returns a copy of the current template.
func (e *Editor) Template() layout.Template { return e.template.Clone() }

// Selected returns the selected block id.
func (e *Editor) Selected() (string, bool) { return e.selected, e.selected != "" }

func (e *Editor) Zoom() float64 { return e.zoom }

// SetZoom clamps z to the configured range. Zoom is not part of history.
func (e *Editor) SetZoom(z float64) float64 {
	e.zoom = e.zoomRange.Clamp(z)
	return e.zoom
}

func (e *Editor) CanUndo() bool     { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool     { return e.history.CanRedo() }
func (e *Editor) History() *History { return e.history }

// AddBlock adds a block of type typ at the default position.
func (e *Editor) AddBlock(typ layout.BlockType) string {
	return e.AddBlockAt(typ, layout.DefaultX, layout.DefaultY)
}

// AddBlockAt adds a block with type defaults at (x, y), commits and
// selects it. The position is snapped when the page asks for it.
func (e *Editor) AddBlockAt(typ layout.BlockType, x, y float64) string {
	x, y = e.snap(x), e.snap(y)
	b := layout.NewBlock(e.newID(), typ, x, y)
	e.template.Blocks = append(e.template.Blocks, b)
	e.CommitChanges()
	e.selected = b.ID
	return b.ID
}

// UpdateBlock merges patch into the block without committing.
func (e *Editor) UpdateBlock(id string, patch layout.BlockPatch) Result {
	i := e.template.IndexOf(id)
	if i < 0 {
		return NotFound
	}
	if skipped := patch.Apply(&e.template.Blocks[i]); skipped {
		return Locked
	}
	return Applied
}

// CommitChanges records the current template as a new history entry.
func (e *Editor) CommitChanges() {
	e.template.UpdatedAt = e.now()
	e.history.Push(e.template)
}

// DeleteBlock removes the block, commits and clears its selection.
func (e *Editor) DeleteBlock(id string) Result {
	i := e.template.IndexOf(id)
	if i < 0 {
		return NotFound
	}
	e.template.Blocks = append(e.template.Blocks[:i], e.template.Blocks[i+1:]...)
	if e.selected == id {
		e.selected = ""
	}
	e.CommitChanges()
	return Applied
}

// DuplicateBlock copies a block with a fresh id, offset by one grid step
// (5mm without a grid), commits and selects the copy.
func (e *Editor) DuplicateBlock(id string) (string, Result) {
	src, ok := e.template.Block(id)
	if !ok {
		return "", NotFound
	}
	step := e.template.Page.GridSize
	if step <= 0 {
		step = 5
	}
	src.ID = e.newID()
	src.X += step
	src.Y += step
	src.Locked = false
	e.template.Blocks = append(e.template.Blocks, src)
	e.CommitChanges()
	e.selected = src.ID
	return src.ID, Applied
}

// BringToFront gives the block a z-index above every other block and commits.
func (e *Editor) BringToFront(id string) Result {
	_, hi := e.template.ZRange()
	return e.setZ(id, hi+1)
}

// SendToBack gives the block a z-index below every other block and commits.
func (e *Editor) SendToBack(id string) Result {
	lo, _ := e.template.ZRange()
	return e.setZ(id, lo-1)
}

func (e *Editor) setZ(id string, z int) Result {
	r := e.UpdateBlock(id, layout.BlockPatch{Style: &layout.StylePatch{ZIndex: &z}})
	if r == NotFound {
		return r
	}
	e.CommitChanges()
	return Applied
}

// UpdatePageSettings merges patch into the page settings and commits.
func (e *Editor) UpdatePageSettings(patch layout.PageSettingsPatch) {
	patch.Apply(&e.template.Page)
	e.CommitChanges()
}

// Undo restores the previous snapshot. It reports false at the oldest entry.
func (e *Editor) Undo() bool {
	t, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.restore(t)
	return true
}

// Redo restores the next snapshot. It reports false at the newest entry.
func (e *Editor) Redo() bool {
	t, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.restore(t)
	return true
}

func (e *Editor) restore(t layout.Template) {
	e.template = t
	if e.selected != "" && e.template.IndexOf(e.selected) < 0 {
		e.selected = ""
	}
}

// SelectBlock selects id. Selection is UI state and never recorded.
// An empty id clears the selection.
func (e *Editor) SelectBlock(id string) Result {
	if id == "" {
		e.selected = ""
		return Applied
	}
	if e.template.IndexOf(id) < 0 {
		return NotFound
	}
	e.selected = id
	return Applied
}

// ClearSelection deselects any block.
func (e *Editor) ClearSelection() { e.selected = "" }

// LoadTemplate replaces the template and restarts the history from it.
func (e *Editor) LoadTemplate(t layout.Template) {
	e.template = t.Clone()
	e.selected = ""
	e.history.Reset(e.template)
}

func (e *Editor) snap(v float64) float64 {
	if !e.template.Page.SnapToGrid {
		return v
	}
	return geometry.Snap(v, e.template.Page.GridSize)
}
