package render

import "encoding/json"

// Recorder is a Surface that keeps the draw-call log. Export returns the
// log as JSON, which is what previews and tests consume.
type Recorder struct {
	calls []Command
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) AddPage(c PageCmd)    { r.calls = append(r.calls, c) }
func (r *Recorder) DrawText(c TextCmd)   { r.calls = append(r.calls, c) }
func (r *Recorder) DrawImage(c ImageCmd) { r.calls = append(r.calls, c) }
func (r *Recorder) DrawRect(c RectCmd)   { r.calls = append(r.calls, c) }
func (r *Recorder) DrawLine(c LineCmd)   { r.calls = append(r.calls, c) }
func (r *Recorder) DrawTable(c TableCmd) { r.calls = append(r.calls, c) }

// Calls returns the recorded commands.
func (r *Recorder) Calls() []Command {
	out := make([]Command, len(r.calls))
	copy(out, r.calls)
	return out
}

// Pages returns the number of recorded pages.
func (r *Recorder) Pages() int {
	n := 0
	for _, c := range r.calls {
		if _, ok := c.(PageCmd); ok {
			n++
		}
	}
	return n
}

type loggedCall struct {
	Op   string  `json:"op"`
	Args Command `json:"args"`
}

// Export encodes the log as a JSON array of {"op", "args"} objects.
func (r *Recorder) Export() ([]byte, error) {
	log := make([]loggedCall, len(r.calls))
	for i, c := range r.calls {
		log[i] = loggedCall{Op: c.Op(), Args: c}
	}
	return json.Marshal(log)
}
