package layout

import (
	"encoding/json"
	"fmt"
)

type blockWire struct {
	ID      string          `json:"id"`
	Type    BlockType       `json:"type"`
	X       float64         `json:"x"`
	Y       float64         `json:"y"`
	Width   float64         `json:"width"`
	Height  float64         `json:"height"`
	Style   Style           `json:"style"`
	Locked  bool            `json:"locked,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

// MarshalJSON writes the block with its type discriminator next to the
// type-specific content object.
func (b Block) MarshalJSON() ([]byte, error) {
	w := blockWire{
		ID:     b.ID,
		Type:   b.Type(),
		X:      b.X,
		Y:      b.Y,
		Width:  b.Width,
		Height: b.Height,
		Style:  b.Style,
		Locked: b.Locked,
	}
	if b.Content != nil {
		raw, err := json.Marshal(b.Content)
		if err != nil {
			return nil, err
		}
		w.Content = raw
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the content variant selected by "type".
func (b *Block) UnmarshalJSON(data []byte) error {
	var w blockWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	content, err := DecodeContent(w.Type, w.Content)
	if err != nil {
		return fmt.Errorf("block %q: %w", w.ID, err)
	}
	*b = Block{
		ID:      w.ID,
		X:       w.X,
		Y:       w.Y,
		Width:   w.Width,
		Height:  w.Height,
		Style:   w.Style,
		Content: content,
		Locked:  w.Locked,
	}
	return nil
}

// DecodeContent decodes the content object of a block of type t.
func DecodeContent(t BlockType, raw json.RawMessage) (Content, error) {
	var (
		c   Content
		err error
	)
	switch t {
	case TypeText:
		var v TextContent
		err = unmarshalOptional(raw, &v)
		c = v
	case TypeImage:
		var v ImageContent
		err = unmarshalOptional(raw, &v)
		c = v
	case TypeTable:
		var v TableContent
		err = unmarshalOptional(raw, &v)
		if v.Columns == nil {
			v.Columns = []Column{}
		}
		c = v
	case TypeShape:
		c = ShapeContent{}
	case TypeLine:
		c = LineContent{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, t)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func unmarshalOptional(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// Decode parses a JSON template and validates its invariants.
func Decode(data []byte) (Template, error) {
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return Template{}, err
	}
	if t.Blocks == nil {
		t.Blocks = []Block{}
	}
	if t.Page.Format == "" {
		t.Page.Format = FormatA4
	}
	if t.Page.Orientation == "" {
		t.Page.Orientation = Portrait
	}
	if err := t.Validate(); err != nil {
		return Template{}, err
	}
	return t, nil
}
