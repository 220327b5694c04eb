package layout

import "sort"

// zKey is the paint key of the block at index i: its explicit z-index,
// else its position in the document.
func zKey(b Block, i int) int {
	if b.Style.ZIndex != nil {
		return *b.Style.ZIndex
	}
	return i
}

// PaintOrder returns copies of the blocks sorted by ascending z-key. Ties
// keep document order.
func (t Template) PaintOrder() []Block {
	type keyed struct {
		key   int
		block Block
	}
	ks := make([]keyed, len(t.Blocks))
	for i, b := range t.Blocks {
		ks[i] = keyed{key: zKey(b, i), block: b.Clone()}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	out := make([]Block, len(ks))
	for i, k := range ks {
		out[i] = k.block
	}
	return out
}

// ZRange returns the lowest and highest z-keys in use.
func (t Template) ZRange() (lo, hi int) {
	for i, b := range t.Blocks {
		k := zKey(b, i)
		if i == 0 || k < lo {
			lo = k
		}
		if i == 0 || k > hi {
			hi = k
		}
	}
	return lo, hi
}
