package simd

// CostRow is one output row of a cost patch: 16 Hamming distances.
type CostRow [LaneGroupSize]uint8

// FillCost returns a row with every lane set to v.
func FillCost(v uint8) CostRow {
	var c CostRow
	for i := range c {
		c[i] = v
	}
	return c
}

// ShiftUp moves lanes n positions towards the end of the row and zero-fills
// the low n lanes.
func (c CostRow) ShiftUp(n int) CostRow {
	var out CostRow
	if n >= len(c) {
		return out
	}
	copy(out[n:], c[:len(c)-n])
	return out
}

// And returns the lane-wise AND of c and mask.
func (c CostRow) And(mask CostRow) CostRow {
	for i := range c {
		c[i] &= mask[i]
	}
	return c
}

// Store copies the row to dst. dst must hold at least 16 bytes.
func (c *CostRow) Store(dst []byte) {
	copy(dst[:len(c)], c[:])
}
