package field

// Block is a contiguous index range [Start, Start+Len) along one axis.
type Block struct {
	Start int // first index covered
	Len   int // number of indices (≥ 1)
}

// End returns the exclusive upper bound of the block.
func (b Block) End() int { return b.Start + b.Len }
