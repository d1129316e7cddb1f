package streamdsp

// Stage is a mono block-processing element. FIRFilter and IIRFilter both
// implement Stage for their sample type.
type Stage[S Sample] interface {
	// ProcessBlock filters src into dst; dst and src may be the same
	// slice.
	ProcessBlock(dst, src []S)

	// Reset clears internal state.
	Reset()
}

// Chain runs samples through a sequence of stages in order. An empty
// chain passes samples through unchanged.
type Chain[S Sample] struct {
	stages []Stage[S]
}

// NewChain creates a chain over the given stages.
func NewChain[S Sample](stages ...Stage[S]) *Chain[S] {
	return &Chain[S]{stages: stages}
}

// Append adds a stage to the end of the chain.
func (c *Chain[S]) Append(s Stage[S]) {
	c.stages = append(c.stages, s)
}

// Len returns the number of stages.
func (c *Chain[S]) Len() int {
	return len(c.stages)
}

// ProcessBlock runs src through every stage into dst, which must be at
// least as long as src. dst and src may be the same slice.
func (c *Chain[S]) ProcessBlock(dst, src []S) {
	n := copy(dst, src)
	for _, s := range c.stages {
		s.ProcessBlock(dst[:n], dst[:n])
	}
}

// Reset clears the state of every stage.
func (c *Chain[S]) Reset() {
	for _, s := range c.stages {
		s.Reset()
	}
}
