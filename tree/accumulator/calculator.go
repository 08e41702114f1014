package accumulator

// Calculator incrementally maintains the root of a growing leaf sequence.
//
// It caches every layer of the tree. Appending a leaf only dirties the
// rightmost node of each layer above it, so an append recomputes O(log n)
// combines instead of the O(n) a full ComputeRoot does. The output is
// byte-identical to ComputeRoot over the same leaves.
type Calculator struct {
	// layers[0] is the leaf sequence; layers[i+1] holds the pairwise
	// combination of layers[i], with a trailing odd element combined with
	// itself. The last layer always has exactly one element.
	layers [][]Hash
}

// NewCalculator returns a calculator primed with the given leaves, which may
// be empty.
func NewCalculator(leaves []Hash) *Calculator {
	c := &Calculator{}
	for _, leaf := range leaves {
		c.Add(leaf)
	}
	return c
}

// Size returns the number of leaves added so far.
func (c *Calculator) Size() int {
	if len(c.layers) == 0 {
		return 0
	}
	return len(c.layers[0])
}

// Add appends a leaf and updates the cached layers.
func (c *Calculator) Add(leaf Hash) {
	if len(c.layers) == 0 {
		c.layers = [][]Hash{{leaf}}
		return
	}
	c.layers[0] = append(c.layers[0], leaf)

	// Recompute the parent of the last element of each layer. The new leaf
	// either completes the trailing pair or starts a new self-paired one;
	// both only change the last node of the layer above.
	for i := 0; len(c.layers[i]) > 1; i++ {
		if i+1 == len(c.layers) {
			c.layers = append(c.layers, make([]Hash, 0, 1))
		}
		layer := c.layers[i]

		p := (len(layer) - 1) / 2
		var parent Hash
		if 2*p+1 < len(layer) {
			parent = CombineHashes(layer[2*p], layer[2*p+1])
		} else {
			parent = CombineHashes(layer[2*p], layer[2*p])
		}

		if p == len(c.layers[i+1]) {
			c.layers[i+1] = append(c.layers[i+1], parent)
		} else {
			c.layers[i+1][p] = parent
		}
	}
}

// Root returns the current root hash. It panics if no leaves have been added,
// mirroring ComputeRoot over an empty sequence.
func (c *Calculator) Root() Hash {
	if len(c.layers) == 0 {
		panic("cannot compute root of empty leaf sequence")
	}
	top := c.layers[len(c.layers)-1]
	return top[0]
}
