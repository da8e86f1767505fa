package autograd

// blockSize is the number of Values per storage block. Blocks are allocated
// at full capacity up front so appending nodes never relocates earlier ones.
const blockSize = 1024

// DefaultNodeLimit bounds how many nodes a single arena may hold. A forward
// pass that exceeds it is almost certainly leaking nodes across steps.
const DefaultNodeLimit = 1 << 20

// Arena owns every Value for one computation episode.
//
// Values are stored in fixed-capacity blocks: growing the arena appends a new
// block and never moves existing elements, so a *Value handed out by a
// factory method stays valid until the arena is reset or discarded. This
// reference stability is the property that lets nodes hold plain pointers to
// their operands with no further lifetime management.
//
// The arena's factory methods (Constant, Add, Mul, ...) are the only way to
// construct a Value. Discarding the arena releases every node at once;
// nothing may dereference a node obtained from an arena after that.
//
// An Arena is not safe for concurrent use. The engine's execution model is
// single-threaded: forward construction, backward traversal and the optimizer
// step run sequentially.
type Arena struct {
	blocks [][]Value
	count  int
	limit  int
}

// NewArena creates an empty arena with the default node limit.
func NewArena() *Arena {
	return NewArenaWithLimit(DefaultNodeLimit)
}

// NewArenaWithLimit creates an empty arena holding at most limit nodes.
// Factory methods return ErrArenaFull once the limit is reached.
func NewArenaWithLimit(limit int) *Arena {
	if limit <= 0 {
		limit = DefaultNodeLimit
	}
	return &Arena{
		blocks: make([][]Value, 0, 8),
		limit:  limit,
	}
}

// Len returns the number of nodes currently owned by the arena.
func (a *Arena) Len() int {
	return a.count
}

// Limit returns the arena's node limit.
func (a *Arena) Limit() int {
	return a.limit
}

// Reset discards every node while keeping allocated blocks for reuse.
// Any *Value obtained before Reset must not be used afterwards.
func (a *Arena) Reset() {
	for i := range a.blocks {
		a.blocks[i] = a.blocks[i][:0]
	}
	a.count = 0
}

// alloc stores a new node and returns a stable pointer to it.
// All factory methods funnel through here after validating their inputs.
func (a *Arena) alloc(data float64, operands []*Value, localGrads []float64) (*Value, error) {
	if a.count >= a.limit {
		return nil, ErrArenaFull
	}

	n := len(a.blocks)
	if n == 0 || len(a.blocks[n-1]) == cap(a.blocks[n-1]) {
		a.blocks = append(a.blocks, make([]Value, 0, blockSize))
		n++
	}

	// Appending within a block's fixed capacity never reallocates, so
	// pointers into earlier positions (and earlier blocks) remain valid.
	block := append(a.blocks[n-1], Value{
		Data:       data,
		operands:   operands,
		localGrads: localGrads,
	})
	a.blocks[n-1] = block
	a.count++

	return &block[len(block)-1], nil
}
