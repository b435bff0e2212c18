package codec

import (
	"cmp"
	"container/heap"
	"fmt"
	"slices"

	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/stats"
)

// MaxCodeLen is the longest Huffman code length supported.
const MaxCodeLen = 32

// Code is one entry of a canonical Huffman code table.
type Code struct {
	Symbol int32
	Len    int
	Code   uint32
}

// String renders the code as its bit pattern, e.g. "0110".
func (c Code) String() string {
	if c.Len == 0 {
		return ""
	}

	return fmt.Sprintf("%0*b", c.Len, c.Code)
}

func compareCodes(a, b Code) int {
	if c := cmp.Compare(a.Len, b.Len); c != 0 {
		return c
	}

	return cmp.Compare(a.Symbol, b.Symbol)
}

// CanonicalCodes returns a copy of entries sorted by (length, symbol) with
// canonical codes assigned: codes of one length are consecutive, and the
// code is incremented then left-shifted once per extra bit when the length
// grows.
func CanonicalCodes(entries []Code) []Code {
	codes := slices.Clone(entries)
	slices.SortFunc(codes, compareCodes)
	assignCanonical(codes)

	return codes
}

// assignCanonical assigns codes to entries already sorted by (length, symbol).
func assignCanonical(codes []Code) {
	if len(codes) == 0 {
		return
	}

	var code uint32
	length := codes[0].Len
	for i := range codes {
		for length < codes[i].Len {
			code <<= 1
			length++
		}
		codes[i].Code = code
		code++
	}
}

// BuildCodeTable builds the canonical Huffman code table for the symbol
// frequencies in st.
//
// Leaves are numbered in the order st.All yields them and internal nodes
// continue the numbering as they are created. Each merge takes the two nodes
// with the smallest weight, preferring the lower node number among equal
// weights, so identical statistics always produce identical tables.
//
// Returns:
//   - []Code: entries sorted by (length, symbol) with canonical codes
//   - error: ErrEmptyStatistics for nil or empty statistics, ErrInvalidCode
//     when a code would exceed MaxCodeLen bits
func BuildCodeTable(st *stats.Stats) ([]Code, error) {
	if st == nil || st.NVals() == 0 {
		return nil, fmt.Errorf("%w: huffman table needs at least one symbol", errs.ErrEmptyStatistics)
	}

	n := st.NVals()
	codes := make([]Code, 0, n)
	nodes := make(nodeHeap, 0, n)
	for sym, freq := range st.All() {
		nodes = append(nodes, node{weight: freq, id: len(codes)})
		codes = append(codes, Code{Symbol: sym})
	}

	parent := make([]int, 2*n-1)
	for i := range parent {
		parent[i] = -1
	}

	heap.Init(&nodes)
	next := n
	for nodes.Len() > 1 {
		a := heap.Pop(&nodes).(node) //nolint:forcetypeassert
		b := heap.Pop(&nodes).(node) //nolint:forcetypeassert
		parent[a.id] = next
		parent[b.id] = next
		heap.Push(&nodes, node{weight: a.weight + b.weight, id: next})
		next++
	}

	for i := range codes {
		depth := 0
		for p := parent[i]; p >= 0; p = parent[p] {
			depth++
		}
		if depth > MaxCodeLen {
			return nil, fmt.Errorf("%w: symbol %d needs a %d bit code, limit is %d",
				errs.ErrInvalidCode, codes[i].Symbol, depth, MaxCodeLen)
		}
		codes[i].Len = depth
	}

	slices.SortFunc(codes, compareCodes)
	assignCanonical(codes)

	return codes, nil
}

type node struct {
	weight int64
	id     int
}

// nodeHeap is a min-heap of tree nodes ordered by (weight, id).
type nodeHeap []node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}

	return h[i].id < h[j].id
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(node)) //nolint:forcetypeassert
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]

	return x
}
