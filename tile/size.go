package tile

// equalSizes returns n integer sizes that sum to Unit, with each share
// equal to Unit/n and any remainder folded into the last share in order.
// This is the redistribution rule every structural mutation applies to
// the children of whichever container it touched.
func equalSizes(n int) []int {
	if n <= 0 {
		return nil
	}
	base := Unit / n
	remainder := Unit - base*n
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = base
	}
	sizes[n-1] += remainder
	return sizes
}

// largestRemainder apportions total across weights proportionally,
// rounding each share down and then distributing the leftover total one
// unit at a time to the shares with the largest fractional remainder —
// the standard sum-preserving rounding rule, used when merge-parent
// rescales a collapsed container's children into their new parent's
// units.
func largestRemainder(weights []int, weightTotal, total int) []int {
	n := len(weights)
	out := make([]int, n)
	if weightTotal <= 0 || total <= 0 || n == 0 {
		return out
	}

	type share struct {
		idx       int
		whole     int
		remainder int // scaled remainder, out of weightTotal
	}
	shares := make([]share, n)
	assigned := 0
	for i, w := range weights {
		scaled := w * total
		whole := scaled / weightTotal
		shares[i] = share{idx: i, whole: whole, remainder: scaled - whole*weightTotal}
		out[i] = whole
		assigned += whole
	}

	leftover := total - assigned
	// Stable descending sort by remainder, ties broken by original index
	// so the rule is deterministic regardless of map/hash iteration order.
	for i := 1; i < n; i++ {
		for j := i; j > 0 && shares[j].remainder > shares[j-1].remainder; j-- {
			shares[j], shares[j-1] = shares[j-1], shares[j]
		}
	}
	for i := 0; i < leftover && i < n; i++ {
		out[shares[i].idx]++
	}
	return out
}
