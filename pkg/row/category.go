package row

// Category is the structural role of a slot position in a row.
type Category uint8

const (
	// Lower slots ride the curve and touch their neighbors at the lower
	// corner pair.
	Lower Category = iota
	// Upper slots sit between the flat ends and the valley; they touch at
	// the upper corner pair so the row folds inward.
	Upper
	// Flat slots at the row ends stay horizontal.
	Flat
	// ValleyFlat is the single center slot of an odd row, horizontal at
	// the bottom of the valley.
	ValleyFlat
	// ValleyUpper marks the two center slots of an even row.
	ValleyUpper
)

func (c Category) String() string {
	switch c {
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	case Flat:
		return "flat"
	case ValleyFlat:
		return "valley_flat"
	case ValleyUpper:
		return "valley_upper"
	}
	return "unknown"
}

// IsFlat reports whether slots of this category are drawn horizontal.
func (c Category) IsFlat() bool {
	return c == Flat || c == ValleyFlat
}

// AssignCategories labels each of n slot positions with its structural
// role. endFlat slots per side are forced flat, counted from the outer
// edge inward. The result length always equals n.
//
// The center of the row is a single ValleyFlat slot for odd n or a
// ValleyUpper pair for even n. On each side the innermost slot still
// unmarked after flat-marking becomes Upper; everything else stays Lower.
func AssignCategories(n, endFlat int) []Category {
	if n <= 0 {
		return nil
	}
	cats := make([]Category, n)

	var left, right []int
	if n%2 == 1 {
		center := n / 2
		cats[center] = ValleyFlat
		for i := 0; i < center; i++ {
			left = append(left, i)
		}
		for i := center + 1; i < n; i++ {
			right = append(right, i)
		}
	} else {
		centerLeft, centerRight := n/2-1, n/2
		cats[centerLeft] = ValleyUpper
		cats[centerRight] = ValleyUpper
		for i := 0; i < centerLeft; i++ {
			left = append(left, i)
		}
		for i := centerRight + 1; i < n; i++ {
			right = append(right, i)
		}
	}

	markFlats := func(indices []int, fromStart bool) {
		remaining := endFlat
		if remaining <= 0 {
			return
		}
		for k := range indices {
			idx := indices[k]
			if !fromStart {
				idx = indices[len(indices)-1-k]
			}
			if cats[idx] != Lower {
				continue
			}
			cats[idx] = Flat
			remaining--
			if remaining <= 0 {
				break
			}
		}
	}
	markFlats(left, true)
	markFlats(right, false)

	// The innermost remaining Lower per side turns Upper so the row folds
	// cleanly into the valley.
	for i := len(left) - 1; i >= 0; i-- {
		if cats[left[i]] == Lower {
			cats[left[i]] = Upper
			break
		}
	}
	for i := 0; i < len(right); i++ {
		if cats[right[i]] == Lower {
			cats[right[i]] = Upper
			break
		}
	}

	return cats
}
