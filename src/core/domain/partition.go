package domain

import (
	"math/rand"
	"slices"
)

// Partition shuffles pairs and deals them round-robin into k cells, so cell
// sizes differ by at most one. It fails with ErrInvalidGameSize unless
// k > 0 and every cell gets at least MinPairsPerGame pairs. The input
// slice is not modified.
func Partition(pairs []int64, k int, rng *rand.Rand) ([][]int64, error) {
	if k <= 0 || len(pairs) < MinPairsPerGame*k {
		return nil, NewInvalidGameSizeError(len(pairs), k)
	}

	shuffled := slices.Clone(pairs)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cells := make([][]int64, k)
	for i, id := range shuffled {
		cells[i%k] = append(cells[i%k], id)
	}
	return cells, nil
}
