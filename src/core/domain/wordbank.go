package domain

import "math/rand"

// DrawWords picks amount words uniformly at random from eligible. It fails
// with ErrInsufficientWords when eligible is too small; nothing is drawn
// in that case.
func DrawWords(eligible []Word, difficulty, amount int, rng *rand.Rand) ([]Word, error) {
	if amount <= 0 {
		return nil, NewValidationError("amount", "must be positive")
	}
	if len(eligible) < amount {
		return nil, NewInsufficientWordsError(difficulty, amount, len(eligible))
	}

	idx := rng.Perm(len(eligible))[:amount]
	out := make([]Word, 0, amount)
	for _, i := range idx {
		out = append(out, eligible[i])
	}
	return out, nil
}
