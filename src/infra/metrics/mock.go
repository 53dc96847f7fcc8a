package metrics

import (
	"sync"

	"hattournament/src/core/ports"
)

var _ ports.Metrics = (*Mock)(nil)

// Mock is a mock implementation of ports.Metrics for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	resultsSubmitted int
	resultsCleared   int
	splits           int
	splitUndos       int
	wordsTaken       int
	gamesPerSplit    []int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{gamesPerSplit: make([]int, 0)}
}

func (m *Mock) IncResultsSubmitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsSubmitted++
}

func (m *Mock) IncResultsCleared() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsCleared++
}

func (m *Mock) IncSplits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.splits++
}

func (m *Mock) IncSplitUndos() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.splitUndos++
}

func (m *Mock) AddWordsTaken(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wordsTaken += n
}

func (m *Mock) ObserveGamesPerSplit(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesPerSplit = append(m.gamesPerSplit, n)
}

// ResultsSubmitted returns the number of times IncResultsSubmitted was called.
func (m *Mock) ResultsSubmitted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsSubmitted
}

// ResultsCleared returns the number of times IncResultsCleared was called.
func (m *Mock) ResultsCleared() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsCleared
}

// Splits returns the number of times IncSplits was called.
func (m *Mock) Splits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.splits
}

// SplitUndos returns the number of times IncSplitUndos was called.
func (m *Mock) SplitUndos() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.splitUndos
}

// WordsTaken returns the sum passed to AddWordsTaken.
func (m *Mock) WordsTaken() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wordsTaken
}

// GamesPerSplit returns every value passed to ObserveGamesPerSplit.
func (m *Mock) GamesPerSplit() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.gamesPerSplit...)
}
