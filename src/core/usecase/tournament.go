package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"hattournament/src/core/domain"
	"hattournament/src/core/ports"
)

// TournamentService manages tournaments, their player pairs and word bank.
type TournamentService struct {
	store ports.Store
	log   *slog.Logger
}

func NewTournamentService(store ports.Store, log *slog.Logger) *TournamentService {
	return &TournamentService{store: store, log: log}
}

// Create creates a tournament owned by userID.
func (s *TournamentService) Create(ctx context.Context, userID int64, name string) (*domain.Tournament, error) {
	name, err := validateName("name", name)
	if err != nil {
		return nil, err
	}
	var t *domain.Tournament
	err = s.store.Atomic(ctx, func(tx ports.Tx) error {
		t, err = tx.CreateTournament(ctx, userID, name)
		return err
	})
	return t, err
}

// List returns the tournaments owned by userID.
func (s *TournamentService) List(ctx context.Context, userID int64) ([]domain.Tournament, error) {
	var out []domain.Tournament
	err := s.store.Atomic(ctx, func(tx ports.Tx) (err error) {
		out, err = tx.ListTournaments(ctx, userID)
		return err
	})
	return out, err
}

// Get returns one tournament owned by userID.
func (s *TournamentService) Get(ctx context.Context, userID, tournamentID int64) (*domain.Tournament, error) {
	var t *domain.Tournament
	err := s.store.Atomic(ctx, func(tx ports.Tx) (err error) {
		t, err = ownTournament(ctx, tx, userID, tournamentID)
		return err
	})
	return t, err
}

// AddPair registers a pair. A player name may appear in one pair per tournament.
func (s *TournamentService) AddPair(ctx context.Context, userID, tournamentID int64, first, second string) (*domain.PlayerPair, error) {
	first, err := validateName("first_player", first)
	if err != nil {
		return nil, err
	}
	second, err = validateName("second_player", second)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(first, second) {
		return nil, domain.NewValidationError("second_player", "players of a pair must differ")
	}

	var pair *domain.PlayerPair
	err = s.store.Atomic(ctx, func(tx ports.Tx) error {
		t, err := tx.LockTournament(ctx, tournamentID)
		if err != nil {
			return err
		}
		if !t.OwnedBy(userID) {
			return domain.NewNotFoundError("tournament")
		}
		pairs, err := tx.ListPairs(ctx, tournamentID)
		if err != nil {
			return err
		}
		for _, p := range pairs {
			if p.HasPlayer(first) || p.HasPlayer(second) {
				return domain.NewAlreadyExistsError("player")
			}
		}
		pair, err = tx.CreatePair(ctx, tournamentID, first, second)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("pair created", "tournament_id", tournamentID, "pair_id", pair.ID)
	return pair, nil
}

// ListPairs returns the pairs of a tournament.
func (s *TournamentService) ListPairs(ctx context.Context, userID, tournamentID int64) ([]domain.PlayerPair, error) {
	var out []domain.PlayerPair
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		if _, err := ownTournament(ctx, tx, userID, tournamentID); err != nil {
			return err
		}
		var err error
		out, err = tx.ListPairs(ctx, tournamentID)
		return err
	})
	return out, err
}

// DeletePair removes a pair from every round and subround, then deletes
// it. Pairs that play in a game cannot be deleted.
func (s *TournamentService) DeletePair(ctx context.Context, userID, pairID int64) error {
	return s.store.Atomic(ctx, func(tx ports.Tx) error {
		pair, err := tx.GetPair(ctx, pairID)
		if err != nil {
			return err
		}
		if _, err := ownTournament(ctx, tx, userID, pair.TournamentID); err != nil {
			if domain.IsNotFound(err) {
				return domain.NewNotFoundError("pair")
			}
			return err
		}
		playing, err := tx.PairHasGames(ctx, pairID)
		if err != nil {
			return err
		}
		if playing {
			return domain.NewConflictError("pair plays in a game")
		}

		rounds, err := tx.ListRounds(ctx, pair.TournamentID)
		if err != nil {
			return err
		}
		for _, r := range rounds {
			if !r.HasPair(pairID) {
				continue
			}
			if err := detachPair(ctx, tx, r.ID, pairID); err != nil {
				return err
			}
		}
		if err := tx.DeletePair(ctx, pairID); err != nil {
			return err
		}
		s.log.Info("pair deleted", "pair_id", pairID)
		return nil
	})
}

// detachPair removes pairID from a round and its unsplit subrounds.
func detachPair(ctx context.Context, tx ports.Tx, roundID, pairID int64) error {
	round, err := tx.LockRound(ctx, roundID)
	if err != nil {
		return err
	}
	subs, err := tx.ListSubrounds(ctx, roundID)
	if err != nil {
		return err
	}
	touched, err := round.RemovePair(pairID, subs)
	if err != nil {
		return err
	}
	for _, sub := range touched {
		if err := tx.SaveSubround(ctx, sub); err != nil {
			return err
		}
	}
	return tx.SaveRound(ctx, round)
}

// AddWord adds a word to the tournament's bank.
func (s *TournamentService) AddWord(ctx context.Context, userID, tournamentID int64, text string, difficulty int) (*domain.Word, error) {
	text, err := validateName("text", text)
	if err != nil {
		return nil, err
	}
	if difficulty < 0 {
		return nil, domain.NewValidationError("difficulty", "cannot be negative")
	}
	var w *domain.Word
	err = s.store.Atomic(ctx, func(tx ports.Tx) error {
		if _, err := ownTournament(ctx, tx, userID, tournamentID); err != nil {
			return err
		}
		w, err = tx.CreateWord(ctx, tournamentID, text, difficulty)
		return err
	})
	return w, err
}

// ListWords returns the whole word bank, consumed words included.
func (s *TournamentService) ListWords(ctx context.Context, userID, tournamentID int64) ([]domain.Word, error) {
	var out []domain.Word
	err := s.store.Atomic(ctx, func(tx ports.Tx) error {
		if _, err := ownTournament(ctx, tx, userID, tournamentID); err != nil {
			return err
		}
		var err error
		out, err = tx.ListWords(ctx, tournamentID)
		return err
	})
	return out, err
}

// DeleteWord removes a word from the bank.
func (s *TournamentService) DeleteWord(ctx context.Context, userID, wordID int64) error {
	return s.store.Atomic(ctx, func(tx ports.Tx) error {
		w, err := tx.GetWord(ctx, wordID)
		if err != nil {
			return err
		}
		if _, err := ownTournament(ctx, tx, userID, w.TournamentID); err != nil {
			if domain.IsNotFound(err) {
				return domain.NewNotFoundError("word")
			}
			return err
		}
		return tx.DeleteWord(ctx, wordID)
	})
}

// takeWords draws amount unconsumed words of one difficulty and links them
// to the subround. Either all words are taken or none.
func takeWords(ctx context.Context, tx ports.Tx, tournamentID, subroundID int64, difficulty, amount int) ([]domain.Word, error) {
	eligible, err := tx.AvailableWords(ctx, tournamentID, difficulty)
	if err != nil {
		return nil, fmt.Errorf("load available words: %w", err)
	}
	words, err := domain.DrawWords(eligible, difficulty, amount, newRand())
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(words))
	for _, w := range words {
		ids = append(ids, w.ID)
	}
	if err := tx.ConsumeWords(ctx, subroundID, ids); err != nil {
		return nil, err
	}
	for i := range words {
		sid := subroundID
		words[i].Consumed = true
		words[i].SubroundID = &sid
	}
	return words, nil
}
