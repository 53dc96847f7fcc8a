// Package seed fills a store with a playable example tournament.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brianvoe/gofakeit/v7"

	"hattournament/src/core/domain"
	"hattournament/src/core/ports"
	"hattournament/src/core/usecase"
)

// Options controls the generated data.
type Options struct {
	Username   string
	Password   string
	Pairs      int
	Words      int
	Difficulty int // words get a difficulty in [1, Difficulty]
	Rounds     int
	Subrounds  int // per round
	Seed       uint64
	BcryptCost int
}

// Result identifies what was created.
type Result struct {
	User       *domain.User
	Tournament *domain.Tournament
	Pairs      []domain.PlayerPair
	Words      []domain.Word
	Rounds     []domain.Round
	Subrounds  []domain.Subround
}

// Generator creates example data through the usecase services, so every
// ownership and uniqueness rule applies to it.
type Generator struct {
	opts        Options
	faker       *gofakeit.Faker
	auth        *usecase.AuthService
	tournaments *usecase.TournamentService
	rounds      *usecase.RoundService
	subrounds   *usecase.SubroundService
	log         *slog.Logger
}

func NewGenerator(store ports.Store, opts Options, log *slog.Logger) *Generator {
	if opts.Difficulty < 1 {
		opts.Difficulty = 1
	}
	return &Generator{
		opts:        opts,
		faker:       gofakeit.New(opts.Seed),
		auth:        usecase.NewAuthService(store, domain.DefaultTokenLifetime, opts.BcryptCost, log),
		tournaments: usecase.NewTournamentService(store, log),
		rounds:      usecase.NewRoundService(store, log),
		subrounds:   usecase.NewSubroundService(store, nil, log),
		log:         log,
	}
}

// Run registers the user and creates one tournament with pairs, words,
// rounds and subrounds. Pair i joins subround i mod the subround total and
// the round that subround belongs to.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	opts := g.opts
	if opts.Pairs < 0 || opts.Words < 0 || opts.Rounds < 0 || opts.Subrounds < 0 {
		return nil, domain.NewValidationError("count", "must not be negative")
	}
	if opts.Rounds > 0 && opts.Subrounds == 0 {
		return nil, domain.NewValidationError("subrounds", "rounds need at least one subround")
	}

	user, err := g.auth.Register(ctx, opts.Username, opts.Password)
	if err != nil {
		return nil, fmt.Errorf("register %q: %w", opts.Username, err)
	}
	res := &Result{User: user}

	name := fmt.Sprintf("%s %s Cup", g.faker.City(), g.faker.Noun())
	if res.Tournament, err = g.tournaments.Create(ctx, user.ID, name); err != nil {
		return nil, err
	}

	players := g.uniqueStrings(opts.Pairs*2, g.faker.FirstName)
	for i := 0; i < opts.Pairs; i++ {
		p, err := g.tournaments.AddPair(ctx, user.ID, res.Tournament.ID, players[2*i], players[2*i+1])
		if err != nil {
			return nil, err
		}
		res.Pairs = append(res.Pairs, *p)
	}

	for _, text := range g.uniqueStrings(opts.Words, g.faker.Noun) {
		w, err := g.tournaments.AddWord(ctx, user.ID, res.Tournament.ID, text, g.faker.Number(1, opts.Difficulty))
		if err != nil {
			return nil, err
		}
		res.Words = append(res.Words, *w)
	}

	if err := g.schedule(ctx, res); err != nil {
		return nil, err
	}

	g.log.Info("seeded tournament",
		"user", user.Username,
		"tournament_id", res.Tournament.ID,
		"pairs", len(res.Pairs),
		"words", len(res.Words),
		"rounds", len(res.Rounds),
		"subrounds", len(res.Subrounds),
	)
	return res, nil
}

// schedule creates the rounds and subrounds and deals the pairs into them.
func (g *Generator) schedule(ctx context.Context, res *Result) error {
	userID := res.User.ID
	var rounds []*domain.Round
	var subs []*domain.Subround
	for r := range g.opts.Rounds {
		round, err := g.rounds.Create(ctx, userID, res.Tournament.ID, fmt.Sprintf("Round %d", r+1))
		if err != nil {
			return err
		}
		rounds = append(rounds, round)
		for s := range g.opts.Subrounds {
			sub, err := g.subrounds.Create(ctx, userID, round.ID, fmt.Sprintf("Subround %d.%d", r+1, s+1))
			if err != nil {
				return err
			}
			subs = append(subs, sub)
		}
	}
	if len(subs) == 0 {
		return nil
	}

	for i, p := range res.Pairs {
		k := i % len(subs)
		if err := g.rounds.AddPair(ctx, userID, rounds[k/g.opts.Subrounds].ID, p.ID); err != nil {
			return err
		}
		if err := g.subrounds.AddPair(ctx, userID, subs[k].ID, p.ID); err != nil {
			return err
		}
	}

	for _, round := range rounds {
		fresh, err := g.rounds.Get(ctx, userID, round.ID)
		if err != nil {
			return err
		}
		res.Rounds = append(res.Rounds, *fresh)
	}
	for _, sub := range subs {
		fresh, err := g.subrounds.Get(ctx, userID, sub.ID)
		if err != nil {
			return err
		}
		res.Subrounds = append(res.Subrounds, *fresh)
	}
	return nil
}

// uniqueStrings draws n distinct values, qualifying repeats with an adjective.
func (g *Generator) uniqueStrings(n int, draw func() string) []string {
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		v := draw()
		if _, dup := seen[v]; dup {
			v = fmt.Sprintf("%s %s %d", g.faker.Adjective(), v, len(out))
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
