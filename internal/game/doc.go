// Package game implements the round engine for twenty-one: a player
// against an automated dealer, played over repeated rounds until one side
// reaches a score threshold.
//
// The main types are Engine, which plays a single round, and Session, which
// repeats rounds and keeps score.
//
// # Basic Usage
//
// Seat the two participants and play one round from a fresh deck:
//
//	table := game.NewTable(
//	    game.NewPlayer("Alice", provider),
//	    game.NewDealer("Harpo"),
//	)
//	engine := game.NewEngine(table)
//	outcome, err := engine.PlayRound(ctx, deck.New(rng))
//
// Or let a Session run rounds until someone reaches the win threshold:
//
//	s := game.NewSession(table, func() game.Shoe { return deck.New(rng) }, again,
//	    game.WithWinThreshold(5))
//	err := s.Run(ctx)
//
// # Deterministic Testing
//
// Any Shoe works as the card source. deck.NewStacked fixes the first cards
// dealt, and deck.New with a seeded rng from internal/randutil replays a
// whole session.
//
// # Architecture
//
//   - Hand: the cards one participant holds and their resolved total
//   - Policy: how a participant decides between hit and stay
//   - Engine: Dealing -> PlayerTurns -> Showdown -> Settled for one round
//   - EventBus: carries a Snapshot of the table to renderers after each change
//
// The engine never renders anything and never reads input itself. Both go
// through DecisionProvider and EventSubscriber implementations supplied by
// the caller.
package game
