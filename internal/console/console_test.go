package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/twentyone/internal/catalog"
	"github.com/lox/twentyone/internal/deck"
	"github.com/lox/twentyone/internal/game"
)

// syncBuffer lets a test read output while another goroutine writes it
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func printer(t *testing.T, locale string) *catalog.Printer {
	t.Helper()
	bundle, err := catalog.LoadEmbedded()
	require.NoError(t, err)
	return bundle.Printer(locale)
}

func newTestConsole(t *testing.T, input string) (*Console, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	return New(strings.NewReader(input), out, printer(t, "en-US"), Options{Theme: "plain"}), out
}

// playSession runs a session where every round is dealt from cards
func playSession(t *testing.T, con *Console, threshold int, cards string) error {
	t.Helper()
	bus := game.NewEventBus()
	bus.Subscribe(con)

	table := game.NewTable(game.NewPlayer("Alice", con), game.NewDealer("Harpo"))
	newShoe := func() game.Shoe {
		return deck.MustStack(deck.MustParseCards(cards)...)
	}
	session := game.NewSession(table, newShoe, con,
		game.WithWinThreshold(threshold),
		game.WithSessionEventBus(bus))
	return session.Run(context.Background())
}

func TestConsolePlaysAGame(t *testing.T) {
	con, out := newTestConsole(t, "x\ns\nn\n")

	// Alice stays on 17, Harpo draws a 5 to 20
	require.NoError(t, playSession(t, con, 1, "Th9c7s6d5h"))
	text := out.String()

	assert.Contains(t, text, " Round 1 ")
	assert.Equal(t, 2, strings.Count(text, "=> Dealing to Alice..."))
	assert.Equal(t, 2, strings.Count(text, "=> Dealing to Dealer: Harpo..."), "hole card is not announced")
	assert.Contains(t, text, "=> 10 of hearts")
	assert.NotContains(t, text, "6 of diamonds", "hole card is never spelled out")

	assert.Contains(t, text, "Total: hidden card", "hole card masked on the player's turn")
	assert.Contains(t, text, "Hand: 9♣, 6♦, 5♥")
	assert.Contains(t, text, "Please type h to hit or s to stay.")
	assert.Contains(t, text, "=> Alice stays")
	assert.Contains(t, text, "=> Dealer: Harpo hits")
	assert.Contains(t, text, "=> Dealer: Harpo wins the round with 20.")
	assert.Contains(t, text, "Dealer: Harpo (score: 1)")
	assert.Contains(t, text, "=> Dealer: Harpo wins the game after 1 rounds!")

	assert.Contains(t, text, strings.Repeat("-", ScreenWidth)+"\n")
	assert.Contains(t, text, strings.Repeat("=", ScreenWidth)+"\n")
}

func TestConsoleRedrawsAfterHit(t *testing.T) {
	con, out := newTestConsole(t, "h\ns\nn\n")

	// Alice hits 11 to 14 and stays; Harpo plays on from 16
	require.NoError(t, playSession(t, con, 1, "5h9c6s7d3c"))
	text := out.String()

	const question = "Hit or stay? (h/s)"
	first := strings.Index(text, question)
	require.GreaterOrEqual(t, first, 0)
	second := strings.Index(text[first+len(question):], question)
	require.GreaterOrEqual(t, second, 0, "asked twice")

	between := text[first : first+len(question)+second]
	assert.Contains(t, between, "=> 3 of clubs")
	assert.Contains(t, between, "Hand: 5♥, 6♠, 3♣")
	assert.Contains(t, between, "Total: 14")
	assert.Contains(t, between, "Total: hidden card", "hole card still masked")
}

func TestConsoleWaitsBetweenRounds(t *testing.T) {
	con, out := newTestConsole(t, "s\n\ns\nn\n")

	require.NoError(t, playSession(t, con, 2, "Th9c7s6d5h"))
	text := out.String()

	assert.Equal(t, 1, strings.Count(text, "Press Enter to continue..."))
	assert.Contains(t, text, " Round 2 ")
	assert.Contains(t, text, "Dealer: Harpo (score: 2)")
}

func TestConsoleBustAndTie(t *testing.T) {
	t.Run("player busts", func(t *testing.T) {
		con, out := newTestConsole(t, "h\nn\n")
		require.NoError(t, playSession(t, con, 1, "Th9cQs7dKh"))
		assert.Contains(t, out.String(), "=> Alice busts with 30!")
		assert.Contains(t, out.String(), "Alice busted, Dealer: Harpo wins the round.")
	})

	t.Run("tie needs a second round", func(t *testing.T) {
		con, out := newTestConsole(t, "s\n\ns\nn\n")
		// 19 against 19 scores nothing; the session plays on and the
		// next round repeats until input runs out
		err := playSession(t, con, 1, "Th9c9sTd")
		assert.ErrorIs(t, err, game.ErrQuit)
		assert.Contains(t, out.String(), "It's a tie at 19.")
	})
}

func TestConsoleQuit(t *testing.T) {
	t.Run("q quits", func(t *testing.T) {
		con, _ := newTestConsole(t, "q\n")
		err := playSession(t, con, 1, "Th9c7s6d5h")
		assert.ErrorIs(t, err, game.ErrQuit)
		assert.ErrorIs(t, con.Err(), game.ErrQuit)
	})

	t.Run("end of input quits", func(t *testing.T) {
		con, _ := newTestConsole(t, "")
		err := playSession(t, con, 1, "Th9c7s6d5h")
		assert.ErrorIs(t, err, game.ErrQuit)
	})

	t.Run("cancelled context", func(t *testing.T) {
		con, _ := newTestConsole(t, "")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := con.Decide(ctx, game.TurnState{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCloseReleasesReader(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	con := New(r, &syncBuffer{}, printer(t, "en-US"), Options{Theme: "plain"})
	con.started = true

	finished := make(chan struct{})
	go func() {
		con.scan()
		close(finished)
	}()

	// nobody asks for the line, so the reader waits to hand it over
	_, err := w.Write([]byte("h\n"))
	require.NoError(t, err)

	require.NoError(t, con.Close())
	require.NoError(t, con.Close(), "closing twice is fine")
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("reader stayed blocked after Close")
	}

	_, err = con.Decide(context.Background(), game.TurnState{})
	assert.ErrorIs(t, err, game.ErrQuit)
}

func TestAskName(t *testing.T) {
	con, out := newTestConsole(t, "R2D2\n\n  Alice  \n")

	name, err := con.AskName(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
	assert.Contains(t, out.String(), "What's your name?")
	assert.Equal(t, 2, strings.Count(out.String(), "Please enter a name using letters only."))
}

func TestWelcome(t *testing.T) {
	t.Run("rules on request", func(t *testing.T) {
		con, out := newTestConsole(t, "r\n\n")
		require.NoError(t, con.Welcome(context.Background(), 3))
		assert.Contains(t, out.String(), "The first to win 3 rounds wins the game.")
	})

	t.Run("straight to play", func(t *testing.T) {
		con, out := newTestConsole(t, "\n")
		require.NoError(t, con.Welcome(context.Background(), 3))
		assert.NotContains(t, out.String(), "first to win")
	})
}

func TestPlayAgain(t *testing.T) {
	con, out := newTestConsole(t, "maybe\nY\n")
	again, err := con.PlayAgain(context.Background(), game.GameResult{Winner: "Alice"})
	require.NoError(t, err)
	assert.True(t, again)
	assert.Contains(t, out.String(), "Please type y or n.")
}

func TestLocalisedConsole(t *testing.T) {
	out := &syncBuffer{}
	con := New(strings.NewReader("s\nn\n"), out, printer(t, "es-ES"), Options{Theme: "plain"})

	require.NoError(t, playSession(t, con, 1, "Th9c7s6d5h"))
	assert.Contains(t, out.String(), "Repartiendo a Banca: Harpo...")
	assert.Contains(t, out.String(), "10 de corazones")
	assert.Contains(t, out.String(), "Banca: Harpo gana la ronda con 20.")
}

func TestDealDelay(t *testing.T) {
	mClock := quartz.NewMock(t)
	out := &syncBuffer{}
	delay := 500 * time.Millisecond
	con := New(strings.NewReader(""), out, printer(t, "en-US"), Options{
		Theme:     "plain",
		DealDelay: delay,
		Clock:     mClock,
	})

	card := deck.MustParseCards("Ks")[0]
	done := make(chan struct{})
	go func() {
		con.OnEvent(game.CardDealtEvent{Recipient: "Alice", Role: game.RolePlayer, Card: game.CardView{Card: card}})
		close(done)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "King of spades")
	}, time.Second, time.Millisecond)

	select {
	case <-done:
		t.Fatal("card announced without waiting for the deal delay")
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mClock.Advance(delay).MustWait(ctx)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("deal delay never elapsed")
	}
}

func TestHiddenCardIsSilent(t *testing.T) {
	con, out := newTestConsole(t, "")
	con.OnEvent(game.CardDealtEvent{Recipient: "Harpo", Role: game.RoleDealer, Card: game.CardView{Hidden: true}})
	assert.Empty(t, out.String())
}
