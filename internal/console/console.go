// Package console is the line-oriented front end: it draws the table as
// events arrive and reads the player's answers one line at a time.
//
// A Console is a game.EventSubscriber, a game.DecisionProvider and a
// game.ContinuationProvider, so one value serves every collaborator a
// session needs.
package console

import (
	"bufio"
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/lox/twentyone/internal/catalog"
	"github.com/lox/twentyone/internal/display"
	"github.com/lox/twentyone/internal/game"
)

// ScreenWidth is the width of the dividers drawn between seats
const ScreenWidth = 80

const (
	playerDivider = '-'
	tableDivider  = '='
)

// Options configures a Console
type Options struct {
	Theme       string        // auto, dark, light or plain
	DealDelay   time.Duration // pause after each card is announced
	ClearScreen bool          // clear the terminal before redrawing the table
	Clock       quartz.Clock
	Logger      *log.Logger
}

// Console talks to one person over a reader and a writer
type Console struct {
	in      io.Reader
	out     io.Writer
	term    *termenv.Output
	text    *display.Text
	styles  Styles
	opts    Options
	clock   quartz.Clock
	logger  *log.Logger
	ctx     context.Context
	lines   chan line
	done    chan struct{}
	closing sync.Once
	started bool
	err     error // sticky: once input is gone every prompt fails
}

type line struct {
	text string
	err  error
}

// New creates a console reading from in and drawing to out
func New(in io.Reader, out io.Writer, msgs *catalog.Printer, opts Options) *Console {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Console{
		in:     in,
		out:    out,
		term:   termenv.NewOutput(out),
		text:   display.NewText(msgs),
		styles: NewStyles(NewRenderer(out, opts.Theme)),
		opts:   opts,
		clock:  opts.Clock,
		logger: opts.Logger.WithPrefix("console"),
		ctx:    context.Background(),
		lines:  make(chan line),
		done:   make(chan struct{}),
	}
}

// Bind sets the context used for waits triggered by events, which carry no
// context of their own. It should be the session's context.
func (c *Console) Bind(ctx context.Context) {
	c.ctx = ctx
}

// Err returns the error that ended input, if any
func (c *Console) Err() error {
	return c.err
}

// Close releases the input reader. Every later prompt fails with
// game.ErrQuit. It does not close the underlying reader.
func (c *Console) Close() error {
	c.closing.Do(func() { close(c.done) })
	return nil
}

// readLine returns the next input line. Reads happen on a goroutine so a
// cancelled ctx unblocks the caller even while the reader is stuck.
func (c *Console) readLine(ctx context.Context) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !c.started {
		c.started = true
		go c.scan()
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-c.done:
		c.err = game.ErrQuit
		return "", c.err
	case l := <-c.lines:
		if l.err != nil {
			c.err = l.err
			return "", l.err
		}
		return l.text, nil
	}
}

// scan feeds lines to readLine until input ends or the console is closed.
// A read already blocked in c.in is only released when c.in returns.
func (c *Console) scan() {
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		if !c.send(line{text: scanner.Text()}) {
			return
		}
	}
	err := scanner.Err()
	if err == nil {
		err = game.ErrQuit
	}
	c.send(line{err: err})
}

func (c *Console) send(l line) bool {
	select {
	case c.lines <- l:
		return true
	case <-c.done:
		return false
	}
}
