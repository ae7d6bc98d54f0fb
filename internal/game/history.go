package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lox/twentyone/internal/fileutil"
)

// HistoryWriter stores the transcript of a finished round
type HistoryWriter interface {
	WriteRoundHistory(roundID string, content string) error
}

// FileHistoryWriter writes one transcript file per round
type FileHistoryWriter struct {
	directory string
}

// NewFileHistoryWriter creates a new file-based round history writer
func NewFileHistoryWriter(directory string) *FileHistoryWriter {
	return &FileHistoryWriter{directory: directory}
}

// WriteRoundHistory writes the transcript to <directory>/round_<id>.txt
func (w *FileHistoryWriter) WriteRoundHistory(roundID string, content string) error {
	if err := os.MkdirAll(w.directory, 0755); err != nil {
		return fmt.Errorf("failed to create round history directory: %w", err)
	}

	filename := filepath.Join(w.directory, fmt.Sprintf("round_%s.txt", roundID))
	if err := fileutil.WriteFileAtomic(filename, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write round history file: %w", err)
	}
	return nil
}

// RoundHistory collects a transcript of each round from the event bus and
// hands it to a writer when the round ends. Write errors are kept, not
// returned, since subscribers cannot fail a round.
type RoundHistory struct {
	writer    HistoryWriter
	formatter *EventFormatter

	roundID string
	start   time.Time
	lines   []string
	errs    []error
}

// NewRoundHistory creates a history subscriber writing through writer
func NewRoundHistory(writer HistoryWriter) *RoundHistory {
	return &RoundHistory{
		writer:    writer,
		formatter: NewEventFormatter(FormattingOptions{ShowDecisions: true}),
	}
}

// OnEvent implements EventSubscriber
func (rh *RoundHistory) OnEvent(event GameEvent) {
	switch e := event.(type) {
	case RoundStartEvent:
		rh.roundID = e.Table().RoundID
		rh.start = e.Timestamp()
		rh.lines = rh.lines[:0]
		rh.lines = append(rh.lines,
			fmt.Sprintf("=== ROUND %d (%s) ===", e.Round, rh.roundID),
			fmt.Sprintf("Date: %s", rh.start.Format("2006-01-02 15:04:05")),
		)
		for _, p := range e.Table().Participants {
			rh.lines = append(rh.lines, fmt.Sprintf("%s (%s): %d wins", p.Name, p.Role, p.Score))
		}
		rh.lines = append(rh.lines, "")
	case ShowdownEvent:
		rh.lines = append(rh.lines, "", "*** SHOWDOWN ***", rh.formatter.Format(e))
	case RoundEndEvent:
		rh.lines = append(rh.lines, "", rh.formatter.Format(e))
		if err := rh.writer.WriteRoundHistory(rh.roundID, rh.Text()); err != nil {
			rh.errs = append(rh.errs, err)
		}
	case CardDealtEvent, TurnStartEvent, DecisionEvent, BustEvent:
		if rh.roundID == "" {
			return
		}
		rh.lines = append(rh.lines, rh.formatter.Format(e))
	}
}

// Text returns the transcript of the current or last round
func (rh *RoundHistory) Text() string {
	return strings.Join(rh.lines, "\n") + "\n"
}

// Errors returns every write error seen so far
func (rh *RoundHistory) Errors() []error {
	return rh.errs
}
