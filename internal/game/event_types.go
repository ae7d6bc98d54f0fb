package game

// EventType represents a game event type with type safety
type EventType string

// EventType constants for round and session events
const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypeCardDealt    EventType = "card_dealt"
	EventTypeTurnStart    EventType = "turn_start"
	EventTypeDecision     EventType = "decision"
	EventTypeBust         EventType = "bust"
	EventTypeShowdown     EventType = "showdown"
	EventTypeRoundEnd     EventType = "round_end"
	EventTypeIntermission EventType = "intermission"
	EventTypeGameOver     EventType = "game_over"
	EventTypeScoresReset  EventType = "scores_reset"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}
