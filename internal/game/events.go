package game

import (
	"time"
)

// GameEvent is anything the engine or session tells the presentation layer.
// Every event carries the table as it looked right after the change.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
	Table() Snapshot
}

type eventBase struct {
	table     Snapshot
	timestamp time.Time
}

func (e eventBase) Timestamp() time.Time { return e.timestamp }
func (e eventBase) Table() Snapshot      { return e.table }

// RoundStartEvent is published when a fresh deck is opened for a round
type RoundStartEvent struct {
	eventBase
	Round int
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }

// CardDealtEvent is published each time a card lands in a hand. Card is
// hidden when it is the dealer's hole card.
type CardDealtEvent struct {
	eventBase
	Recipient string
	Role      Role
	Card      CardView
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }

// TurnStartEvent is published when a participant begins drawing. When the
// dealer's turn starts the snapshot shows the hole card for the first time.
type TurnStartEvent struct {
	eventBase
	Participant string
	Role        Role
}

func (e TurnStartEvent) EventType() EventType { return EventTypeTurnStart }

// DecisionEvent is published when a participant hits or stays
type DecisionEvent struct {
	eventBase
	Participant string
	Role        Role
	Decision    Decision
}

func (e DecisionEvent) EventType() EventType { return EventTypeDecision }

// BustEvent is published when a hit takes a hand over 21
type BustEvent struct {
	eventBase
	Participant string
	Role        Role
	Total       int
}

func (e BustEvent) EventType() EventType { return EventTypeBust }

// ShowdownEvent is published when turns end and every card is face up
type ShowdownEvent struct {
	eventBase
}

func (e ShowdownEvent) EventType() EventType { return EventTypeShowdown }

// RoundEndEvent is published once the round is settled and scores updated
type RoundEndEvent struct {
	eventBase
	Outcome Outcome
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }

// IntermissionEvent is published between rounds when nobody has reached
// the win threshold yet.
type IntermissionEvent struct {
	eventBase
	Threshold int
}

func (e IntermissionEvent) EventType() EventType { return EventTypeIntermission }

// GameOverEvent is published when a participant reaches the win threshold
type GameOverEvent struct {
	eventBase
	Winner     string
	WinnerRole Role
	Rounds     int
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }

// ScoresResetEvent is published when a new game starts in the same session
type ScoresResetEvent struct {
	eventBase
}

func (e ScoresResetEvent) EventType() EventType { return EventTypeScoresReset }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to the EventSubscriber interface
type SubscriberFunc func(event GameEvent)

// OnEvent calls f
func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order.
// Publish returns only after every subscriber has handled the event.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. SubscriberFunc
// values cannot be compared and so cannot be unsubscribed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
