package events

import (
	"context"
	"sync"

	"tokenbank/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeAccountCreated EventType = "account_created"
	EventTypeBalanceChange  EventType = "balance_change"
	EventTypeStakeCreated   EventType = "stake_created"
	EventTypeStakeReleased  EventType = "stake_released"
	EventTypeLoanCreated    EventType = "loan_created"
	EventTypeLoanRepaid     EventType = "loan_repaid"
	EventTypeSnapshotSaved  EventType = "snapshot_saved"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// AccountCreatedEvent represents a new account creation
type AccountCreatedEvent struct {
	UserKey string
}

func (e AccountCreatedEvent) Type() EventType {
	return EventTypeAccountCreated
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserKey         string
	OldBalance      int64
	NewBalance      int64
	TransactionType models.TransactionType
	ChangeAmount    int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// StakeCreatedEvent represents a new staking position
type StakeCreatedEvent struct {
	UserKey string
	Amount  int64
}

func (e StakeCreatedEvent) Type() EventType {
	return EventTypeStakeCreated
}

// StakeReleasedEvent represents an unstake with its compounded payout
type StakeReleasedEvent struct {
	UserKey        string
	ReturnedAmount int64
	Earned         int64
}

func (e StakeReleasedEvent) Type() EventType {
	return EventTypeStakeReleased
}

// LoanCreatedEvent represents a loan disbursal
type LoanCreatedEvent struct {
	UserKey    string
	LoanID     int
	Amount     int64
	Collateral int64
}

func (e LoanCreatedEvent) Type() EventType {
	return EventTypeLoanCreated
}

// LoanRepaidEvent represents a loan repayment
type LoanRepaidEvent struct {
	UserKey        string
	LoanID         int
	TotalRepayment int64
}

func (e LoanRepaidEvent) Type() EventType {
	return EventTypeLoanRepaid
}

// SnapshotSavedEvent represents a snapshot written to durable storage
type SnapshotSavedEvent struct {
	Accounts     int
	Transactions int
}

func (e SnapshotSavedEvent) Type() EventType {
	return EventTypeSnapshotSaved
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make([]Handler, 0)
	}
	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Publish emits an event with a background context. Engine events are
// observational and are published only after an operation has fully committed.
func (b *Bus) Publish(event Event) {
	b.Emit(context.Background(), event)
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	// Call handlers asynchronously to avoid blocking the engine
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}
