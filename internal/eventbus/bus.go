package eventbus

import (
	"errors"
	"sync"
	"time"

	"github.com/Rorical/flightai/internal/models"
)

var (
	ErrCircuitOpen = errors.New("circuit breaker is open")
	ErrChannelFull = errors.New("channel is full")
	ErrClosed      = errors.New("event bus is closed")
)

// UIEvent is sent from the terminal shell to the chat service
type UIEvent interface {
	UIEvent()
}

// CoreEvent is sent from the chat service to the terminal shell
type CoreEvent interface {
	CoreEvent()
}

// SendMessageEvent asks the service to run a turn for Message
type SendMessageEvent struct {
	Message string
}

func (SendMessageEvent) UIEvent() {}

// ClearHistoryEvent asks the service to reset the conversation
type ClearHistoryEvent struct{}

func (ClearHistoryEvent) UIEvent() {}

// StateUpdateEvent is a full snapshot of the conversation as the shell should draw it
type StateUpdateEvent struct {
	Messages     models.History
	Notices      []string
	Image        *models.ImageAsset
	Translation  string
	IsProcessing bool
	Error        error
}

func (StateUpdateEvent) CoreEvent() {}

// EventBusError describes a failed send
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

func (e EventBusError) Unwrap() error {
	return e.Err
}

// EventBus carries events between the shell and the service over buffered channels.
// Sends never block: a full channel or an open breaker fails the send.
type EventBus struct {
	mu             sync.RWMutex
	closed         bool
	uiToCore       chan UIEvent
	coreToUI       chan CoreEvent
	errorCallback  func(EventBusError)
	circuitBreaker *CircuitBreaker
}

func NewEventBus() *EventBus {
	return &EventBus{
		uiToCore:       make(chan UIEvent, 100),
		coreToUI:       make(chan CoreEvent, 100),
		circuitBreaker: NewCircuitBreaker(5, 30*time.Second),
	}
}

// SetErrorCallback must be called before the bus is used
func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.errorCallback = callback
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	return send(eb, "SendToCore", eb.uiToCore, event)
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	return send(eb, "SendToUI", eb.coreToUI, event)
}

func send[E any](eb *EventBus, operation string, ch chan E, event E) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return ErrClosed
	}
	if eb.circuitBreaker.IsOpen() {
		return eb.fail(operation, ErrCircuitOpen)
	}

	select {
	case ch <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		return eb.fail(operation, ErrChannelFull)
	}
}

func (eb *EventBus) fail(operation string, err error) error {
	eb.circuitBreaker.RecordFailure()
	if eb.errorCallback != nil {
		eb.errorCallback(EventBusError{
			Operation: operation,
			Err:       err,
			Timestamp: time.Now(),
		})
	}
	return err
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

func (eb *EventBus) GetCircuitBreakerState() CircuitBreakerState {
	return eb.circuitBreaker.State()
}

// Close closes both channels. Later sends return ErrClosed.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return
	}
	eb.closed = true
	close(eb.uiToCore)
	close(eb.coreToUI)
}
