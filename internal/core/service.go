package core

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Rorical/flightai/internal/eventbus"
	"github.com/Rorical/flightai/internal/models"
)

// Turns runs one conversation turn
type Turns interface {
	Run(ctx context.Context, history models.History) (*models.TurnResult, error)
}

// HistoryTranslator translates the latest reply for display. It must not fail.
type HistoryTranslator interface {
	TranslateLatest(ctx context.Context, history models.History) string
}

type ServiceOptions struct {
	Turns      Turns             // Nil when the provider is not configured
	Translator HistoryTranslator // Nil disables translation
	Welcome    []string
}

// ChatService owns the conversation state and runs turns for the terminal shell
type ChatService struct {
	turns      Turns
	translator HistoryTranslator
	state      *ChatState
	eventBus   *eventbus.EventBus
	log        logrus.FieldLogger
	ctx        context.Context
	cancel     context.CancelFunc
	background sync.WaitGroup
}

func NewChatService(opts ServiceOptions, eb *eventbus.EventBus, log logrus.FieldLogger) *ChatService {
	ctx, cancel := context.WithCancel(context.Background())

	state := NewChatState()
	for _, line := range opts.Welcome {
		state.AddNotice(line)
	}

	return &ChatService{
		turns:      opts.Turns,
		translator: opts.Translator,
		state:      state,
		eventBus:   eb,
		log:        log.WithField("component", "chat"),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start runs the core logic in a goroutine
func (cs *ChatService) Start() {
	// Send initial state to UI immediately
	cs.pushStateToUI()
	cs.background.Add(1)
	go func() {
		defer cs.background.Done()
		cs.eventLoop()
	}()
}

// Stop cancels in-flight work and waits for the event loop and translations to return
func (cs *ChatService) Stop() {
	cs.cancel()
	cs.background.Wait()
}

func (cs *ChatService) IsReady() bool {
	return cs.turns != nil
}

func (cs *ChatService) State() *ChatState {
	return cs.state
}

func (cs *ChatService) eventLoop() {
	for {
		select {
		case <-cs.ctx.Done():
			return
		case event, ok := <-cs.eventBus.UIToCore():
			if !ok {
				return
			}
			cs.handleUIEvent(event)
		}
	}
}

func (cs *ChatService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SendMessageEvent:
		cs.processMessage(e.Message)
	case eventbus.ClearHistoryEvent:
		cs.state.Clear()
		cs.pushStateToUI()
	}
}

func (cs *ChatService) processMessage(userMessage string) {
	// Atomic update: Set processing and add user message
	history, turn := cs.state.StartProcessingWithUserMessage(userMessage)
	cs.pushStateToUI()

	if cs.turns == nil {
		cs.state.FinishProcessingWithError(turn, ErrProviderUnavailable)
		cs.pushStateToUI()
		return
	}

	result, err := cs.turns.Run(cs.ctx, history)
	if err != nil {
		cs.log.WithError(err).Error("turn failed")
		cs.state.FinishProcessingWithError(turn, err)
		cs.pushStateToUI()
		return
	}

	if !cs.state.FinishTurn(turn, result) {
		return
	}
	cs.pushStateToUI()

	// The reply is committed; translation runs after it, off the event loop
	if cs.translator != nil {
		cs.background.Add(1)
		go func() {
			defer cs.background.Done()
			translated := cs.translator.TranslateLatest(cs.ctx, result.History)
			if cs.ctx.Err() != nil {
				return
			}
			if cs.state.SetTranslation(turn, translated) {
				cs.pushStateToUI()
			}
		}()
	}
}

func (cs *ChatService) pushStateToUI() {
	if err := cs.eventBus.SendToUI(eventbus.StateUpdateEvent{
		Messages:     cs.state.GetHistory(),
		Notices:      cs.state.GetNotices(),
		Image:        cs.state.GetImage(),
		Translation:  cs.state.GetTranslation(),
		IsProcessing: cs.state.IsProcessing(),
		Error:        cs.state.GetLastError(),
	}); err != nil {
		// If we can't send to UI, log the error and continue
		cs.log.WithError(err).Warn("failed to send state to UI")
	}
}
