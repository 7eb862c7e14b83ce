package core

import (
	"sync"

	"github.com/Rorical/flightai/internal/models"
)

// ChatState is the presentation-side conversation state: the History plus the
// outputs rendered next to it.
type ChatState struct {
	mu           sync.RWMutex
	history      models.History // Single source of truth for conversation
	notices      []string       // Program messages (welcome, hints)
	image        *models.ImageAsset
	translation  string
	isProcessing bool
	lastError    error
	turn         uint64 // Bumped on every new turn and on clear
}

func NewChatState() *ChatState {
	return &ChatState{
		history: make(models.History, 0),
		notices: make([]string, 0),
	}
}

func (cs *ChatState) GetHistory() models.History {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.history.Append()
}

func (cs *ChatState) GetNotices() []string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return append([]string(nil), cs.notices...)
}

func (cs *ChatState) GetImage() *models.ImageAsset {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.image
}

func (cs *ChatState) GetTranslation() string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.translation
}

func (cs *ChatState) IsProcessing() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.isProcessing
}

func (cs *ChatState) GetLastError() error {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.lastError
}

// AddNotice adds a program message (system notifications)
func (cs *ChatState) AddNotice(content string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.notices = append(cs.notices, content)
}

// StartProcessingWithUserMessage atomically marks a turn as running, appends the user
// message, and returns the history to send plus the turn number.
func (cs *ChatState) StartProcessingWithUserMessage(content string) (models.History, uint64) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.isProcessing = true
	cs.lastError = nil
	cs.turn++
	cs.history = cs.history.Append(models.UserMessage(content))
	return cs.history.Append(), cs.turn
}

// FinishTurn commits a completed turn. Results of a turn superseded by Clear are dropped.
func (cs *ChatState) FinishTurn(turn uint64, result *models.TurnResult) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if turn != cs.turn {
		return false
	}
	cs.isProcessing = false
	cs.lastError = nil
	cs.history = result.History.Append()
	cs.image = result.Image
	cs.translation = ""
	return true
}

func (cs *ChatState) FinishProcessingWithError(turn uint64, err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if turn != cs.turn {
		return
	}
	cs.isProcessing = false
	cs.lastError = err
}

// SetTranslation stores the translation for turn, ignoring stale results
func (cs *ChatState) SetTranslation(turn uint64, text string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if turn != cs.turn {
		return false
	}
	cs.translation = text
	return true
}

// Clear resets the conversation, keeping program messages
func (cs *ChatState) Clear() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.turn++
	cs.history = make(models.History, 0)
	cs.image = nil
	cs.translation = ""
	cs.isProcessing = false
	cs.lastError = nil
}
