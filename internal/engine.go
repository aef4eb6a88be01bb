package internal

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// EngineState tracks the request lifecycle
type EngineState int

const (
	StateIdle EngineState = iota
	StateSending
	StateStreaming
)

// String returns a readable name for the state
func (s EngineState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateStreaming:
		return "streaming"
	default:
		return "unknown"
	}
}

// EventSink receives conversation lifecycle events. Partial updates are
// the only place uncommitted state leaves the engine; they are never
// persisted.
type EventSink interface {
	// UserMessageAppended fires after the user message has been committed
	// to history, before the request is sent.
	UserMessageAppended(msg Message)
	// AssistantPartial fires for every decoded fragment with the reply
	// accumulated so far. The id is the ordinal position the assistant
	// message will occupy once finalized.
	AssistantPartial(id int, text string)
	// AssistantFinalized fires once the full reply has been committed.
	AssistantFinalized(msg Message)
	// AuthRequired fires when the credential was rejected and purged.
	AuthRequired()
	// Error fires for any other failed turn with a readable cause.
	Error(message string)
}

// NopSink discards all events
type NopSink struct{}

func (NopSink) UserMessageAppended(Message)  {}
func (NopSink) AssistantPartial(int, string) {}
func (NopSink) AssistantFinalized(Message)   {}
func (NopSink) AuthRequired()                {}
func (NopSink) Error(string)                 {}

// SessionEngine owns one conversation and at most one in-flight request.
// All history and credential mutation happens here, at state transitions.
type SessionEngine struct {
	mu    sync.Mutex
	state EngineState

	history []Message

	creds     *CredentialStore
	store     *HistoryStore
	transport *TransportClient
	sink      EventSink

	systemPrompt string
}

// NewSessionEngine loads the persisted transcript and returns an engine
// ready for submissions. A nil sink discards events.
func NewSessionEngine(creds *CredentialStore, store *HistoryStore, transport *TransportClient, sink EventSink, systemPrompt string) *SessionEngine {
	if sink == nil {
		sink = NopSink{}
	}

	history, err := store.Load()
	if err != nil {
		// Degrade to an empty in-memory transcript; the session still works.
		LogWarn("Failed to load history, starting empty: %v", err)
		history = nil
	}

	return &SessionEngine{
		state:        StateIdle,
		history:      history,
		creds:        creds,
		store:        store,
		transport:    transport,
		sink:         sink,
		systemPrompt: systemPrompt,
	}
}

// State reports the current lifecycle state
func (e *SessionEngine) State() EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// History returns a copy of the transcript
func (e *SessionEngine) History() []Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Message, len(e.history))
	copy(out, e.history)
	return out
}

// Submit sends one user message and streams the assistant reply through
// the sink. It blocks until the turn resolves and the engine is idle
// again. A submission while a request is in flight is rejected, not
// queued.
func (e *SessionEngine) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return &PreconditionError{Err: ErrEmptyMessage}
	}
	if token, err := e.creds.Load(); err != nil || token == "" {
		return &PreconditionError{Err: ErrNoCredential}
	}

	e.mu.Lock()
	if e.state != StateIdle {
		e.mu.Unlock()
		return &PreconditionError{Err: ErrBusy}
	}
	e.state = StateSending
	e.mu.Unlock()
	defer e.setState(StateIdle)

	// Commit the user message before the network call so typed input
	// survives a failed request. The transcript may end on an unanswered
	// user turn as a result.
	user := Message{Role: RoleUser, Content: text}
	e.appendMessage(user)
	e.persist()
	e.sink.UserMessageAppended(user)

	body, err := e.transport.Send(ctx, e.outbound())
	if err != nil {
		return e.fail(err)
	}
	defer body.Close()

	e.setState(StateStreaming)

	// Ordinal position the assistant message will occupy.
	placeholderID := len(e.History())

	decoder := NewStreamDecoder()
	buf := make([]byte, 4096)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			for _, frag := range decoder.Consume(string(buf[:n])) {
				e.sink.AssistantPartial(placeholderID, frag.Text)
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return e.fail(&TransportError{Op: "read", Err: readErr})
		}
	}

	final := decoder.Finalize()
	if dropped := decoder.Dropped(); dropped > 0 {
		LogDebug("Stream finished with %d malformed line(s) dropped", dropped)
	}

	assistant := Message{Role: RoleAssistant, Content: final}
	e.appendMessage(assistant)
	e.persist()
	e.sink.AssistantFinalized(assistant)
	return nil
}

// ClearHistory resets the transcript, in memory and in the store
func (e *SessionEngine) ClearHistory() error {
	e.mu.Lock()
	e.history = nil
	e.mu.Unlock()
	return e.store.Clear()
}

func (e *SessionEngine) setState(state EngineState) {
	e.mu.Lock()
	e.state = state
	e.mu.Unlock()
}

func (e *SessionEngine) appendMessage(msg Message) {
	e.mu.Lock()
	e.history = append(e.history, msg)
	e.mu.Unlock()
}

// outbound builds the message sequence submitted to the transport. The
// system prompt, when configured, precedes the transcript but is never
// part of the persisted history.
func (e *SessionEngine) outbound() []Message {
	history := e.History()
	if e.systemPrompt == "" {
		return history
	}
	out := make([]Message, 0, len(history)+1)
	out = append(out, Message{Role: RoleSystem, Content: e.systemPrompt})
	return append(out, history...)
}

// persist writes the transcript through to the store. Persistence
// failures degrade to a warning; the session continues on in-memory
// state.
func (e *SessionEngine) persist() {
	if err := e.store.Save(e.History()); err != nil {
		LogWarn("Failed to persist history: %v", err)
	}
}

// fail classifies a failed turn. An authorization failure purges the
// credential and raises the re-authentication signal; anything else
// surfaces as a generic error. The in-progress assistant placeholder is
// discarded either way: nothing was appended to history, so the
// transcript is exactly as it was after the user message committed.
func (e *SessionEngine) fail(err error) error {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		if clearErr := e.creds.Clear(); clearErr != nil {
			LogWarn("Failed to clear rejected credential: %v", clearErr)
		}
		e.sink.AuthRequired()
		return err
	}
	e.sink.Error(err.Error())
	return err
}
