// Package signals republishes the host's synchronous callbacks as a fixed
// set of subscribable events. Each underlying host callback produces at most
// one handler invocation; dispatch is synchronous and, for the replacement
// check, the handler's return value is forwarded back to the host.
package signals

import (
	"github.com/sasha-s/go-deadlock"
)

// CommandEvent is generic command input from a player or the console.
type CommandEvent struct {
	Actor string
	Text  string
}

// ReplacementEvent asks whether Candidate may replace Actor's controller.
type ReplacementEvent struct {
	Actor     string
	Candidate string
}

// LoginEvent carries a login request; the handler may rewrite Portal and
// Options before the host consumes them.
type LoginEvent struct {
	Portal  string
	Options string
}

// Bus holds one handler slot per event kind. Handlers are installed once at
// startup; installing a second handler for a kind replaces the first, which
// the Handle methods report so the caller can log it.
type Bus struct {
	mutex deadlock.Mutex

	command     func(CommandEvent)
	replacement func(ReplacementEvent) bool
	login       func(*LoginEvent)
}

func New() *Bus {
	return &Bus{}
}

// HandleCommand installs the command handler. Returns false when an earlier
// handler was replaced.
func (b *Bus) HandleCommand(handler func(CommandEvent)) bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	first := b.command == nil
	b.command = handler
	return first
}

func (b *Bus) DispatchCommand(event CommandEvent) {
	b.mutex.Lock()
	handler := b.command
	b.mutex.Unlock()

	if handler != nil {
		handler(event)
	}
}

// HandleReplacement installs the replacement-check handler. Returns false
// when an earlier handler was replaced.
func (b *Bus) HandleReplacement(handler func(ReplacementEvent) bool) bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	first := b.replacement == nil
	b.replacement = handler
	return first
}

// DispatchReplacement forwards the handler's verdict to the host. With no
// handler installed the replacement is allowed.
func (b *Bus) DispatchReplacement(event ReplacementEvent) bool {
	b.mutex.Lock()
	handler := b.replacement
	b.mutex.Unlock()

	if handler == nil {
		return true
	}
	return handler(event)
}

// HandleLogin installs the login-modification handler. Returns false when an
// earlier handler was replaced.
func (b *Bus) HandleLogin(handler func(*LoginEvent)) bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	first := b.login == nil
	b.login = handler
	return first
}

func (b *Bus) DispatchLogin(event *LoginEvent) {
	b.mutex.Lock()
	handler := b.login
	b.mutex.Unlock()

	if handler != nil {
		handler(event)
	}
}
