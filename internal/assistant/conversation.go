package assistant

import (
	"context"
	"sync"

	"github.com/ajitpratap0/ecodir/internal/models"
)

// Greeting opens every conversation transcript.
const Greeting = "SYSTEM READY. I am the ecosystem assistant. Ask me about brands, tools and agencies."

// Ticket identifies one issued question. Tickets increase monotonically.
type Ticket uint64

// Conversation is a chat transcript with last-issued-wins completion: an
// answer is recorded only if no newer question was issued after it. Safe
// for concurrent use.
type Conversation struct {
	mu       sync.Mutex
	messages []models.ChatMessage
	latest   Ticket
}

// NewConversation returns a transcript holding the greeting.
func NewConversation() *Conversation {
	return &Conversation{
		messages: []models.ChatMessage{{Role: models.RoleModel, Text: Greeting}},
	}
}

// Begin records the user's question and returns its ticket.
func (c *Conversation) Begin(question string) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest++
	c.messages = append(c.messages, models.ChatMessage{Role: models.RoleUser, Text: question})
	return c.latest
}

// Complete records answer for ticket t. It returns false and drops the
// answer when a newer question has been issued since t.
func (c *Conversation) Complete(t Ticket, answer string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t != c.latest {
		return false
	}
	c.messages = append(c.messages, models.ChatMessage{Role: models.RoleModel, Text: answer})
	return true
}

// Ask issues question through gw and records the answer if it is still the
// latest. The answer is returned either way.
func (c *Conversation) Ask(ctx context.Context, gw Gateway, question string, snapshot []models.EntitySummary) (string, bool) {
	t := c.Begin(question)
	answer := gw.Ask(ctx, question, snapshot)
	return answer, c.Complete(t, answer)
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}
