package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/ecodir/internal/models"
)

// echoGateway answers with the question itself.
type echoGateway struct{ Unconfigured }

func (echoGateway) Ask(_ context.Context, question string, _ []models.EntitySummary) string {
	return "echo: " + question
}

func TestConversationStartsWithGreeting(t *testing.T) {
	c := NewConversation()
	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, models.RoleModel, msgs[0].Role)
	assert.Equal(t, Greeting, msgs[0].Text)
}

func TestConversationAsk(t *testing.T) {
	c := NewConversation()
	answer, recorded := c.Ask(context.Background(), echoGateway{}, "hello", nil)
	assert.Equal(t, "echo: hello", answer)
	assert.True(t, recorded)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, models.ChatMessage{Role: models.RoleUser, Text: "hello"}, msgs[1])
	assert.Equal(t, models.ChatMessage{Role: models.RoleModel, Text: "echo: hello"}, msgs[2])
}

func TestConversationStaleAnswerIsDropped(t *testing.T) {
	c := NewConversation()
	first := c.Begin("first question")
	second := c.Begin("second question")
	assert.Greater(t, second, first)

	// The answer to the first question arrives after the second was issued.
	assert.False(t, c.Complete(first, "stale answer"))
	assert.True(t, c.Complete(second, "fresh answer"))

	msgs := c.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, "fresh answer", msgs[3].Text)
	for _, m := range msgs {
		assert.NotEqual(t, "stale answer", m.Text)
	}
}

func TestConversationMessagesIsCopy(t *testing.T) {
	c := NewConversation()
	msgs := c.Messages()
	msgs[0].Text = "mutated"
	assert.Equal(t, Greeting, c.Messages()[0].Text)
}

func TestConversationWithUnconfiguredGateway(t *testing.T) {
	c := NewConversation()
	answer, recorded := c.Ask(context.Background(), Unconfigured{}, "hi", nil)
	assert.True(t, recorded)
	assert.Equal(t, FallbackUnconfigured, answer)
}
