package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ajitpratap0/ecodir/internal/models"
	"github.com/ajitpratap0/ecodir/pkg/tokenizer"
	"github.com/ajitpratap0/ecodir/pkg/xmlutil"
)

const (
	// DefaultMaxTokens bounds assistant and inspector responses.
	DefaultMaxTokens = 1024

	// DefaultContextBudget caps the estimated tokens spent on the directory
	// snapshot in the assistant prompt.
	DefaultContextBudget = 8000

	// assistantTemperature keeps answers close to the supplied directory data.
	assistantTemperature = 0.3
)

// assistantSystemTemplate receives the directory snapshot as JSON inside an
// XML tag. Markup in the snapshot is escaped so entries cannot close the tag.
const assistantSystemTemplate = `You are an expert consultant for the Turkish e-commerce ecosystem.
You have access to a directory of brands, tools and agencies in JSON format:

%s

Your goal is to help users navigate this ecosystem.
- If asked about a brand, mention its tech stack if available.
- If asked about a tool, explain what it does and which brands use it.
- If asked for recommendations (e.g. "find me a Shopify agency"), list relevant entries.
- Only rely on the directory above; say so when it has no answer.
- Keep answers concise, professional and helpful, with a polite, slightly formal but warm tone.
- Format the response in Markdown.`

// inspectPromptTemplate asks for one raw JSON object describing the URL.
const inspectPromptTemplate = `Analyze the website or entity at this URL: %s
The user suggests it might be a %s.

Return a valid JSON object with this structure (raw JSON only, no markdown):
{
  "name": "Entity Name",
  "category": "Brand" | "Tech & Tools" | "Agency",
  "description": "A concise, technical description (max 20 words).",
  "tags": ["Tag1", "Tag2", "Tag3"],
  "logoUrl": "%s",
  "websiteUrl": "<the URL above>",
  "pricingModel": "Free/Paid/Enterprise" (only if Tech & Tools),
  "services": ["Service1", "Service2"] (only if Agency),
  "techStack": [{"name": "ToolName", "category": "Category"}] (only if Brand)
}

If you don't know the tech stack, return an empty array.
Prioritize data relevant to the Turkish e-commerce market if applicable.`

// ClaudeGateway implements Gateway with the Anthropic Messages API.
type ClaudeGateway struct {
	client        *anthropic.Client
	model         string
	maxTokens     int64
	contextBudget int
	logger        *slog.Logger
}

// NewClaudeGateway creates a gateway backed by Claude. Retries are disabled;
// callers may pass extra request options (tests point the base URL at a
// local server).
func NewClaudeGateway(apiKey, model string, maxTokens int64, logger *slog.Logger, opts ...option.RequestOption) *ClaudeGateway {
	if logger == nil {
		logger = slog.Default()
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	all := append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	c := anthropic.NewClient(all...)
	return &ClaudeGateway{
		client:        &c,
		model:         model,
		maxTokens:     maxTokens,
		contextBudget: DefaultContextBudget,
		logger:        logger,
	}
}

// WithContextBudget sets the token budget for the directory snapshot.
func (g *ClaudeGateway) WithContextBudget(budget int) *ClaudeGateway {
	if budget > 0 {
		g.contextBudget = budget
	}
	return g
}

// Configured returns true.
func (g *ClaudeGateway) Configured() bool { return true }

// Ask answers question against snapshot. Failures are logged and mapped to
// one of the fallback messages.
func (g *ClaudeGateway) Ask(ctx context.Context, question string, snapshot []models.EntitySummary) string {
	contextJSON, included, err := encodeSnapshot(snapshot, g.contextBudget)
	if err != nil {
		g.logger.Warn("assistant: encoding directory snapshot", "error", err)
		return FallbackUnavailable
	}
	if included < len(snapshot) {
		g.logger.Debug("assistant: snapshot trimmed to budget", "included", included, "total", len(snapshot))
	}
	system := fmt.Sprintf(assistantSystemTemplate, xmlutil.Wrap("directory", contextJSON))

	text, err := g.complete(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   g.maxTokens,
		Temperature: anthropic.Float(assistantTemperature),
		System:      []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(question)),
		},
	})
	if err != nil {
		g.logger.Warn("assistant: Claude API error, returning fallback", "error", err)
		return FallbackUnavailable
	}
	if strings.TrimSpace(text) == "" {
		g.logger.Warn("assistant: empty response from Claude")
		return FallbackEmpty
	}
	g.logger.Debug("assistant: answered", "question_len", len(question), "answer_len", len(text))
	return text
}

// InspectURL asks Claude for an entity record describing url. Any transport
// error, empty response, non-JSON output or unknown category is returned as
// ErrInspectFailed.
func (g *ClaudeGateway) InspectURL(ctx context.Context, url string, hint *models.Category) (*models.EntityDraft, error) {
	suggestion := "Brand, Tech & Tools, or Agency"
	if hint != nil && hint.IsValid() {
		suggestion = string(*hint)
	}
	prompt := fmt.Sprintf(inspectPromptTemplate, xmlutil.Wrap("url", url), suggestion, models.PlaceholderLogoURL)

	text, err := g.complete(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: "You are a precise company research system. Output only valid JSON."},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: calling Claude API: %w", ErrInspectFailed, err)
	}

	g.logger.Debug("assistant: inspector response", "url", url, "response", text)

	draft, err := ParseDraft(text)
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// encodeSnapshot renders the leading entries of snapshot that fit in budget
// as one JSON array. It returns the array and the number of entries kept.
func encodeSnapshot(snapshot []models.EntitySummary, budget int) (string, int, error) {
	encoded := make([]string, len(snapshot))
	for i := range snapshot {
		b, err := json.Marshal(snapshot[i])
		if err != nil {
			return "", 0, err
		}
		encoded[i] = string(b)
	}
	n := tokenizer.CountWithinBudget(encoded, budget)
	return "[" + strings.Join(encoded[:n], ",") + "]", n, nil
}

// complete sends params and returns the first text block of the reply.
func (g *ClaudeGateway) complete(ctx context.Context, params anthropic.MessageNewParams) (string, error) {
	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}
	for i := range resp.Content {
		if resp.Content[i].Type == "text" {
			return resp.Content[i].Text, nil
		}
	}
	return "", nil
}

// ParseDraft decodes model output into an EntityDraft. Surrounding code
// fences are tolerated; anything else that is not a single JSON object with
// a recognised category is ErrInspectFailed.
func ParseDraft(text string) (*models.EntityDraft, error) {
	raw := bytes.TrimSpace([]byte(stripFences(text)))
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrInspectFailed)
	}
	if raw[0] != '{' {
		return nil, fmt.Errorf("%w: response is not a JSON object (raw: %s)", ErrInspectFailed, text)
	}

	var draft models.EntityDraft
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&draft); err != nil {
		return nil, fmt.Errorf("%w: parsing response: %w (raw: %s)", ErrInspectFailed, err, text)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON object (raw: %s)", ErrInspectFailed, text)
	}
	if draft.Category != "" && !draft.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInspectFailed, draft.Category)
	}
	return &draft, nil
}

// stripFences removes a surrounding ``` or ```json fence if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	s = strings.TrimSpace(s)
	return strings.TrimSuffix(s, "```")
}
