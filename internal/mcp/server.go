// Package mcp implements the Model Context Protocol server for ecodir.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ajitpratap0/ecodir/internal/assistant"
	"github.com/ajitpratap0/ecodir/internal/metrics"
	"github.com/ajitpratap0/ecodir/internal/models"
	"github.com/ajitpratap0/ecodir/internal/moderation"
	"github.com/ajitpratap0/ecodir/internal/query"
	"github.com/ajitpratap0/ecodir/internal/relations"
	"github.com/ajitpratap0/ecodir/internal/store"
)

// Server wraps an MCPServer with ecodir dependencies.
type Server struct {
	mcp          *mcpserver.MCPServer
	st           store.Store
	workflow     *moderation.Workflow
	gw           assistant.Gateway
	logger       *slog.Logger
	similarLimit int
}

// NewServer creates a new MCP server. A nil gateway behaves like an
// unconfigured one.
func NewServer(st store.Store, wf *moderation.Workflow, gw assistant.Gateway, logger *slog.Logger, similarLimit int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if gw == nil {
		gw = assistant.Unconfigured{}
	}
	if similarLimit <= 0 {
		similarLimit = relations.DefaultSimilarLimit
	}
	s := &Server{
		st:           st,
		workflow:     wf,
		gw:           gw,
		logger:       logger,
		similarLimit: similarLimit,
	}

	mcpSrv := mcpserver.NewMCPServer(
		"ecodir",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildListTool(), s.handleList)
	mcpSrv.AddTool(buildGetTool(), s.handleGet)
	mcpSrv.AddTool(buildSimilarTool(), s.handleSimilar)
	mcpSrv.AddTool(buildSubmitTool(), s.handleSubmit)
	mcpSrv.AddTool(buildAskTool(), s.handleAsk)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// HandleList is the exported handler for the "list_entities" tool.
// It is exposed for direct testing without the mcp-go transport layer.
func (s *Server) HandleList(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleList(ctx, req)
}

// HandleGet is the exported handler for the "get_entity" tool.
func (s *Server) HandleGet(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleGet(ctx, req)
}

// HandleSimilar is the exported handler for the "similar_entities" tool.
func (s *Server) HandleSimilar(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleSimilar(ctx, req)
}

// HandleSubmit is the exported handler for the "submit_entity" tool.
func (s *Server) HandleSubmit(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleSubmit(ctx, req)
}

// HandleAsk is the exported handler for the "ask_assistant" tool.
func (s *Server) HandleAsk(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleAsk(ctx, req)
}

// --- helpers ---

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

// splitTags turns "a, b,,c" into [a b c].
func splitTags(raw string) []string {
	out := make([]string, 0)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// --- tool definitions ---

func buildListTool() mcpgo.Tool {
	return mcpgo.NewTool("list_entities",
		mcpgo.WithDescription("List directory entities matching a category, a text query and a tag. Returns the matches and the tags available for further narrowing."),
		mcpgo.WithString("category",
			mcpgo.Description("Category: All, Brand, Tech & Tools, or Agency (default: All)"),
		),
		mcpgo.WithString("query",
			mcpgo.Description("Case-insensitive text matched against name and description"),
		),
		mcpgo.WithString("tag",
			mcpgo.Description("Exact tag to require"),
		),
	)
}

func buildGetTool() mcpgo.Tool {
	return mcpgo.NewTool("get_entity",
		mcpgo.WithDescription("Get an entity with its relationships: brands using a tool, a brand's resolved tech stack, and similar entities."),
		mcpgo.WithString("id",
			mcpgo.Required(),
			mcpgo.Description("The entity ID"),
		),
	)
}

func buildSimilarTool() mcpgo.Tool {
	return mcpgo.NewTool("similar_entities",
		mcpgo.WithDescription("Rank entities in the same category by number of shared tags."),
		mcpgo.WithString("id",
			mcpgo.Required(),
			mcpgo.Description("The entity ID"),
		),
		mcpgo.WithNumber("limit",
			mcpgo.Description("Maximum number of results (default: 4)"),
		),
	)
}

func buildSubmitTool() mcpgo.Tool {
	return mcpgo.NewTool("submit_entity",
		mcpgo.WithDescription("Propose a new directory entry. It is queued for moderation, not listed immediately."),
		mcpgo.WithString("name",
			mcpgo.Required(),
			mcpgo.Description("Entity name"),
		),
		mcpgo.WithString("category",
			mcpgo.Description("Brand, Tech & Tools, or Agency (default: Brand)"),
		),
		mcpgo.WithString("description",
			mcpgo.Description("Short description"),
		),
		mcpgo.WithString("website_url",
			mcpgo.Description("Website URL"),
		),
		mcpgo.WithString("tags",
			mcpgo.Description("Comma-separated tags"),
		),
	)
}

func buildAskTool() mcpgo.Tool {
	return mcpgo.NewTool("ask_assistant",
		mcpgo.WithDescription("Ask the ecosystem assistant a question about the directory."),
		mcpgo.WithString("question",
			mcpgo.Required(),
			mcpgo.Description("The question to ask"),
		),
	)
}

// --- tool handlers ---

// handleList filters the directory listing.
func (s *Server) handleList(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.st == nil {
		return mcpgo.NewToolResultError("store is unavailable"), nil
	}

	category, ok := models.ParseCategory(req.GetString("category", ""))
	if !ok {
		return mcpgo.NewToolResultErrorf("invalid category %q: must be one of All, Brand, Tech & Tools, Agency", req.GetString("category", "")), nil
	}
	filter := models.NewFilterState().WithCategory(category).WithQuery(req.GetString("query", ""))
	if tag := req.GetString("tag", ""); tag != "" {
		filter = filter.ToggleTag(tag)
	}

	entities, err := s.st.List(ctx)
	if err != nil {
		return mcpgo.NewToolResultErrorf("list failed: %s", err.Error()), nil
	}
	return toolResultJSON(query.Run(entities, filter))
}

// handleGet returns the detail view of one entity.
func (s *Server) handleGet(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	entity, entities, res := s.lookup(ctx, req)
	if res != nil {
		return res, nil
	}
	return toolResultJSON(relations.Detail(entities, entity, s.similarLimit))
}

// handleSimilar returns only the similar-entity ranking.
func (s *Server) handleSimilar(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	entity, entities, res := s.lookup(ctx, req)
	if res != nil {
		return res, nil
	}
	limit := req.GetInt("limit", s.similarLimit)
	if limit <= 0 {
		limit = s.similarLimit
	}
	result := map[string]any{
		"id":      entity.ID,
		"similar": relations.Similar(entities, entity, limit),
	}
	return toolResultJSON(result)
}

// lookup resolves the "id" argument. A non-nil result is an error response.
func (s *Server) lookup(ctx context.Context, req mcpgo.CallToolRequest) (*models.Entity, []models.Entity, *mcpgo.CallToolResult) {
	if s.st == nil {
		return nil, nil, mcpgo.NewToolResultError("store is unavailable")
	}
	id := req.GetString("id", "")
	if strings.TrimSpace(id) == "" {
		return nil, nil, mcpgo.NewToolResultError("id is required and must not be empty")
	}
	entity, err := s.st.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, mcpgo.NewToolResultErrorf("entity %q not found", id)
		}
		return nil, nil, mcpgo.NewToolResultErrorf("get failed: %s", err.Error())
	}
	entities, err := s.st.List(ctx)
	if err != nil {
		return nil, nil, mcpgo.NewToolResultErrorf("list failed: %s", err.Error())
	}
	return entity, entities, nil
}

// handleSubmit queues a submission for moderation.
func (s *Server) handleSubmit(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.workflow == nil {
		return mcpgo.NewToolResultError("moderation is unavailable"), nil
	}

	in := moderation.SubmissionInput{
		Name:        req.GetString("name", ""),
		Description: req.GetString("description", ""),
		WebsiteURL:  req.GetString("website_url", ""),
		Tags:        splitTags(req.GetString("tags", "")),
	}
	if raw := req.GetString("category", ""); raw != "" {
		c, ok := models.ParseCategory(raw)
		if !ok || c == models.CategoryAll {
			return mcpgo.NewToolResultErrorf("invalid category %q: must be one of Brand, Tech & Tools, Agency", raw), nil
		}
		in.Category = c
	}

	sub, err := s.workflow.Submit(ctx, in)
	if err != nil {
		if errors.Is(err, moderation.ErrInvalidSubmission) {
			return mcpgo.NewToolResultError(err.Error()), nil
		}
		return mcpgo.NewToolResultErrorf("submit failed: %s", err.Error()), nil
	}

	s.logger.Info("mcp: submission queued", "id", sub.ID)

	result := map[string]any{
		"id":     sub.ID,
		"status": sub.Status,
	}
	return toolResultJSON(result)
}

// handleAsk forwards a question to the assistant. The answer is always text.
func (s *Server) handleAsk(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.st == nil {
		return mcpgo.NewToolResultError("store is unavailable"), nil
	}
	question := req.GetString("question", "")
	if strings.TrimSpace(question) == "" {
		return mcpgo.NewToolResultError("question is required and must not be empty"), nil
	}

	entities, err := s.st.List(ctx)
	if err != nil {
		return mcpgo.NewToolResultErrorf("list failed: %s", err.Error()), nil
	}
	metrics.Inc(metrics.AssistantQueries)
	answer := s.gw.Ask(ctx, question, models.Summarize(entities))
	if assistant.IsFallback(answer) {
		metrics.Inc(metrics.AssistantFallbacks)
	}
	return mcpgo.NewToolResultText(answer), nil
}
