package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/ecodir/internal/assistant"
	"github.com/ajitpratap0/ecodir/internal/models"
	"github.com/ajitpratap0/ecodir/internal/query"
	"github.com/ajitpratap0/ecodir/internal/relations"
	"github.com/ajitpratap0/ecodir/internal/seed"
)

// runRoot executes the root command with args and returns stdout.
func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("ECODIR_SEED_FILE", "")
	t.Setenv("ECODIR_LOG_LEVEL", "error")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a b", truncate("a\nb", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
	assert.Equal(t, "çöğ...", truncate("çöğüş", 3))
}

func TestFilterFlagsState(t *testing.T) {
	f := filterFlags{category: "tools", text: "pay", tag: "Fintech"}
	state, err := f.state()
	require.NoError(t, err)
	assert.Equal(t, models.CategoryTool, state.Category)
	assert.Equal(t, "pay", state.Query)
	assert.Equal(t, "Fintech", state.Tag)

	_, err = (&filterFlags{category: "marketplace"}).state()
	assert.Error(t, err)
}

func TestListCommandJSON(t *testing.T) {
	out, err := runRoot(t, "", "list", "--json", "--query", "getir")
	require.NoError(t, err)

	var res query.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Getir", res.Items[0].Name)
}

func TestListCommandText(t *testing.T) {
	out, err := runRoot(t, "", "list", "--category", "agency")
	require.NoError(t, err)
	assert.Contains(t, out, "Positive (Agency)")
	assert.Contains(t, out, "Inveon (Agency)")
	assert.NotContains(t, out, "Mavi")

	out, err = runRoot(t, "", "list", "--query", "no such entity")
	require.NoError(t, err)
	assert.Contains(t, out, "No entities found.")
}

func TestTagsCommandMarksSelection(t *testing.T) {
	out, err := runRoot(t, "", "tags", "--query", "getir", "--tag", "Delivery")
	require.NoError(t, err)
	assert.Equal(t, "* Delivery\n  Q-Commerce\n  Tech\n", out)
}

func TestGetCommand(t *testing.T) {
	out, err := runRoot(t, "", "get", "b1")
	require.NoError(t, err)
	assert.Contains(t, out, "Mavi (Brand)")
	assert.Contains(t, out, "-> t3")
	assert.Contains(t, out, "Similar:")

	_, err = runRoot(t, "", "get", "missing")
	assert.Error(t, err)
}

func TestGetCommandJSON(t *testing.T) {
	out, err := runRoot(t, "", "get", "t1", "--json")
	require.NoError(t, err)

	var detail relations.EntityDetail
	require.NoError(t, json.Unmarshal([]byte(out), &detail))
	require.Len(t, detail.UsedBy, 1)
	assert.Equal(t, "Mavi", detail.UsedBy[0].Name)
}

func TestAskCommandWithoutKey(t *testing.T) {
	out, err := runRoot(t, "", "ask", "who", "uses", "Iyzico?")
	require.NoError(t, err)
	assert.Equal(t, assistant.FallbackUnconfigured+"\n", out)
}

func TestInspectCommandWithoutKeyFails(t *testing.T) {
	_, err := runRoot(t, "", "inspect", "https://example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, assistant.ErrNotConfigured)
}

func TestStatsCommand(t *testing.T) {
	out, err := runRoot(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total entities: 12")
	assert.Contains(t, out, "Tech & Tools")
	assert.Contains(t, out, "Pending submissions: 0")
}

func TestExportYAMLLoadsAsSeed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeExport(&buf, seed.Default(), "yaml"))

	loaded, err := seed.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, seed.Default(), loaded)
}

func TestExportUnsupportedFormat(t *testing.T) {
	err := writeExport(&bytes.Buffer{}, nil, "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestExportCommandRejectsFormatBeforeCreatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	_, err := runRoot(t, "", "export", "--format", "xml", "-o", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "output file should not be created")
}

func TestExportCommandWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	out, err := runRoot(t, "", "export", "--format", "json", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entities []models.Entity
	require.NoError(t, json.Unmarshal(data, &entities))
	assert.Len(t, entities, len(seed.Default()))
}

// echoGateway answers with the question.
type echoGateway struct{ assistant.Unconfigured }

func (echoGateway) Ask(_ context.Context, q string, _ []models.EntitySummary) string {
	return "echo: " + q
}

func TestRunChat(t *testing.T) {
	conv := assistant.NewConversation()
	var out bytes.Buffer
	in := strings.NewReader("hello\n\nsecond\nexit\nignored\n")

	require.NoError(t, runChat(context.Background(), conv, echoGateway{}, nil, in, &out))
	assert.Contains(t, out.String(), assistant.Greeting)
	assert.Contains(t, out.String(), "echo: hello")
	assert.Contains(t, out.String(), "echo: second")
	assert.NotContains(t, out.String(), "echo: ignored")

	msgs := conv.Messages()
	require.Len(t, msgs, 5)
	assert.Equal(t, models.RoleUser, msgs[3].Role)
	assert.Equal(t, "second", msgs[3].Text)
}
