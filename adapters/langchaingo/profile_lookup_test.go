package langchaingo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashgraph-online/gravatar-sdk-go/pkg/gravatar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/callbacks"
)

type recordingHandler struct {
	callbacks.SimpleHandler
	starts int
	ends   int
	errors int
}

func (h *recordingHandler) HandleToolStart(context.Context, string) { h.starts++ }
func (h *recordingHandler) HandleToolEnd(context.Context, string) { h.ends++ }
func (h *recordingHandler) HandleToolError(context.Context, error) { h.errors++ }

func newLookupTool(t *testing.T) *ProfileLookupTool {
	t.Helper()
	hash := gravatar.Hash("gravatar@knutkohl.de")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/"+hash+".json" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("User not found"))
			return
		}
		_, _ = w.Write([]byte(`{"entry":[{"id":"1234","preferredUsername":"knutkohl","displayName":"Knut Kohl"}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := gravatar.NewClient(gravatar.Config{PlainBaseURL: server.URL})
	require.NoError(t, err)
	tool, err := NewProfileLookupTool(client)
	require.NoError(t, err)
	return tool
}

func TestProfileLookupToolCall(t *testing.T) {
	tool := newLookupTool(t)
	handler := &recordingHandler{}
	tool.Callbacks = handler

	output, err := tool.Call(context.Background(), "  Gravatar@KnutKohl.de\n")
	require.NoError(t, err)
	assert.Contains(t, output, `"preferredUsername": "knutkohl"`)
	assert.Equal(t, 1, handler.starts)
	assert.Equal(t, 1, handler.ends)
	assert.Zero(t, handler.errors)
}

func TestProfileLookupToolNotFound(t *testing.T) {
	tool := newLookupTool(t)
	handler := &recordingHandler{}
	tool.Callbacks = handler

	output, err := tool.Call(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Equal(t, "No Gravatar profile exists for nobody@example.com", output)
	assert.Equal(t, 1, handler.errors)
	assert.Zero(t, handler.ends)
}

func TestProfileLookupToolMetadata(t *testing.T) {
	tool, err := NewProfileLookupTool(nil)
	require.NoError(t, err)
	assert.Equal(t, "Gravatar_Profile_Lookup", tool.Name())
	assert.NotEmpty(t, tool.Description())
}
