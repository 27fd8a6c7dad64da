// Package testserver assembles the full serving stack over a temporary
// source file for end-to-end tests.
package testserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/empetur/consolidacao/internal/domain/activity"
	"github.com/empetur/consolidacao/internal/domain/session"
	"github.com/empetur/consolidacao/internal/mcp"
	"github.com/empetur/consolidacao/internal/sheet"
	"github.com/empetur/consolidacao/internal/sqlite"
	"github.com/empetur/consolidacao/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server     *httptest.Server
	DB         *sqlite.DB
	SourcePath string
	ExportDir  string
	Sessions   *session.Service
	Activity   *activity.Service
}

// New writes source to a CSV file in a temp dir and serves it over HTTP.
func New(t *testing.T, source string) *TestServer {
	t.Helper()

	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "inventario.csv")
	require.NoError(t, os.WriteFile(sourcePath, []byte(source), 0o644))
	exportDir := filepath.Join(dir, "rotas")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)

	repo, err := sheet.NewFileRepository(sourcePath, logger)
	require.NoError(t, err)

	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), logger)
	sessionSvc := session.NewService(repo, activitySvc, logger)
	_, err = sessionSvc.Open(context.Background())
	require.NoError(t, err)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Sessions: sessionSvc,
			Activity: activitySvc,
		},
		ExportDir:    exportDir,
		ExportFormat: sheet.FormatCSV,
		Logger:       logger,
	})

	server := httptest.NewServer(transport.NewServer(transport.Options{
		MCP:          mcpServer,
		Routes:       sessionSvc,
		ExportFormat: sheet.FormatCSV,
		Logger:       logger,
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:     server,
		DB:         db,
		SourcePath: sourcePath,
		ExportDir:  exportDir,
		Sessions:   sessionSvc,
		Activity:   activitySvc,
	}
}

// Connect opens an MCP client session over the streamable HTTP endpoint.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	cs, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: ts.Server.URL + "/mcp"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

// CallTool calls a tool and decodes its structured result into out. It
// returns the tool error text when the tool failed.
func CallTool(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any, out any) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if args == nil {
		args = map[string]any{}
	}
	res, err := cs.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool %s failed", name)

	if res.IsError {
		for _, c := range res.Content {
			if text, ok := c.(*sdkmcp.TextContent); ok {
				return text.Text
			}
		}
		return "tool error"
	}
	if out != nil {
		data, err := json.Marshal(res.StructuredContent)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, out))
	}
	return ""
}
