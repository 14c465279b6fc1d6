package integration_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// serverBinary finds the built server or skips the test.
func serverBinary(t *testing.T) string {
	t.Helper()
	for _, path := range []string{"./bin/typeset-board", "../../bin/typeset-board"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Skip("Server binary not found. Run 'go build -o bin/typeset-board ./cmd/server' first.")
	return ""
}

func stdioEnv() []string {
	return append(os.Environ(),
		"TYPESET_TRANSPORT_MODE=stdio",
		"TYPESET_DB_PATH=:memory:",
		"TYPESET_AUTH_ENABLED=false",
	)
}

// TestStdioProtocolCompliance drives the server binary with the SDK client.
func TestStdioProtocolCompliance(t *testing.T) {
	binaryPath := serverBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = stdioEnv()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	require.NoError(t, err, "Failed to connect to server")
	defer session.Close()

	t.Run("ServerInfo", func(t *testing.T) {
		initResult := session.InitializeResult()
		require.NotNil(t, initResult)
		require.NotNil(t, initResult.ServerInfo)
		require.Equal(t, "typeset-board", initResult.ServerInfo.Name)
	})

	t.Run("ListTools", func(t *testing.T) {
		tools, err := session.ListTools(ctx, nil)
		require.NoError(t, err, "tools/list failed")

		toolNames := make(map[string]bool)
		for _, tool := range tools.Tools {
			toolNames[tool.Name] = true
		}
		for _, name := range []string{"parse_work_log", "add_member", "get_summary"} {
			require.True(t, toolNames[name], "Missing expected tool: %s", name)
		}
	})

	t.Run("AddMemberThenSummary", func(t *testing.T) {
		result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "add_member",
			Arguments: map[string]any{"name": "Kai", "raw_input": "Eleceed 137, 138, 139"},
		})
		require.NoError(t, err, "tools/call add_member failed")
		require.False(t, result.IsError, "add_member returned error: %v", result)

		result, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "get_summary",
			Arguments: map[string]any{},
		})
		require.NoError(t, err, "tools/call get_summary failed")
		require.False(t, result.IsError, "get_summary returned error: %v", result)

		text, ok := result.Content[0].(*sdkmcp.TextContent)
		require.True(t, ok)
		var sum struct {
			TotalChapters int `json:"total_chapters"`
		}
		require.NoError(t, json.Unmarshal([]byte(text.Text), &sum))
		require.Equal(t, 3, sum.TotalChapters)
	})
}

// TestStdioProtocol_StdoutHygiene checks that stdout carries only JSON-RPC.
func TestStdioProtocol_StdoutHygiene(t *testing.T) {
	binaryPath := serverBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(stdioEnv(), "TYPESET_LOG_LEVEL=debug")

	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())
	t.Cleanup(func() {
		_ = stdin.Close()
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	})

	initReq := `{"jsonrpc":"2.0","method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}},"id":1}`
	_, err = stdin.Write([]byte(initReq + "\n"))
	require.NoError(t, err)

	lineCh := make(chan []byte, 1)
	go func() {
		line, _ := bufio.NewReader(stdout).ReadBytes('\n')
		lineCh <- line
	}()

	select {
	case line := <-lineCh:
		require.NotEmpty(t, line, "Server produced no stdout output")
		var msg map[string]any
		require.NoError(t, json.Unmarshal(line, &msg), "stdout line is not JSON: %q", line)
		require.Equal(t, "2.0", msg["jsonrpc"])
	case <-time.After(5 * time.Second):
		t.Fatal("Timeout waiting for server response")
	}
}
