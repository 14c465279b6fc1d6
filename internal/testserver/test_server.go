// Package testserver runs the full HTTP stack against an in-memory store.
package testserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ganot/typeset-board/internal/domain/activity"
	"github.com/ganot/typeset-board/internal/domain/gate"
	"github.com/ganot/typeset-board/internal/domain/member"
	"github.com/ganot/typeset-board/internal/domain/summary"
	"github.com/ganot/typeset-board/internal/mcp"
	"github.com/ganot/typeset-board/internal/sqlite"
	"github.com/ganot/typeset-board/internal/transport"
	"github.com/ganot/typeset-board/internal/worklog"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	Gate   *gate.Service
}

// New starts a server gated by password; an empty password leaves it open.
func New(t *testing.T, password string, parseOpts ...worklog.Option) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	activityRepo := sqlite.NewActivityRepository(db)
	memberSvc := member.NewService(sqlite.NewMemberRepository(db), sqlite.NewSearchRepository(db), activityRepo, nil, parseOpts...)
	summarySvc := summary.NewService(memberSvc, nil)
	activitySvc := activity.NewService(activityRepo, nil)
	gateSvc := gate.NewService(sqlite.NewSettingsRepository(db), activityRepo, password, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Members:  memberSvc,
			Summary:  summarySvc,
			Activity: activitySvc,
		},
		ParseOptions: parseOpts,
	})

	router := transport.NewServer(transport.Services{
		Members:  memberSvc,
		Summary:  summarySvc,
		Gate:     gateSvc,
		Activity: activitySvc,
	}, transport.Options{
		ParseOptions: parseOpts,
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			nil,
		),
	})
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, DB: db, Gate: gateSvc}
}

// MCPEndpoint is the streamable MCP URL.
func (ts *TestServer) MCPEndpoint() string {
	return ts.Server.URL + "/mcp"
}
