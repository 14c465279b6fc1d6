package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ganot/typeset-board/internal/domain/activity"
	"github.com/ganot/typeset-board/internal/domain/gate"
	"github.com/ganot/typeset-board/internal/domain/member"
	"github.com/ganot/typeset-board/internal/domain/summary"
	"github.com/ganot/typeset-board/internal/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, password string, mcp http.Handler) *chi.Mux {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	activityRepo := sqlite.NewActivityRepository(db)
	memberSvc := member.NewService(sqlite.NewMemberRepository(db), sqlite.NewSearchRepository(db), activityRepo, nil)

	return NewServer(Services{
		Members:  memberSvc,
		Summary:  summary.NewService(memberSvc, nil),
		Gate:     gate.NewService(sqlite.NewSettingsRepository(db), activityRepo, password, nil),
		Activity: activity.NewService(activityRepo, nil),
	}, Options{MCP: mcp})
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHTTPServer_Health(t *testing.T) {
	router := newTestRouter(t, "", nil)

	rec := do(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestHTTPServer_Parse(t *testing.T) {
	router := newTestRouter(t, "", nil)

	rec := do(t, router, http.MethodPost, "/api/parse", map[string]any{
		"text": "Eleceed 137, 138, 139\nIRL Quest 50\nTotal - 4",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[parseResponse](t, rec)
	require.Equal(t, 4, resp.TotalChapters)
	require.Len(t, resp.Projects, 2)
	require.Equal(t, "Eleceed", resp.Projects[0].Name)

	rec = do(t, router, http.MethodPost, "/api/parse", map[string]any{
		"text":            "Solo Leveling 100-105",
		"range_expansion": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[parseResponse](t, rec)
	require.Equal(t, 6, resp.TotalChapters)
	require.Equal(t, "Solo Leveling", resp.Projects[0].Name)
}

func TestHTTPServer_ParseEmptyText(t *testing.T) {
	router := newTestRouter(t, "", nil)

	rec := do(t, router, http.MethodPost, "/api/parse", map[string]any{"text": ""})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[parseResponse](t, rec)
	require.NotNil(t, resp.Projects)
	require.Empty(t, resp.Projects)
	require.Zero(t, resp.TotalChapters)
}

func TestHTTPServer_InvalidBody(t *testing.T) {
	router := newTestRouter(t, "", nil)

	rec := do(t, router, http.MethodPost, "/api/parse", "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_BODY", decode[ErrorResponse](t, rec).Code)
}

func TestHTTPServer_MemberLifecycle(t *testing.T) {
	router := newTestRouter(t, "", nil)

	rec := do(t, router, http.MethodPost, "/api/members", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[member.Member](t, rec)
	require.Equal(t, "Member 1", created.Name)

	rec = do(t, router, http.MethodPatch, "/api/members/"+created.ID, map[string]any{
		"name":      "Kai",
		"raw_input": "ME - 506 / 522 / 517\nJustAName",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[member.Member](t, rec)
	require.Equal(t, "Kai", updated.Name)
	require.Equal(t, 4, updated.TotalChapters)

	rec = do(t, router, http.MethodGet, "/api/members/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[member.Member](t, rec)
	require.Len(t, got.Projects, 2)
	require.Equal(t, "JustAName", got.Projects[0].Name)

	rec = do(t, router, http.MethodGet, "/api/members", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[listMembersResponse](t, rec).Members, 1)

	rec = do(t, router, http.MethodDelete, "/api/members/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/members/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "MEMBER_NOT_FOUND", decode[ErrorResponse](t, rec).Code)
}

func TestHTTPServer_UpdateRequiresAField(t *testing.T) {
	router := newTestRouter(t, "", nil)

	created := decode[member.Member](t, do(t, router, http.MethodPost, "/api/members", map[string]any{"name": "Kai"}))

	rec := do(t, router, http.MethodPatch, "/api/members/"+created.ID, map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_INPUT", decode[ErrorResponse](t, rec).Code)

	rec = do(t, router, http.MethodPatch, "/api/members/missing", map[string]any{"name": "Rin"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTPServer_SummaryAndSearch(t *testing.T) {
	router := newTestRouter(t, "", nil)

	do(t, router, http.MethodPost, "/api/members", map[string]any{"name": "Kai", "raw_input": "Eleceed 1, 2"})
	do(t, router, http.MethodPost, "/api/members", map[string]any{"name": "Rin", "raw_input": "eleceed 3\nIRL Quest 9"})

	rec := do(t, router, http.MethodGet, "/api/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decode[summary.Summary](t, rec)
	require.Equal(t, 4, sum.TotalChapters)
	require.Equal(t, 2, sum.ActiveMembers)
	require.Equal(t, 2, sum.TotalProjects)
	require.Equal(t, "Eleceed", sum.Projects[0].Name)
	require.Equal(t, 3, sum.Projects[0].TotalCount)
	require.Equal(t, []string{"Kai", "Rin"}, sum.Projects[0].Contributors)

	rec = do(t, router, http.MethodGet, "/api/members/search?q=quest", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	results := decode[searchMembersResponse](t, rec).Results
	require.Len(t, results, 1)
	require.Equal(t, "Rin", results[0].Name)

	rec = do(t, router, http.MethodGet, "/api/members/search?q=", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/members/search?q=quest&limit=x", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPServer_Activity(t *testing.T) {
	router := newTestRouter(t, "", nil)

	created := decode[member.Member](t, do(t, router, http.MethodPost, "/api/members", map[string]any{"name": "Kai"}))
	do(t, router, http.MethodPatch, "/api/members/"+created.ID, map[string]any{"raw_input": "A 1"})

	rec := do(t, router, http.MethodGet, "/api/activity?member_id="+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode[activityResponse](t, rec).Entries
	require.Len(t, entries, 2)
	require.Equal(t, activity.TypeLogUpdated, entries[0].ActivityType)
	require.Equal(t, activity.TypeMemberAdded, entries[1].ActivityType)
}
