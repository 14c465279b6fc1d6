package mcp

import (
	"context"
	"time"

	"github.com/ganot/typeset-board/internal/domain/activity"
	"github.com/ganot/typeset-board/internal/domain/member"
	"github.com/ganot/typeset-board/internal/domain/summary"
	"github.com/ganot/typeset-board/internal/worklog"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type toolset struct {
	services  Services
	parseOpts []worklog.Option
}

func registerTools(server *sdkmcp.Server, ts *toolset) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "parse_work_log",
		Description: "Parse a pasted work log into per-project chapter lists without storing it",
	}, ts.parseWorkLog)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_members",
		Description: "List team members with their parsed projects and chapter totals",
	}, ts.listMembers)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_member",
		Description: "Add a team member, optionally with a pasted work log. A blank name becomes \"Member N\"",
	}, ts.addMember)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_member_log",
		Description: "Replace a member's pasted work log and return the re-parsed projects",
	}, ts.updateMemberLog)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rename_member",
		Description: "Rename a member. A blank name becomes \"Unnamed\"",
	}, ts.renameMember)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_member",
		Description: "Remove a member and their work log",
	}, ts.removeMember)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_summary",
		Description: "Get the team summary: projects totalled across members, contributors, and overall counts",
	}, ts.getSummary)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_logs",
		Description: "Full-text search over member names and pasted work logs",
	}, ts.searchLogs)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_activity",
		Description: "List recent member and gate activity, newest first",
	}, ts.getRecentActivity)
}

// memberView is the tool-facing shape of a member.
type memberView struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	RawInput      string            `json:"raw_input"`
	Projects      []worklog.Project `json:"projects"`
	TotalChapters int               `json:"total_chapters"`
	UpdatedAt     string            `json:"updated_at"`
}

func viewMember(m *member.Member) memberView {
	projects := m.Projects
	if projects == nil {
		projects = []worklog.Project{}
	}
	return memberView{
		ID:            m.ID,
		Name:          m.Name,
		RawInput:      m.RawInput,
		Projects:      projects,
		TotalChapters: m.TotalChapters,
		UpdatedAt:     m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type parseInput struct {
	Text           string `json:"text" jsonschema:"the pasted work log, one project per line"`
	RangeExpansion *bool  `json:"range_expansion,omitempty" jsonschema:"expand a-b ranges into every chapter between them"`
}

type parseOutput struct {
	Projects      []worklog.Project `json:"projects"`
	TotalChapters int               `json:"total_chapters"`
}

func (ts *toolset) parseWorkLog(_ context.Context, _ *sdkmcp.CallToolRequest, in parseInput) (*sdkmcp.CallToolResult, parseOutput, error) {
	opts := ts.parseOpts
	if in.RangeExpansion != nil {
		opts = append(opts[:len(opts):len(opts)], worklog.WithRangeExpansion(*in.RangeExpansion))
	}
	projects := worklog.Parse(in.Text, opts...)
	return nil, parseOutput{Projects: projects, TotalChapters: worklog.Total(projects)}, nil
}

type emptyInput struct{}

type listMembersOutput struct {
	Members []memberView `json:"members"`
}

func (ts *toolset) listMembers(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, listMembersOutput, error) {
	members, err := ts.services.Members.List(ctx)
	if err != nil {
		return nil, listMembersOutput{}, toolError(err)
	}
	out := listMembersOutput{Members: make([]memberView, 0, len(members))}
	for i := range members {
		out.Members = append(out.Members, viewMember(&members[i]))
	}
	return nil, out, nil
}

type addMemberInput struct {
	Name     string `json:"name,omitempty" jsonschema:"display name, blank for the next Member N"`
	RawInput string `json:"raw_input,omitempty" jsonschema:"pasted work log"`
}

func (ts *toolset) addMember(ctx context.Context, _ *sdkmcp.CallToolRequest, in addMemberInput) (*sdkmcp.CallToolResult, memberView, error) {
	m, err := ts.services.Members.Create(ctx, member.CreateRequest{Name: in.Name, RawInput: in.RawInput})
	if err != nil {
		return nil, memberView{}, toolError(err)
	}
	return nil, viewMember(m), nil
}

type updateMemberLogInput struct {
	ID       string `json:"id" jsonschema:"member ID"`
	RawInput string `json:"raw_input" jsonschema:"the new pasted work log, replacing the old one"`
}

func (ts *toolset) updateMemberLog(ctx context.Context, _ *sdkmcp.CallToolRequest, in updateMemberLogInput) (*sdkmcp.CallToolResult, memberView, error) {
	m, err := ts.services.Members.UpdateInput(ctx, in.ID, in.RawInput)
	if err != nil {
		return nil, memberView{}, toolError(err)
	}
	return nil, viewMember(m), nil
}

type renameMemberInput struct {
	ID   string `json:"id" jsonschema:"member ID"`
	Name string `json:"name" jsonschema:"new display name"`
}

func (ts *toolset) renameMember(ctx context.Context, _ *sdkmcp.CallToolRequest, in renameMemberInput) (*sdkmcp.CallToolResult, memberView, error) {
	m, err := ts.services.Members.Rename(ctx, in.ID, in.Name)
	if err != nil {
		return nil, memberView{}, toolError(err)
	}
	return nil, viewMember(m), nil
}

type removeMemberInput struct {
	ID string `json:"id" jsonschema:"member ID"`
}

type removeMemberOutput struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}

func (ts *toolset) removeMember(ctx context.Context, _ *sdkmcp.CallToolRequest, in removeMemberInput) (*sdkmcp.CallToolResult, removeMemberOutput, error) {
	if err := ts.services.Members.Delete(ctx, in.ID); err != nil {
		return nil, removeMemberOutput{}, toolError(err)
	}
	return nil, removeMemberOutput{ID: in.ID, Removed: true}, nil
}

func (ts *toolset) getSummary(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, summary.Summary, error) {
	sum, err := ts.services.Summary.Get(ctx)
	if err != nil {
		return nil, summary.Summary{}, toolError(err)
	}
	return nil, sum, nil
}

type searchInput struct {
	Query  string `json:"query" jsonschema:"words to look for in names and work logs"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results"`
	Offset int    `json:"offset,omitempty" jsonschema:"offset for pagination"`
}

type searchOutput struct {
	Results []member.SearchResult `json:"results"`
}

func (ts *toolset) searchLogs(ctx context.Context, _ *sdkmcp.CallToolRequest, in searchInput) (*sdkmcp.CallToolResult, searchOutput, error) {
	results, err := ts.services.Members.Search(ctx, in.Query, member.SearchOptions{Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, searchOutput{}, toolError(err)
	}
	if results == nil {
		results = []member.SearchResult{}
	}
	return nil, searchOutput{Results: results}, nil
}

type activityInput struct {
	MemberID string `json:"member_id,omitempty" jsonschema:"only entries for this member"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of entries"`
	Offset   int    `json:"offset,omitempty" jsonschema:"offset for pagination"`
}

type activityView struct {
	MemberID  string `json:"member_id,omitempty"`
	Type      string `json:"type"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"created_at"`
}

type activityOutput struct {
	Entries []activityView `json:"entries"`
}

func (ts *toolset) getRecentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in activityInput) (*sdkmcp.CallToolResult, activityOutput, error) {
	opts := activity.ListActivityOptions{Limit: in.Limit, Offset: in.Offset}
	if in.MemberID != "" {
		opts.MemberID = &in.MemberID
	}
	entries, err := ts.services.Activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return nil, activityOutput{}, toolError(err)
	}

	out := activityOutput{Entries: make([]activityView, 0, len(entries))}
	for _, e := range entries {
		v := activityView{
			Type:      string(e.ActivityType),
			Summary:   e.Summary,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if e.MemberID != nil {
			v.MemberID = *e.MemberID
		}
		out.Entries = append(out.Entries, v)
	}
	return nil, out, nil
}
