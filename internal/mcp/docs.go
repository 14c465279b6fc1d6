package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `typeset-board tallies the chapters a typesetting team has worked on.

Each member pastes a work log, one project per line. The server parses every
log into projects with the chapter numbers they mention, and totals the
projects across the whole team.

Workflow:
1) Check pasted text with parse_work_log before storing it.
2) Manage members with list_members / add_member / update_member_log /
   rename_member / remove_member.
3) Read the team view with get_summary.
4) Find who worked on what with search_logs; audit changes with
   get_recent_activity.

Docs:
- typeset://docs/paste-format (accepted line shapes and edge cases)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "typeset://docs/paste-format",
		Name:        "docs_paste_format",
		Title:       "Work log paste format",
		Description: "Line shapes the work log parser accepts and how it counts them.",
		Content: `# Work log paste format

One project per line. Blank lines are ignored.

## Line shapes

- Name, then numbers: ` + "`Eleceed 137, 138, 139`" + `
- Name, dash, numbers: ` + "`ME - 506 / 522 / 517`" + ` (hyphen, en dash or em dash)
- Name alone: ` + "`JustAName`" + ` counts as one mention with no chapter numbers

Numbers may be separated by commas, slashes or spaces. Anything after the
dash that is not a whole number is dropped.

## Counting

- A project's count is the number of distinct chapters listed for it.
- Repeated lines for the same project merge, case-insensitively; the
  first spelling is kept.
- A name with no numbers counts mentions, but only while the project has
  no chapters.

## Subtotals

Lines starting with ` + "`Total -`" + `, ` + "`Total:`" + ` (any case, any dash) are skipped so
hand-written subtotals are not counted as a project.

## Ranges

With ` + "`range_expansion`" + ` set, ` + "`Solo Leveling 100-105`" + ` counts chapters 100 to 105.
Without it the hyphen splits the line, which reads as project
` + "`Solo Leveling 100`" + ` with chapter ` + "`105`" + `. Reversed
ranges keep their first number; very wide ranges are ignored.

## Output order

Projects come back sorted by name in English collation order.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
