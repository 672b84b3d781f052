package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `mlaconnect runs an MLA constituency office: constituencies, citizen grievances, development projects, polls and users.

Working model:
- Every list is a table. Call list_tables once, then query_table with filters, search, sort, page_index and page_size.
- A query filters first, then sorts stably, then cuts one page. Bad column ids, bad pages and bad sizes are ignored, never errors.
- Changing filters returns to the first page. Hidden columns only change what is shown.
- Writes go through the entity tools (submit_grievance, record_expense, vote_poll, ...). Failures come back as {code, message, details}.

Docs:
- mlaconnect://docs/index
- mlaconnect://docs/tables
- mlaconnect://docs/workflows
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
		URI:         "mlaconnect://docs/index",
		Name:        "docs_index",
		Title:       "mlaconnect docs index",
		Description: "What the server manages and which doc to read next.",
		Content: `# mlaconnect: Agent Docs Index

## Entities

- Constituency: name, district, state, MLA, population and voters. Names are unique per tenant.
- Grievance: a citizen complaint tied to a constituency. Starts PENDING.
- Project: a development work with a budget in whole rupees. Spending never exceeds the budget.
- Poll: a question with two or more options, open from starts_at up to (not including) ends_at.
- User: an account with a role. Aadhaar numbers are always masked in output.

## Read next

- mlaconnect://docs/tables for query_table semantics
- mlaconnect://docs/workflows for grievance and project lifecycles
`,
	},
	{
		URI:         "mlaconnect://docs/tables",
		Name:        "docs_tables",
		Title:       "Querying tables",
		Description: "Filter, sort and pagination rules for query_table.",
		Content: `# Querying tables

Pipeline: records -> column filters and search -> stable sort -> page.

## Filters

- filters maps a column id to text. Most columns match case-insensitive substrings; status-like columns match exactly; names match fuzzily.
- search is matched against every filterable column; a row passes if any column matches.
- An empty value clears a filter. Setting filters always returns page_index 0.

## Sorting

- sort is a list of {column, desc}. Earlier keys win; ties keep the stored order.
- Text compares with locale-aware collation, numbers and dates numerically. Missing numbers and dates sort last.
- Columns that are not sortable are skipped.

## Paging

- page_size below 1 uses the server default. page_count is never below 1.
- page_index outside [0, page_count) is ignored.
- The result reports total rows and filtered rows.

## Visibility

- hidden lists columns to leave out of the output. Filters on hidden columns still apply.
`,
	},
	{
		URI:         "mlaconnect://docs/workflows",
		Name:        "docs_workflows",
		Title:       "Lifecycles",
		Description: "Grievance and project state machines, budget and poll rules.",
		Content: `# Lifecycles

## Grievances

PENDING -> IN_PROGRESS | REJECTED
IN_PROGRESS -> RESOLVED | REJECTED | PENDING
RESOLVED -> IN_PROGRESS (reopen)
REJECTED -> PENDING

RESOLVED and REJECTED need a resolution. Reopening clears it.

## Projects

PLANNED -> ONGOING | STALLED
ONGOING -> COMPLETED | STALLED
STALLED -> ONGOING | PLANNED

record_expense fails with BUDGET_EXCEEDED when the amount exceeds the remaining budget and with PROJECT_CLOSED on completed projects.

## Polls

Votes are accepted only while the poll is open. Options are numbered from 0.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

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
