package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition describes one MCP tool.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
}

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

func enum(description string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": description, "enum": values}
}

func object(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

var idOnly = object(map[string]any{"id": prop("string", "Entity ID")}, "id")

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		// Tables
		{
			Name:        "list_tables",
			Description: "List the dashboard tables and their columns",
			InputSchema: object(map[string]any{}),
		},
		{
			Name:        "query_table",
			Description: "Filter, sort and paginate a dashboard table. Filters apply first, then a stable sort, then paging.",
			InputSchema: object(map[string]any{
				"table": prop("string", "Table name from list_tables"),
				"filters": map[string]any{
					"type":                 "object",
					"description":          "Column id to filter text. Unknown or unfilterable columns are ignored.",
					"additionalProperties": map[string]any{"type": "string"},
				},
				"search": prop("string", "Text matched against every filterable column"),
				"sort": map[string]any{
					"type":        "array",
					"description": "Sort keys in priority order",
					"items": object(map[string]any{
						"column": prop("string", "Column id"),
						"desc":   prop("boolean", "Sort descending"),
					}, "column"),
				},
				"page_index": prop("integer", "Zero-based page. Out of range values are ignored."),
				"page_size":  prop("integer", "Rows per page"),
				"hidden": map[string]any{
					"type":        "array",
					"description": "Column ids to hide",
					"items":       map[string]any{"type": "string"},
				},
			}, "table"),
		},

		// Constituencies
		{
			Name:        "create_constituency",
			Description: "Add a constituency",
			InputSchema: object(map[string]any{
				"name":       prop("string", "Constituency name, unique per tenant"),
				"district":   prop("string", "District"),
				"state":      prop("string", "State"),
				"mla_name":   prop("string", "Sitting MLA"),
				"population": prop("integer", "Population"),
				"voters":     prop("integer", "Registered voters, at most the population"),
				"status":     enum("Defaults to ACTIVE", "ACTIVE", "INACTIVE"),
			}, "name", "district", "state"),
		},
		{
			Name:        "get_constituency",
			Description: "Get a constituency by ID",
			InputSchema: idOnly,
		},
		{
			Name:        "constituency_stats",
			Description: "Count constituencies, population and voters by district",
			InputSchema: object(map[string]any{}),
		},

		// Grievances
		{
			Name:        "submit_grievance",
			Description: "Record a citizen grievance in PENDING status",
			InputSchema: object(map[string]any{
				"constituency_id": prop("string", "Constituency ID"),
				"citizen_name":    prop("string", "Name of the citizen"),
				"phone":           prop("string", "10-digit Indian mobile number"),
				"category":        prop("string", "Category such as Water or Roads"),
				"description":     prop("string", "What the citizen reported"),
				"priority":        enum("Defaults to MEDIUM", "LOW", "MEDIUM", "HIGH"),
			}, "constituency_id", "citizen_name", "phone", "category", "description"),
		},
		{
			Name:        "get_grievance",
			Description: "Get a grievance by ID",
			InputSchema: idOnly,
		},
		{
			Name:        "transition_grievance",
			Description: "Move a grievance through PENDING, IN_PROGRESS, RESOLVED and REJECTED. Resolving or rejecting needs a resolution.",
			InputSchema: object(map[string]any{
				"id":         prop("string", "Grievance ID"),
				"to_status":  enum("Target status", "PENDING", "IN_PROGRESS", "RESOLVED", "REJECTED"),
				"resolution": prop("string", "Outcome text"),
			}, "id", "to_status"),
		},
		{
			Name:        "search_grievances",
			Description: "Full-text search over grievance names, categories, descriptions and resolutions",
			InputSchema: object(map[string]any{
				"query": prop("string", "Search text"),
				"statuses": map[string]any{
					"type":        "array",
					"description": "Filter by status",
					"items":       enum("Status", "PENDING", "IN_PROGRESS", "RESOLVED", "REJECTED"),
				},
				"limit":  prop("integer", "Maximum number of results"),
				"offset": prop("integer", "Offset for pagination"),
			}, "query"),
		},
		{
			Name:        "grievance_stats",
			Description: "Count grievances by status and category",
			InputSchema: object(map[string]any{
				"constituency_id": prop("string", "Limit to one constituency"),
			}),
		},

		// Development projects
		{
			Name:        "create_project",
			Description: "Sanction a development project",
			InputSchema: object(map[string]any{
				"constituency_id": prop("string", "Constituency ID"),
				"name":            prop("string", "Project name"),
				"category":        prop("string", "Category such as Roads or Irrigation"),
				"budget":          prop("integer", "Budget in whole rupees"),
				"status":          enum("Defaults to PLANNED", "PLANNED", "ONGOING", "COMPLETED", "STALLED"),
				"start_date":      prop("string", "YYYY-MM-DD"),
				"end_date":        prop("string", "YYYY-MM-DD, after the start"),
			}, "constituency_id", "name", "category", "budget", "start_date", "end_date"),
		},
		{
			Name:        "get_project",
			Description: "Get a development project by ID",
			InputSchema: idOnly,
		},
		{
			Name:        "record_expense",
			Description: "Add spending to a project. Spending never exceeds the budget.",
			InputSchema: object(map[string]any{
				"id":     prop("string", "Project ID"),
				"amount": prop("integer", "Amount in whole rupees"),
				"note":   prop("string", "What the money was spent on"),
			}, "id", "amount"),
		},
		{
			Name:        "update_project_status",
			Description: "Change a project's execution status",
			InputSchema: object(map[string]any{
				"id":     prop("string", "Project ID"),
				"status": enum("Target status", "PLANNED", "ONGOING", "COMPLETED", "STALLED"),
			}, "id", "status"),
		},
		{
			Name:        "budget_summary",
			Description: "Allocated, spent and remaining budget",
			InputSchema: object(map[string]any{
				"constituency_id": prop("string", "Limit to one constituency"),
			}),
		},

		// Polls
		{
			Name:        "create_poll",
			Description: "Open a citizen poll with at least two distinct options",
			InputSchema: object(map[string]any{
				"constituency_id": prop("string", "Constituency ID, omit for a tenant-wide poll"),
				"question":        prop("string", "Question"),
				"options": map[string]any{
					"type":        "array",
					"description": "Answer options",
					"items":       map[string]any{"type": "string"},
				},
				"starts_at": prop("string", "Voting opens (RFC 3339 or YYYY-MM-DD)"),
				"ends_at":   prop("string", "Voting closes, exclusive"),
			}, "question", "options", "starts_at", "ends_at"),
		},
		{
			Name:        "vote_poll",
			Description: "Cast one vote",
			InputSchema: object(map[string]any{
				"id":     prop("string", "Poll ID"),
				"option": prop("integer", "Zero-based option index"),
			}, "id", "option"),
		},
		{
			Name:        "poll_results",
			Description: "Tally a poll",
			InputSchema: idOnly,
		},

		// Users
		{
			Name:        "register_user",
			Description: "Register a user account",
			InputSchema: object(map[string]any{
				"name":             prop("string", "Full name"),
				"email":            prop("string", "Email address"),
				"phone":            prop("string", "10-digit Indian mobile number, unique per tenant"),
				"aadhaar":          prop("string", "12-digit Aadhaar number"),
				"role":             enum("Account role", "ADMIN", "MLA_STAFF", "CITIZEN"),
				"constituency_id":  prop("string", "Home constituency"),
				"password":         prop("string", "At least 8 characters"),
				"confirm_password": prop("string", "Must equal password"),
			}, "name", "phone", "aadhaar", "role", "password", "confirm_password"),
		},
		{
			Name:        "authenticate_user",
			Description: "Check a phone and password; returns the masked user",
			InputSchema: object(map[string]any{
				"phone":    prop("string", "Registered mobile number"),
				"password": prop("string", "Account password"),
			}, "phone", "password"),
		},

		// Activity
		{
			Name:        "get_recent_activity",
			Description: "Get recent activity entries, newest first",
			InputSchema: object(map[string]any{
				"entity_type": enum("Filter by entity", "constituency", "grievance", "project", "poll", "user"),
				"entity_id":   prop("string", "Filter by entity ID"),
				"type":        prop("string", "Filter by activity type; comma-separate several"),
				"since":       prop("string", "Only entries at or after this time"),
				"limit":       prop("integer", "Maximum number of activity entries (default 50, max 500)"),
				"offset":      prop("integer", "Offset for pagination"),
			}),
		},
	}
}

// registerTools adds every catalog tool to server, dispatching calls to h.
func registerTools(server *sdkmcp.Server, h *Handler, logger *slog.Logger) {
	for _, def := range buildToolCatalog() {
		name := def.Name
		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			result, err := h.Handle(ctx, getTenantID(ctx), getSessionID(ctx), name, args)
			if err != nil {
				if logger != nil {
					logger.Debug("tool failed", "tool", name, "error", err)
				}
				return errorResult(err), nil
			}
			return jsonResult(result), nil
		})
	}
}

func jsonResult(v any) *sdkmcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult(err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}

func errorResult(err error) *sdkmcp.CallToolResult {
	payload := MapError(err)
	if payload == nil {
		payload = &APIError{Code: "INTERNAL", Message: err.Error()}
	}
	data, _ := json.Marshal(payload)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}
