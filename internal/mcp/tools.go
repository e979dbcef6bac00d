package mcp

import "github.com/mark3labs/mcp-go/mcp"

var convertToolDef = mcp.NewTool("activity_convert",
	mcp.WithDescription("Convert a recorded ride (Strava streams JSON or FIT file) into a Zwift workout (.zwo) file and record it in history."),
	mcp.WithString("source_path",
		mcp.Required(),
		mcp.Description("Path to the activity file (.json or .fit)"),
	),
	mcp.WithString("output_path",
		mcp.Description("Destination .zwo path (default: source path with .zwo extension)"),
	),
	mcp.WithString("profile",
		mcp.Description("Stored profile name to take FTP from (mutually exclusive with ftp_watts)"),
	),
	mcp.WithNumber("ftp_watts",
		mcp.Description("Rider FTP in watts (mutually exclusive with profile)"),
	),
	mcp.WithString("name",
		mcp.Description("Workout name (default: source filename)"),
	),
	mcp.WithString("description",
		mcp.Description("Workout description embedded in the file"),
	),
)

var inspectToolDef = mcp.NewTool("activity_inspect",
	mcp.WithDescription("Run the conversion pipeline and return the segment list without writing any file or history entry."),
	mcp.WithString("source_path",
		mcp.Required(),
		mcp.Description("Path to the activity file (.json or .fit)"),
	),
	mcp.WithString("profile",
		mcp.Description("Stored profile name to take FTP from (mutually exclusive with ftp_watts)"),
	),
	mcp.WithNumber("ftp_watts",
		mcp.Description("Rider FTP in watts (mutually exclusive with profile)"),
	),
	mcp.WithString("name",
		mcp.Description("Workout name (default: source filename)"),
	),
)

var previewToolDef = mcp.NewTool("activity_preview",
	mcp.WithDescription("Render an HTML preview page with the workout's target power chart."),
	mcp.WithString("source_path",
		mcp.Required(),
		mcp.Description("Path to the activity file (.json or .fit)"),
	),
	mcp.WithString("output_path",
		mcp.Description("Destination .html path (default: source path with .html extension)"),
	),
	mcp.WithString("profile",
		mcp.Description("Stored profile name to take FTP from (mutually exclusive with ftp_watts)"),
	),
	mcp.WithNumber("ftp_watts",
		mcp.Description("Rider FTP in watts (mutually exclusive with profile)"),
	),
	mcp.WithString("name",
		mcp.Description("Workout name (default: source filename)"),
	),
	mcp.WithString("notes",
		mcp.Description("Markdown notes rendered below the chart"),
	),
)

var profileSetToolDef = mcp.NewTool("profile_set",
	mcp.WithDescription("Create a rider profile or update its FTP."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Profile name (case-insensitive)"),
	),
	mcp.WithNumber("ftp_watts",
		mcp.Required(),
		mcp.Description("Rider FTP in watts (must be positive)"),
	),
)

var profileGetToolDef = mcp.NewTool("profile_get",
	mcp.WithDescription("Retrieve a rider profile by name."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Profile name (case-insensitive)"),
	),
)

var profileListToolDef = mcp.NewTool("profile_list",
	mcp.WithDescription("List all stored rider profiles."),
)

var profileDeleteToolDef = mcp.NewTool("profile_delete",
	mcp.WithDescription("Delete a rider profile by name. Conversion history keeps its records."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Profile name (case-insensitive)"),
	),
)

var historyToolDef = mcp.NewTool("history_list",
	mcp.WithDescription("List recent conversions, newest first."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum entries to return (default 20, capped at 100)"),
	),
)
