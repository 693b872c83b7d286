package server

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/dock-cli/internal/model"
	"github.com/mj1618/dock-cli/internal/output"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("dock_items",
			mcp.WithDescription("List dock items: pinned entries in dock order, then running applications. Each item has its identity, name, pid when running, and badge when set."),
			mcp.WithBoolean("running", mcp.Description("Only items with a running process")),
			mcp.WithBoolean("persistent", mcp.Description("Only pinned items")),
			mcp.WithBoolean("badged", mcp.Description("Only items with a non-zero badge")),
			mcp.WithString("kind", mcp.Description("Comma-separated kinds: app, file, directory, trash")),
			mcp.WithString("text", mcp.Description("Case-insensitive match on name or identity")),
		),
		s.handleItems,
	)

	s.mcp.AddTool(
		mcp.NewTool("dock_badges",
			mcp.WithDescription("List dock items that show a notification badge, with their counts"),
			mcp.WithBoolean("refresh", mcp.Description("Read badges now instead of returning the last refresh")),
		),
		s.handleBadges,
	)

	s.mcp.AddTool(
		mcp.NewTool("dock_reload",
			mcp.WithDescription("Re-read running applications and pinned items, then return the dock"),
		),
		s.handleReload,
	)

	s.mcp.AddTool(
		mcp.NewTool("dock_launch",
			mcp.WithDescription("Launch an application by bundle identifier, or open a file:// identity"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Item identity, e.g. 'com.apple.Safari' or 'file:///Users/me/Downloads'")),
		),
		s.handleLaunch,
	)
}

func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func (s *Server) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.CallTimeout)
}

func (s *Server) listResult(items []model.ItemView, err error) output.ListResult {
	result := output.ListResult{
		Domain: s.cfg.Domain,
		TS:     time.Now().Unix(),
		Items:  items,
	}
	if result.Items == nil {
		result.Items = []model.ItemView{}
	}
	if err != nil {
		result.Errors = []string{err.Error()}
	}
	return result
}

func (s *Server) handleItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	filter := model.ItemFilter{
		Running:    BoolParam(params, "running", false),
		Persistent: BoolParam(params, "persistent", false),
		Badged:     BoolParam(params, "badged", false),
		Kinds:      model.ParseKinds(StringParam(params, "kind", "")),
		Text:       StringParam(params, "text", ""),
	}

	ctx, cancel := s.callContext(ctx)
	defer cancel()
	items, err := s.engine.Items(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toText(s.listResult(model.FilterItems(items, filter), nil))), nil
}

func (s *Server) handleBadges(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	badged := s.snapshot.Badged()
	if BoolParam(params, "refresh", false) {
		ctx, cancel := s.callContext(ctx)
		defer cancel()
		var err error
		if badged, err = s.engine.SyncRefreshBadges(ctx); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	result := output.BadgesResult{TS: time.Now().Unix(), Items: output.BadgeEntries(badged)}
	return mcp.NewToolResultText(toText(result)), nil
}

func (s *Server) handleReload(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()
	items, err := s.engine.SyncReload(ctx)
	if items == nil && err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// Source failures still produce a usable dock; report them alongside it.
	return mcp.NewToolResultText(toText(s.listResult(items, err))), nil
}

func (s *Server) handleLaunch(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := model.Identity(StringParam(request.GetArguments(), "id", ""))
	result := output.LaunchResult{Action: output.LaunchAction(id), Identity: id}
	if id == "" {
		result.Error = "id is required"
		return mcp.NewToolResultError(toText(result)), nil
	}
	if !s.engine.Launch(id) {
		result.Error = fmt.Sprintf("the system did not accept %s", id)
		return mcp.NewToolResultError(toText(result)), nil
	}
	result.OK = true
	return mcp.NewToolResultText(toText(result)), nil
}
