package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/lexigraph/etymograph/internal/graph"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve graph lookups to MCP clients over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := graph.OpenReadOnly(resolveDB(cmd, cfg))
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		s := server.NewMCPServer("etymograph", "0.1.0",
			server.WithToolCapabilities(false),
		)
		s.AddTool(lookupWordTool(store))
		s.AddTool(nodeEdgesTool(store))
		s.AddTool(resolveReferenceTool(store))

		return server.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func lookupWordTool(store *graph.Store) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("lookup_word",
		mcp.WithDescription("Find graph nodes by spelling, optionally narrowed to one language code."),
		mcp.WithString("word", mcp.Required(), mcp.Description("The spelling to look up")),
		mcp.WithString("lang_code", mcp.Description("Language code filter, e.g. \"en\"")),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		word, err := req.RequireString("word")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		nodes, err := store.NodesByWord(word, req.GetString("lang_code", ""))
		if err != nil {
			return nil, err
		}
		if len(nodes) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return mcp.NewToolResultText(oj.JSON(nodes, 2)), nil
	}
	return tool, handler
}

func nodeEdgesTool(store *graph.Store) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("node_edges",
		mcp.WithDescription("List the edges leaving or arriving at a node."),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("Node id, e.g. \"en:water:noun:0\"")),
		mcp.WithString("direction", mcp.Description("\"out\" (default) or \"in\"")),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		nodeID, err := req.RequireString("node_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if _, err := store.GetNode(nodeID); err != nil {
			if errors.Is(err, graph.ErrNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("no node %q", nodeID)), nil
			}
			return nil, err
		}

		var edges []graph.Edge
		switch dir := req.GetString("direction", "out"); dir {
		case "out":
			edges, err = store.EdgesFrom(nodeID)
		case "in":
			edges, err = store.EdgesTo(nodeID)
		default:
			return mcp.NewToolResultError(fmt.Sprintf("unknown direction %q", dir)), nil
		}
		if err != nil {
			return nil, err
		}
		if len(edges) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return mcp.NewToolResultText(oj.JSON(edges, 2)), nil
	}
	return tool, handler
}

func resolveReferenceTool(store *graph.Store) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("resolve_reference",
		mcp.WithDescription("Resolve a (language, word) reference to a node id using the graph's precedence rules."),
		mcp.WithString("lang_code", mcp.Required(), mcp.Description("Language code of the referenced word")),
		mcp.WithString("word", mcp.Required(), mcp.Description("The referenced spelling")),
		mcp.WithString("pos", mcp.Description("Part-of-speech hint for disambiguation")),
	)
	resolver := graph.NewResolver(store)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		langCode, err := req.RequireString("lang_code")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		word, err := req.RequireString("word")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		nodeID, err := resolver.Resolve(langCode, word, req.GetString("pos", ""))
		if err != nil {
			return nil, err
		}
		if nodeID == "" {
			return mcp.NewToolResultText("unresolved"), nil
		}
		return mcp.NewToolResultText(nodeID), nil
	}
	return tool, handler
}
