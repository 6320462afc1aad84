// Package mcp exposes the catalog to MCP clients over stdio.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bookmatch/bookmatch/internal/catalog"
	"github.com/bookmatch/bookmatch/internal/logging"
	"github.com/bookmatch/bookmatch/internal/recommend"
	"github.com/bookmatch/bookmatch/internal/search"
	"github.com/bookmatch/bookmatch/internal/usecase"
)

// Server wraps the MCP server with catalog tools for one user.
type Server struct {
	server   *mcp.Server
	library  *usecase.Library
	username string
}

// NewServer creates a server whose history and recommendation tools act on
// behalf of username.
func NewServer(library *usecase.Library, username, version string) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "bookmatch",
		Version: version,
	}, nil)

	s := &Server{
		server:   mcpServer,
		library:  library,
		username: username,
	}
	s.registerTools()

	return s
}

// Run serves requests on stdin/stdout until ctx is done or the client leaves.
func (s *Server) Run(ctx context.Context) error {
	logging.Info().Str("user", s.username).Msg("mcp server starting")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "book_search",
		Description: "Search the catalog by approximate title match",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "book_info",
		Description: "Show a book by ISBN and record it in the user's view history",
	}, s.handleInfo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "book_recommend",
		Description: "Recommend unread books from the user's view history",
	}, s.handleRecommend)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "history_list",
		Description: "List the books the user has viewed, oldest first",
	}, s.handleHistory)
}

type SearchInput struct {
	Query     string   `json:"query" jsonschema:"the title to look for"`
	Limit     *int     `json:"limit,omitempty" jsonschema:"maximum number of results, 0 for no limit"`
	Threshold *float64 `json:"threshold,omitempty" jsonschema:"minimum similarity in [0, 1), exclusive"`
}

type SearchOutput struct {
	Results []search.Result `json:"results"`
}

type InfoInput struct {
	ISBN   string `json:"isbn" jsonschema:"the ISBN of the book"`
	Record *bool  `json:"record,omitempty" jsonschema:"record the view in history, default true"`
}

type InfoOutput struct {
	Book catalog.Book `json:"book"`
}

type RecommendInput struct{}

type RecommendOutput struct {
	Recommendations []recommend.Item   `json:"recommendations"`
	Strategy        recommend.Strategy `json:"strategy"`
}

type HistoryInput struct{}

type HistoryOutput struct {
	Entries []usecase.HistoryItem `json:"entries"`
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.library.Search(input.Query, usecase.SearchOptions{
		Limit:     input.Limit,
		Threshold: input.Threshold,
	})
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("failed to search: %w", err)
	}
	return nil, SearchOutput{Results: results}, nil
}

func (s *Server) handleInfo(ctx context.Context, req *mcp.CallToolRequest, input InfoInput) (*mcp.CallToolResult, InfoOutput, error) {
	username := s.username
	if input.Record != nil && !*input.Record {
		username = ""
	}

	book, err := s.library.ViewBook(ctx, username, input.ISBN)
	if err != nil {
		return nil, InfoOutput{}, fmt.Errorf("failed to get book: %w", err)
	}
	return nil, InfoOutput{Book: book}, nil
}

func (s *Server) handleRecommend(ctx context.Context, req *mcp.CallToolRequest, input RecommendInput) (*mcp.CallToolResult, RecommendOutput, error) {
	result, err := s.library.Recommend(s.username)
	if err != nil {
		return nil, RecommendOutput{}, fmt.Errorf("failed to recommend: %w", err)
	}
	return nil, RecommendOutput{Recommendations: result.Items, Strategy: result.Strategy}, nil
}

func (s *Server) handleHistory(ctx context.Context, req *mcp.CallToolRequest, input HistoryInput) (*mcp.CallToolResult, HistoryOutput, error) {
	items, err := s.library.History(s.username)
	if err != nil {
		return nil, HistoryOutput{}, fmt.Errorf("failed to list history: %w", err)
	}
	return nil, HistoryOutput{Entries: items}, nil
}
