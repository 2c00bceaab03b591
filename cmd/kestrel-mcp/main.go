package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/kestrelhq/kestrel/internal/app"
	"github.com/kestrelhq/kestrel/internal/common"
)

func main() {
	a, err := app.NewApp(os.Getenv("KESTREL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	mcpServer := server.NewMCPServer(
		"kestrel",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	logger := a.Logger

	mcpServer.AddTool(createGetVersionTool(), handleGetVersion())
	mcpServer.AddTool(createGetStockFundamentalsTool(), handleGetStockFundamentals(a.ResearchService, logger))
	mcpServer.AddTool(createGetValuationMetricsTool(), handleGetValuationMetrics(a.ResearchService, logger))
	mcpServer.AddTool(createGetTechnicalIndicatorsTool(), handleGetTechnicalIndicators(a.ResearchService, logger))
	mcpServer.AddTool(createGetInsiderOwnershipTool(), handleGetInsiderOwnership(a.ResearchService, logger))
	mcpServer.AddTool(createGetInstitutionalHoldersTool(), handleGetInstitutionalHolders(a.ResearchService, logger))
	mcpServer.AddTool(createGetShareDataTool(), handleGetShareData(a.ResearchService, logger))
	mcpServer.AddTool(createGetManagementCompensationTool(), handleGetManagementCompensation(a.ResearchService, logger))
	mcpServer.AddTool(createGetFinancialHistoryTool(), handleGetFinancialHistory(a.ResearchService, logger))
	mcpServer.AddTool(createCalculateSimilarityTool(), handleCalculateSimilarity(a.ResearchService, logger))
	mcpServer.AddTool(createFindSimilarCompaniesTool(), handleFindSimilarCompanies(a.ResearchService, logger))
	mcpServer.AddTool(createScreenStocksTool(), handleScreenStocks(a.ScreenerService, logger))

	// Blocks on stdio until the client disconnects
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
