package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/treescope/treescope/formatter"
	"github.com/treescope/treescope/internal/analysis"
	"github.com/treescope/treescope/query"
)

// analyze command flags
var (
	threshold         string
	analyzeJsonOutput bool
	analyzeOutPath    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [paths...]",
	Short: "Run complexity and performance analysis on query files",
	Long: `Scores each query's complexity (low/medium/high), estimates its
evaluation cost, and reports optimization suggestions.
Example) treescope analyze --threshold medium queries/`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		runComplexityAnalysis(ctx, logger, args, threshold, analyzeJsonOutput, analyzeOutPath)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&threshold, "threshold", "", "Fail when a query's complexity tier exceeds this one (low, medium, high)")
	analyzeCmd.Flags().BoolVar(&analyzeJsonOutput, "json", false, "Output reports in JSON format")
	analyzeCmd.Flags().StringVarP(&analyzeOutPath, "output", "o", "", "Output path (when using JSON)")
}

func runComplexityAnalysis(ctx context.Context, logger *zap.Logger, paths []string, threshold string, isJson bool, outPath string) {
	var gate analysis.Tier
	if threshold != "" {
		t, ok := analysis.ParseTier(threshold)
		if !ok {
			fmt.Printf("error: unknown complexity tier %q\n", threshold)
			os.Exit(1)
		}
		gate = t
	}

	engine, err := query.New(cfgFile)
	if err != nil {
		logger.Fatal("Failed to initialize engine", zap.Error(err))
	}

	reports, err := query.ProcessFiles(ctx, logger, engine, paths, query.AnalyzeFile)
	if err != nil {
		logger.Error("Error processing query files", zap.Error(err))
		os.Exit(1)
	}

	if isJson {
		printJSON(reports, outPath)
	} else {
		for _, fr := range reports {
			fmt.Print(formatter.GenerateFormattedReport(fr.Path, fr.Report))
		}
	}

	if gate != "" {
		for _, fr := range reports {
			if fr.Report.Tier.Exceeds(gate) {
				os.Exit(1)
			}
		}
	}
}
