package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/treescope/treescope/formatter"
	"github.com/treescope/treescope/query"
)

var (
	queryPath     string
	matchesPath   string
	runJsonOutput bool
	runOutPath    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate a query's predicates and directives against a match set",
	Long: `Reads a pattern query and a JSON match set produced by the upstream
structural matcher, filters the matches through the query's predicates, and
applies its directives.
Example) treescope run -q highlights.scm -m matches.json`,
	Run: func(cmd *cobra.Command, args []string) {
		if queryPath == "" || matchesPath == "" {
			fmt.Println("error: Please provide both --query and --matches")
			os.Exit(1)
		}

		engine, err := query.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		queryText, err := query.ReadQuery(queryPath)
		if err != nil {
			logger.Fatal("Failed to read query file", zap.String("path", queryPath), zap.Error(err))
		}
		matches, err := query.ReadMatches(matchesPath)
		if err != nil {
			logger.Fatal("Failed to read match set", zap.String("path", matchesPath), zap.Error(err))
		}

		result := engine.Evaluate(queryText, matches)

		if runJsonOutput {
			printJSON(result, runOutPath)
		} else {
			fmt.Print(formatter.FormatResult(result))
		}

		if !result.Success {
			os.Exit(1)
		}
	},
}

func init() {
	runCmd.Flags().StringVarP(&queryPath, "query", "q", "", "Query file to evaluate")
	runCmd.Flags().StringVarP(&matchesPath, "matches", "m", "", "JSON file with the structural match set")
	runCmd.Flags().BoolVar(&runJsonOutput, "json", false, "Output the result in JSON format")
	runCmd.Flags().StringVarP(&runOutPath, "output", "o", "", "Output path (when using JSON)")
}

// printJSON writes v as indented JSON to outPath, or stdout when empty.
func printJSON(v any, outPath string) {
	d, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Error("Error marshaling output to JSON", zap.Error(err))
		os.Exit(1)
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, d, 0o644); err != nil {
			logger.Error("Error writing output file", zap.String("path", outPath), zap.Error(err))
			os.Exit(1)
		}
		return
	}
	fmt.Println(string(d))
}
