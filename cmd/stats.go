package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/treescope/treescope/formatter"
	"github.com/treescope/treescope/query"
)

var (
	statsJsonOutput bool
	statsOutPath    string
)

var statsCmd = &cobra.Command{
	Use:   "stats [paths...]",
	Short: "Aggregate clause usage statistics across query files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		engine, err := query.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		var queries []string
		for _, path := range args {
			info, err := os.Stat(path)
			if err != nil {
				logger.Fatal("Error accessing path", zap.String("path", path), zap.Error(err))
			}

			files := []string{path}
			if info.IsDir() {
				files, err = query.CollectQueryFiles(path)
				if err != nil {
					logger.Fatal("Error walking directory", zap.String("path", path), zap.Error(err))
				}
			}
			for _, f := range files {
				text, err := query.ReadQuery(f)
				if err != nil {
					logger.Error("Error reading query file", zap.String("file", f), zap.Error(err))
					continue
				}
				queries = append(queries, text)
			}
		}

		st := engine.Statistics(queries)
		if statsJsonOutput {
			printJSON(st, statsOutPath)
		} else {
			fmt.Print(formatter.GenerateFormattedStatistics(st))
		}
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJsonOutput, "json", false, "Output statistics in JSON format")
	statsCmd.Flags().StringVarP(&statsOutPath, "output", "o", "", "Output path (when using JSON)")
}
