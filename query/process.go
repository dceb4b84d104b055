package query

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/treescope/treescope/internal/analysis"
)

// FileReport pairs a query file with its analysis report.
type FileReport struct {
	Path   string          `json:"path"`
	Query  string          `json:"-"`
	Report analysis.Report `json:"report"`
}

// Processor turns one query file into reports.
type Processor func(engine QueryEngine, path string) ([]FileReport, error)

// ProcessFiles runs the processor over every given path, descending into
// directories.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine QueryEngine,
	paths []string,
	processor Processor,
) ([]FileReport, error) {
	var allReports []FileReport
	for _, path := range paths {
		reports, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allReports = append(allReports, reports...)
	}
	return allReports, nil
}

// ProcessPath processes a single file, or walks a directory and processes
// every query file in it on a bounded worker pool with a progress bar.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine QueryEngine,
	path string,
	processor Processor,
) ([]FileReport, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	var reports []FileReport
	if info.IsDir() {
		files, err := CollectQueryFiles(path)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, nil
		}

		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription(path),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))

		resultChan := make(chan []FileReport, len(files))
		errorChan := make(chan error, len(files))

		maxWorkers := runtime.NumCPU()
		sem := make(chan struct{}, maxWorkers)

		for _, filePath := range files {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
				sem <- struct{}{}
				go func(fp string) {
					defer func() { <-sem }()

					fileReports, err := processor(engine, fp)
					if err != nil {
						if logger != nil {
							logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
						}
						errorChan <- err
						resultChan <- nil
					} else {
						resultChan <- fileReports
						errorChan <- nil
					}
					_ = bar.Add(1)
				}(filePath)
			}
		}

		for range files {
			if err := <-errorChan; err != nil {
				continue
			}
			if result := <-resultChan; result != nil {
				reports = append(reports, result...)
			}
		}

		fmt.Println()
		return reports, nil
	}

	fileReports, err := processor(engine, path)
	if err != nil {
		return nil, err
	}
	return append(reports, fileReports...), nil
}

// CollectQueryFiles walks root and returns every query file under it.
func CollectQueryFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && isQueryFile(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

var desiredExtensions = map[string]bool{
	".scm":   true,
	".query": true,
	".tsq":   true,
}

func isQueryFile(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}

// AnalyzeFile is the standard processor: read the query file and produce its
// analysis report.
func AnalyzeFile(engine QueryEngine, path string) ([]FileReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return []FileReport{{
		Path:   path,
		Query:  string(content),
		Report: engine.Analyze(string(content)),
	}}, nil
}
