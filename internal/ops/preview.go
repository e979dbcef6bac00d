package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/zwogen/internal/chart"
	"github.com/hpungsan/zwogen/internal/config"
	"github.com/hpungsan/zwogen/internal/errors"
)

// PreviewInput contains parameters for the Preview operation.
type PreviewInput struct {
	SourcePath string
	OutputPath string // optional, default: source path with .html extension
	Profile    string
	FTPWatts   int
	Name       string
	Notes      string // markdown, rendered below the chart
}

// PreviewOutput contains the result of the Preview operation.
type PreviewOutput struct {
	OutputPath   string `json:"output_path"`
	Name         string `json:"name"`
	FTPWatts     int    `json:"ftp_watts"`
	SegmentCount int    `json:"segment_count"`
	TotalSeconds int    `json:"total_seconds"`
}

// Preview runs the pipeline and writes an HTML page with the workout's
// power profile chart instead of a trainer file. Nothing is recorded in
// history.
func Preview(ctx context.Context, database *sql.DB, cfg *config.Config, input PreviewInput) (*PreviewOutput, error) {
	if input.SourcePath == "" {
		return nil, errors.NewInvalidRequest("source path is required")
	}

	ftpWatts, _, err := resolveFTP(database, input.Profile, input.FTPWatts)
	if err != nil {
		return nil, err
	}

	w, err := buildWorkout(ctx, cfg, input.SourcePath, input.Name, "", ftpWatts)
	if err != nil {
		return nil, err
	}

	page, err := chart.RenderHTML(w, input.Notes)
	if err != nil {
		return nil, err
	}

	outputPath := input.OutputPath
	if outputPath == "" {
		outputPath = defaultOutputPath(input.SourcePath, ".html")
	}
	if err := ValidateOutputPath(outputPath, ".html"); err != nil {
		return nil, err
	}
	if err := writeFileAtomic(outputPath, page); err != nil {
		return nil, err
	}

	return &PreviewOutput{
		OutputPath:   outputPath,
		Name:         w.Name,
		FTPWatts:     ftpWatts,
		SegmentCount: len(w.Segments),
		TotalSeconds: w.TotalSeconds(),
	}, nil
}
