package ops

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/hpungsan/zwogen/internal/activity"
	"github.com/hpungsan/zwogen/internal/config"
	"github.com/hpungsan/zwogen/internal/db"
	"github.com/hpungsan/zwogen/internal/errors"
	"github.com/hpungsan/zwogen/internal/workout"
	"github.com/hpungsan/zwogen/internal/zwo"
)

// ConvertInput contains parameters for the Convert operation.
type ConvertInput struct {
	SourcePath  string // .json (Strava streams) or .fit activity file
	OutputPath  string // optional, default: source path with .zwo extension
	Profile     string // stored profile name; mutually exclusive with FTPWatts
	FTPWatts    int
	Name        string // optional workout name, default: source filename
	Description string
}

// ConvertOutput contains the result of the Convert operation.
type ConvertOutput struct {
	ID           string  `json:"id"`
	OutputPath   string  `json:"output_path"`
	Name         string  `json:"name"`
	FTPWatts     int     `json:"ftp_watts"`
	ProfileName  *string `json:"profile_name,omitempty"`
	SegmentCount int     `json:"segment_count"`
	TotalSeconds int     `json:"total_seconds"`
}

// Convert runs the full pipeline: load the activity, resample to 1 Hz,
// normalize by FTP, segment, serialize to a Zwift workout file, and record
// the conversion in history.
func Convert(ctx context.Context, database *sql.DB, cfg *config.Config, input ConvertInput) (*ConvertOutput, error) {
	if input.SourcePath == "" {
		return nil, errors.NewInvalidRequest("source path is required")
	}

	ftpWatts, profileName, err := resolveFTP(database, input.Profile, input.FTPWatts)
	if err != nil {
		return nil, err
	}

	w, err := buildWorkout(ctx, cfg, input.SourcePath, input.Name, input.Description, ftpWatts)
	if err != nil {
		return nil, err
	}

	data, err := zwo.Marshal(w)
	if err != nil {
		return nil, err
	}

	outputPath := input.OutputPath
	if outputPath == "" {
		outputPath = defaultOutputPath(input.SourcePath, ".zwo")
	}
	if err := ValidateOutputPath(outputPath, ".zwo"); err != nil {
		return nil, err
	}
	if err := writeFileAtomic(outputPath, data); err != nil {
		return nil, err
	}

	id, err := generateULID()
	if err != nil {
		return nil, err
	}
	conversion := &db.Conversion{
		ID:           id,
		SourcePath:   input.SourcePath,
		OutputPath:   outputPath,
		ProfileName:  profileName,
		FTPWatts:     ftpWatts,
		SegmentCount: len(w.Segments),
		TotalSeconds: w.TotalSeconds(),
	}
	if err := db.InsertConversion(database, conversion); err != nil {
		return nil, err
	}

	log.Debug().
		Str("id", id).
		Str("source", input.SourcePath).
		Str("output", outputPath).
		Int("ftp_watts", ftpWatts).
		Int("segments", len(w.Segments)).
		Msg("conversion complete")

	return &ConvertOutput{
		ID:           id,
		OutputPath:   outputPath,
		Name:         w.Name,
		FTPWatts:     ftpWatts,
		ProfileName:  profileName,
		SegmentCount: len(w.Segments),
		TotalSeconds: w.TotalSeconds(),
	}, nil
}

// buildWorkout runs the in-memory part of the pipeline shared by Convert,
// Inspect, and Preview.
func buildWorkout(ctx context.Context, cfg *config.Config, sourcePath, name, description string, ftpWatts int) (*workout.Workout, error) {
	series, err := activity.LoadFile(sourcePath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	power := activity.Resample(series, cfg.PowerFloorWatts)
	log.Debug().
		Int("samples", len(series.Samples)).
		Int("ticks", len(power)).
		Msg("resampled activity")

	intensities, err := workout.Normalize(power, ftpWatts)
	if err != nil {
		return nil, err
	}

	segments, err := workout.Build(intensities, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("segments", len(segments)).Msg("segmented activity")

	if name == "" {
		name = deriveWorkoutName(sourcePath)
	}
	return &workout.Workout{
		Name:        name,
		Description: description,
		FTPWatts:    ftpWatts,
		Segments:    segments,
	}, nil
}
