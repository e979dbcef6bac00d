package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/zwogen/internal/config"
	"github.com/hpungsan/zwogen/internal/errors"
	"github.com/hpungsan/zwogen/internal/workout"
)

// InspectInput contains parameters for the Inspect operation.
type InspectInput struct {
	SourcePath string
	Profile    string
	FTPWatts   int
	Name       string
}

// InspectOutput contains the segmentation result without writing anything.
type InspectOutput struct {
	Name         string            `json:"name"`
	FTPWatts     int               `json:"ftp_watts"`
	ProfileName  *string           `json:"profile_name,omitempty"`
	SegmentCount int               `json:"segment_count"`
	TotalSeconds int               `json:"total_seconds"`
	Segments     []workout.Segment `json:"segments"`
}

// Inspect runs the conversion pipeline up to segmentation and reports the
// segment list. Nothing is written to disk or recorded in history.
func Inspect(ctx context.Context, database *sql.DB, cfg *config.Config, input InspectInput) (*InspectOutput, error) {
	if input.SourcePath == "" {
		return nil, errors.NewInvalidRequest("source path is required")
	}

	ftpWatts, profileName, err := resolveFTP(database, input.Profile, input.FTPWatts)
	if err != nil {
		return nil, err
	}

	w, err := buildWorkout(ctx, cfg, input.SourcePath, input.Name, "", ftpWatts)
	if err != nil {
		return nil, err
	}

	return &InspectOutput{
		Name:         w.Name,
		FTPWatts:     ftpWatts,
		ProfileName:  profileName,
		SegmentCount: len(w.Segments),
		TotalSeconds: w.TotalSeconds(),
		Segments:     w.Segments,
	}, nil
}
