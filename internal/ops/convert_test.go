package ops

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hpungsan/zwogen/internal/config"
	"github.com/hpungsan/zwogen/internal/db"
	"github.com/hpungsan/zwogen/internal/errors"
	"github.com/hpungsan/zwogen/internal/zwo"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// writeRideFixture writes a 600-second two-step ride as a Strava streams
// JSON file: 300s at 150W, then 300s at 240W.
func writeRideFixture(t *testing.T, dir string) string {
	t.Helper()

	times := make([]int, 600)
	watts := make([]int, 600)
	for i := range times {
		times[i] = i
		if i < 300 {
			watts[i] = 150
		} else {
			watts[i] = 240
		}
	}

	data, err := json.Marshal(map[string]any{"time": times, "watts": watts})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	path := filepath.Join(dir, "morning-ride.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestConvert(t *testing.T) {
	database := openTestDB(t)
	dir := t.TempDir()
	source := writeRideFixture(t, dir)
	output := filepath.Join(dir, "morning-ride.zwo")

	result, err := Convert(context.Background(), database, config.DefaultConfig(), ConvertInput{
		SourcePath: source,
		OutputPath: output,
		FTPWatts:   300,
	})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	if result.OutputPath != output {
		t.Errorf("OutputPath = %s, want %s", result.OutputPath, output)
	}
	if result.Name != "morning-ride" {
		t.Errorf("Name = %s, want morning-ride", result.Name)
	}
	if len(result.ID) != 26 {
		t.Errorf("ID length = %d, want 26 (ULID)", len(result.ID))
	}
	// The fixture spans 599 whole seconds; the segments must cover it.
	if result.TotalSeconds != 599 {
		t.Errorf("TotalSeconds = %d, want 599", result.TotalSeconds)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	parsed, err := zwo.Parse(data)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(parsed.Segments) != result.SegmentCount {
		t.Errorf("parsed segments = %d, want %d", len(parsed.Segments), result.SegmentCount)
	}
	if parsed.TotalSeconds() != result.TotalSeconds {
		t.Errorf("parsed TotalSeconds = %d, want %d", parsed.TotalSeconds(), result.TotalSeconds)
	}

	history, err := History(database, HistoryInput{})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if history.Count != 1 {
		t.Fatalf("history count = %d, want 1", history.Count)
	}
	if history.Conversions[0].ID != result.ID {
		t.Errorf("history ID = %s, want %s", history.Conversions[0].ID, result.ID)
	}
}

func TestConvert_DefaultOutputPath(t *testing.T) {
	database := openTestDB(t)
	dir := t.TempDir()
	source := writeRideFixture(t, dir)

	result, err := Convert(context.Background(), database, config.DefaultConfig(), ConvertInput{
		SourcePath: source,
		FTPWatts:   300,
	})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	want := filepath.Join(dir, "morning-ride.zwo")
	if result.OutputPath != want {
		t.Errorf("OutputPath = %s, want %s", result.OutputPath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestConvert_WithProfile(t *testing.T) {
	database := openTestDB(t)
	dir := t.TempDir()
	source := writeRideFixture(t, dir)

	if _, err := ProfileSet(database, ProfileSetInput{Name: "Alex", FTPWatts: 300}); err != nil {
		t.Fatalf("ProfileSet failed: %v", err)
	}

	result, err := Convert(context.Background(), database, config.DefaultConfig(), ConvertInput{
		SourcePath: source,
		Profile:    "alex",
		FTPWatts:   0,
	})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if result.FTPWatts != 300 {
		t.Errorf("FTPWatts = %d, want 300", result.FTPWatts)
	}
	if result.ProfileName == nil || *result.ProfileName != "alex" {
		t.Errorf("ProfileName = %v, want alex", result.ProfileName)
	}
}

func TestConvert_Errors(t *testing.T) {
	database := openTestDB(t)
	dir := t.TempDir()
	source := writeRideFixture(t, dir)

	shortPath := filepath.Join(dir, "short.json")
	if err := os.WriteFile(shortPath, []byte(`{"time":[0,1,2],"watts":[100,110,120]}`), 0600); err != nil {
		t.Fatalf("write short fixture: %v", err)
	}

	tests := []struct {
		name  string
		input ConvertInput
		code  errors.ErrorCode
	}{
		{"no source", ConvertInput{FTPWatts: 300}, errors.ErrInvalidRequest},
		{"no ftp or profile", ConvertInput{SourcePath: source}, errors.ErrInvalidRequest},
		{"both ftp and profile", ConvertInput{SourcePath: source, Profile: "alex", FTPWatts: 300}, errors.ErrInvalidRequest},
		{"negative ftp", ConvertInput{SourcePath: source, FTPWatts: -5}, errors.ErrInvalidProfile},
		{"unknown profile", ConvertInput{SourcePath: source, Profile: "nobody"}, errors.ErrNotFound},
		{"bad output extension", ConvertInput{SourcePath: source, FTPWatts: 300, OutputPath: filepath.Join(dir, "out.txt")}, errors.ErrInvalidRequest},
		{"traversal output", ConvertInput{SourcePath: source, FTPWatts: 300, OutputPath: dir + "/../escape.zwo"}, errors.ErrInvalidRequest},
		{"too short ride", ConvertInput{SourcePath: shortPath, FTPWatts: 300}, errors.ErrInsufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(context.Background(), database, config.DefaultConfig(), tt.input)
			if err == nil {
				t.Fatal("Convert should fail")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}
