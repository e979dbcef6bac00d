package ops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/zwogen/internal/config"
	"github.com/hpungsan/zwogen/internal/db"
	"github.com/hpungsan/zwogen/internal/errors"
	"github.com/hpungsan/zwogen/internal/zwo"
)

// TestFullWorkflow exercises the complete lifecycle:
// profile set → inspect → convert → history → profile delete
func TestFullWorkflow(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	require.NoError(t, err)
	defer database.Close()

	cfg := config.DefaultConfig()
	ctx := context.Background()

	dir := t.TempDir()
	source := writeRideFixture(t, dir)

	// 1. Store a profile
	setOut, err := ProfileSet(database, ProfileSetInput{Name: "Alex", FTPWatts: 300})
	require.NoError(t, err)
	require.Equal(t, "alex", setOut.Profile.NameNorm)

	// 2. Inspect the ride with the stored profile
	inspectOut, err := Inspect(ctx, database, cfg, InspectInput{
		SourcePath: source,
		Profile:    "alex",
	})
	require.NoError(t, err)
	require.Equal(t, 300, inspectOut.FTPWatts)
	require.NotEmpty(t, inspectOut.Segments)
	require.Equal(t, 599, inspectOut.TotalSeconds)

	// 3. Convert for real
	convertOut, err := Convert(ctx, database, cfg, ConvertInput{
		SourcePath: source,
		Profile:    "alex",
	})
	require.NoError(t, err)
	require.Len(t, convertOut.ID, 26)
	require.Equal(t, inspectOut.SegmentCount, convertOut.SegmentCount)

	// The written file parses back to the same segment structure.
	data, err := os.ReadFile(convertOut.OutputPath)
	require.NoError(t, err)
	parsed, err := zwo.Parse(data)
	require.NoError(t, err)
	require.Equal(t, inspectOut.Segments, parsed.Segments)

	// 4. History shows the conversion with the profile attached
	historyOut, err := History(database, HistoryInput{})
	require.NoError(t, err)
	require.Equal(t, 1, historyOut.Count)
	require.Equal(t, convertOut.ID, historyOut.Conversions[0].ID)
	require.NotNil(t, historyOut.Conversions[0].ProfileName)
	require.Equal(t, "alex", *historyOut.Conversions[0].ProfileName)

	// 5. Delete the profile; history keeps its record
	_, err = ProfileDelete(database, "alex")
	require.NoError(t, err)
	_, err = ProfileGet(database, "alex")
	require.True(t, errors.Is(err, errors.ErrNotFound))

	historyOut, err = History(database, HistoryInput{})
	require.NoError(t, err)
	require.Equal(t, 1, historyOut.Count)
}

func TestWorkflow_ConvertOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	require.NoError(t, err)
	defer database.Close()

	cfg := config.DefaultConfig()
	ctx := context.Background()

	dir := t.TempDir()
	source := writeRideFixture(t, dir)
	output := filepath.Join(dir, "ride.zwo")

	for i := 0; i < 2; i++ {
		_, err := Convert(ctx, database, cfg, ConvertInput{
			SourcePath: source,
			OutputPath: output,
			FTPWatts:   300,
		})
		require.NoError(t, err)
	}

	historyOut, err := History(database, HistoryInput{})
	require.NoError(t, err)
	require.Equal(t, 2, historyOut.Count)
}
