// Package ops implements the user-facing operations: converting rides,
// inspecting and previewing the result, and managing rider profiles and
// conversion history. Both the CLI and the MCP server call into this
// package.
package ops

import (
	"crypto/rand"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/zwogen/internal/db"
	"github.com/hpungsan/zwogen/internal/errors"
)

// History pagination limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// resolveFTP resolves the rider's FTP from either a stored profile or an
// explicit watt value. Exactly one of the two must be given.
func resolveFTP(database *sql.DB, profile string, ftpWatts int) (int, *string, error) {
	profile = strings.TrimSpace(profile)
	hasProfile := profile != ""
	hasFTP := ftpWatts != 0

	if hasProfile && hasFTP {
		return 0, nil, errors.NewInvalidRequest("specify either profile or ftp, not both")
	}
	if !hasProfile && !hasFTP {
		return 0, nil, errors.NewInvalidRequest("must specify a profile name or an ftp value")
	}

	if hasFTP {
		if ftpWatts <= 0 {
			return 0, nil, errors.NewInvalidProfile(ftpWatts)
		}
		return ftpWatts, nil, nil
	}

	p, err := db.GetProfile(database, db.NormalizeProfileName(profile))
	if err != nil {
		return 0, nil, err
	}
	if p.FTPWatts <= 0 {
		return 0, nil, errors.NewInvalidProfile(p.FTPWatts)
	}
	return p.FTPWatts, &p.NameNorm, nil
}

// deriveWorkoutName turns a source file path into a workout name:
// the base filename without its extension.
func deriveWorkoutName(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// defaultOutputPath places the output next to the source file with the
// given extension.
func defaultOutputPath(sourcePath, ext string) string {
	return strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + ext
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return id.String(), nil
}
