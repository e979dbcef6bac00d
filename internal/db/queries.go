package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/hpungsan/zwogen/internal/errors"
)

// Profile is a stored rider profile. FTP lookups during conversion go
// through the normalized name.
type Profile struct {
	NameNorm  string `json:"name"`
	NameRaw   string `json:"name_raw"`
	FTPWatts  int    `json:"ftp_watts"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// Conversion is one row of the conversion history log.
type Conversion struct {
	ID           string  `json:"id"`
	SourcePath   string  `json:"source_path"`
	OutputPath   string  `json:"output_path"`
	ProfileName  *string `json:"profile_name,omitempty"`
	FTPWatts     int     `json:"ftp_watts"`
	SegmentCount int     `json:"segment_count"`
	TotalSeconds int     `json:"total_seconds"`
	CreatedAt    int64   `json:"created_at"`
}

// NormalizeProfileName produces the lookup key for a profile name:
// trimmed, lowercased, inner whitespace collapsed.
func NormalizeProfileName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// UpsertProfile inserts a profile or updates the FTP of an existing one.
// CreatedAt is preserved on update; UpdatedAt always moves forward.
func UpsertProfile(db *sql.DB, p *Profile) error {
	now := time.Now().Unix()
	if p.CreatedAt == 0 {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	query := `
		INSERT INTO profiles (name_norm, name_raw, ftp_watts, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name_norm) DO UPDATE SET
			name_raw = excluded.name_raw,
			ftp_watts = excluded.ftp_watts,
			updated_at = excluded.updated_at
	`

	if _, err := db.Exec(query, p.NameNorm, p.NameRaw, p.FTPWatts, p.CreatedAt, p.UpdatedAt); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetProfile retrieves a profile by normalized name.
func GetProfile(db *sql.DB, nameNorm string) (*Profile, error) {
	query := `
		SELECT name_norm, name_raw, ftp_watts, created_at, updated_at
		FROM profiles
		WHERE name_norm = ?
	`

	var p Profile
	err := db.QueryRow(query, nameNorm).Scan(
		&p.NameNorm, &p.NameRaw, &p.FTPWatts, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(nameNorm)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &p, nil
}

// ListProfiles returns all profiles ordered by name.
func ListProfiles(db *sql.DB) ([]Profile, error) {
	query := `
		SELECT name_norm, name_raw, ftp_watts, created_at, updated_at
		FROM profiles
		ORDER BY name_norm
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.NameNorm, &p.NameRaw, &p.FTPWatts, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return profiles, nil
}

// DeleteProfile removes a profile by normalized name.
func DeleteProfile(db *sql.DB, nameNorm string) error {
	result, err := db.Exec(`DELETE FROM profiles WHERE name_norm = ?`, nameNorm)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(nameNorm)
	}
	return nil
}

// InsertConversion records a completed conversion.
func InsertConversion(db *sql.DB, c *Conversion) error {
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().Unix()
	}

	var profileName sql.NullString
	if c.ProfileName != nil {
		profileName = sql.NullString{String: *c.ProfileName, Valid: true}
	}

	query := `
		INSERT INTO conversions (
			id, source_path, output_path, profile_name,
			ftp_watts, segment_count, total_seconds, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		c.ID, c.SourcePath, c.OutputPath, profileName,
		c.FTPWatts, c.SegmentCount, c.TotalSeconds, c.CreatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ListConversions returns the most recent conversions, newest first.
// A limit of 0 applies the default of 20.
func ListConversions(db *sql.DB, limit int) ([]Conversion, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, source_path, output_path, profile_name,
			ftp_watts, segment_count, total_seconds, created_at
		FROM conversions
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var conversions []Conversion
	for rows.Next() {
		var (
			c           Conversion
			profileName sql.NullString
		)
		err := rows.Scan(
			&c.ID, &c.SourcePath, &c.OutputPath, &profileName,
			&c.FTPWatts, &c.SegmentCount, &c.TotalSeconds, &c.CreatedAt,
		)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		if profileName.Valid {
			c.ProfileName = &profileName.String
		}
		conversions = append(conversions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return conversions, nil
}
