package ops

import (
	"database/sql"
	"strings"

	"github.com/hpungsan/zwogen/internal/db"
	"github.com/hpungsan/zwogen/internal/errors"
)

// ProfileSetInput contains parameters for the ProfileSet operation.
type ProfileSetInput struct {
	Name     string
	FTPWatts int
}

// ProfileSetOutput contains the stored profile.
type ProfileSetOutput struct {
	Profile db.Profile `json:"profile"`
}

// ProfileSet creates a profile or updates the FTP of an existing one.
func ProfileSet(database *sql.DB, input ProfileSetInput) (*ProfileSetOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.NewInvalidRequest("profile name is required")
	}
	if input.FTPWatts <= 0 {
		return nil, errors.NewInvalidProfile(input.FTPWatts)
	}

	p := &db.Profile{
		NameNorm: db.NormalizeProfileName(name),
		NameRaw:  name,
		FTPWatts: input.FTPWatts,
	}
	if existing, err := db.GetProfile(database, p.NameNorm); err == nil {
		p.CreatedAt = existing.CreatedAt
	}
	if err := db.UpsertProfile(database, p); err != nil {
		return nil, err
	}
	return &ProfileSetOutput{Profile: *p}, nil
}

// ProfileGetOutput contains one profile.
type ProfileGetOutput struct {
	Profile db.Profile `json:"profile"`
}

// ProfileGet retrieves a profile by name.
func ProfileGet(database *sql.DB, name string) (*ProfileGetOutput, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewInvalidRequest("profile name is required")
	}

	p, err := db.GetProfile(database, db.NormalizeProfileName(name))
	if err != nil {
		return nil, err
	}
	return &ProfileGetOutput{Profile: *p}, nil
}

// ProfileListOutput contains all profiles.
type ProfileListOutput struct {
	Profiles []db.Profile `json:"profiles"`
	Count    int          `json:"count"`
}

// ProfileList lists all stored profiles.
func ProfileList(database *sql.DB) (*ProfileListOutput, error) {
	profiles, err := db.ListProfiles(database)
	if err != nil {
		return nil, err
	}
	return &ProfileListOutput{Profiles: profiles, Count: len(profiles)}, nil
}

// ProfileDeleteOutput confirms a deletion.
type ProfileDeleteOutput struct {
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

// ProfileDelete removes a profile by name.
func ProfileDelete(database *sql.DB, name string) (*ProfileDeleteOutput, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewInvalidRequest("profile name is required")
	}

	norm := db.NormalizeProfileName(name)
	if err := db.DeleteProfile(database, norm); err != nil {
		return nil, err
	}
	return &ProfileDeleteOutput{Name: norm, Deleted: true}, nil
}
