package ops

import (
	"testing"

	"github.com/hpungsan/zwogen/internal/errors"
)

func TestProfileSetGetDelete(t *testing.T) {
	database := openTestDB(t)

	set, err := ProfileSet(database, ProfileSetInput{Name: "  Alex Rider ", FTPWatts: 250})
	if err != nil {
		t.Fatalf("ProfileSet failed: %v", err)
	}
	if set.Profile.NameNorm != "alex rider" {
		t.Errorf("NameNorm = %s, want alex rider", set.Profile.NameNorm)
	}

	got, err := ProfileGet(database, "ALEX RIDER")
	if err != nil {
		t.Fatalf("ProfileGet failed: %v", err)
	}
	if got.Profile.FTPWatts != 250 {
		t.Errorf("FTPWatts = %d, want 250", got.Profile.FTPWatts)
	}

	// Updating FTP keeps the original creation time.
	updated, err := ProfileSet(database, ProfileSetInput{Name: "alex rider", FTPWatts: 265})
	if err != nil {
		t.Fatalf("ProfileSet update failed: %v", err)
	}
	if updated.Profile.FTPWatts != 265 {
		t.Errorf("FTPWatts = %d, want 265", updated.Profile.FTPWatts)
	}
	if updated.Profile.CreatedAt != set.Profile.CreatedAt {
		t.Errorf("CreatedAt changed on update: %d -> %d", set.Profile.CreatedAt, updated.Profile.CreatedAt)
	}

	deleted, err := ProfileDelete(database, "Alex Rider")
	if err != nil {
		t.Fatalf("ProfileDelete failed: %v", err)
	}
	if !deleted.Deleted {
		t.Error("Deleted = false, want true")
	}
	if _, err := ProfileGet(database, "alex rider"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("profile still present after delete: %v", err)
	}
}

func TestProfileSet_Invalid(t *testing.T) {
	database := openTestDB(t)

	if _, err := ProfileSet(database, ProfileSetInput{Name: "", FTPWatts: 250}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("empty name error = %v, want INVALID_REQUEST", err)
	}
	for _, ftp := range []int{0, -1} {
		if _, err := ProfileSet(database, ProfileSetInput{Name: "alex", FTPWatts: ftp}); !errors.Is(err, errors.ErrInvalidProfile) {
			t.Errorf("ftp=%d error = %v, want INVALID_PROFILE", ftp, err)
		}
	}
}

func TestProfileList(t *testing.T) {
	database := openTestDB(t)

	empty, err := ProfileList(database)
	if err != nil {
		t.Fatalf("ProfileList failed: %v", err)
	}
	if empty.Count != 0 {
		t.Errorf("Count = %d, want 0", empty.Count)
	}

	for _, name := range []string{"zoe", "alex"} {
		if _, err := ProfileSet(database, ProfileSetInput{Name: name, FTPWatts: 200}); err != nil {
			t.Fatalf("ProfileSet(%s) failed: %v", name, err)
		}
	}

	list, err := ProfileList(database)
	if err != nil {
		t.Fatalf("ProfileList failed: %v", err)
	}
	if list.Count != 2 {
		t.Fatalf("Count = %d, want 2", list.Count)
	}
	if list.Profiles[0].NameNorm != "alex" || list.Profiles[1].NameNorm != "zoe" {
		t.Errorf("profiles out of order: %+v", list.Profiles)
	}
}
