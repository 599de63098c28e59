package profiles

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"miniwx/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	client, err := storage.NewLocalStorageClient(filepath.Join(t.TempDir(), "profiles"))
	if err != nil {
		t.Fatalf("Failed to create storage client: %v", err)
	}
	return NewStore(client)
}

func TestSaveAndLoadProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	profile := &Profile{
		Name:         "Bay Area",
		Stations:     []string{"KSFO", "KOAK", "KSJC"},
		ShowInput:    true,
		ShowTitlebar: false,
		Units:        UnitsInHg,
	}

	if err := store.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	loaded, err := store.LoadProfile(ctx, "Bay Area")
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}

	if !reflect.DeepEqual(loaded, profile) {
		t.Errorf("Loaded profile %+v, want %+v", loaded, profile)
	}
}

func TestSaveProfileRequiresName(t *testing.T) {
	store := newTestStore(t)

	err := store.SaveProfile(context.Background(), &Profile{Units: UnitsInHg})
	if err == nil {
		t.Error("Expected error for profile without a name, got nil")
	}
}

func TestListProfiles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Home", "Work"} {
		if err := store.SaveProfile(ctx, &Profile{Name: name, Units: UnitsInHg}); err != nil {
			t.Fatalf("SaveProfile(%s) failed: %v", name, err)
		}
	}

	names, err := store.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("ListProfiles failed: %v", err)
	}

	want := []string{"Home", "Work"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ListProfiles returned %v, want %v", names, want)
	}
}

func TestListProfilesExcludesSettings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.SaveProfile(ctx, &Profile{Name: "Only", Units: UnitsInHg})
	store.SaveSettings(ctx, DefaultSettings())

	names, err := store.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("ListProfiles failed: %v", err)
	}
	if len(names) != 1 || names[0] != "Only" {
		t.Errorf("Expected only the profile document, got %v", names)
	}
}

func TestSettingsDefaults(t *testing.T) {
	store := newTestStore(t)

	settings := store.LoadSettings(context.Background())

	if !settings.LoadMostRecentProfileOnOpen {
		t.Error("Expected LoadMostRecentProfileOnOpen to default to true")
	}
	if settings.MostRecentProfile != "" {
		t.Errorf("Expected no most recent profile, got %q", settings.MostRecentProfile)
	}
}

func TestSaveProfileTracksMostRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.SaveProfile(ctx, &Profile{Name: "First", Units: UnitsInHg})
	store.SaveProfile(ctx, &Profile{Name: "Second", Units: UnitsInHg})

	settings := store.LoadSettings(ctx)
	if settings.MostRecentProfile != "Second" {
		t.Errorf("Expected most recent profile 'Second', got %q", settings.MostRecentProfile)
	}
}

func TestInitialLoadRestoresRecentProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.SaveProfile(ctx, &Profile{Name: "Session", Stations: []string{"KDEN"}, Units: UnitsHPa})

	settings, profile := store.InitialLoad(ctx)

	if settings.MostRecentProfile != "Session" {
		t.Errorf("Expected most recent profile 'Session', got %q", settings.MostRecentProfile)
	}
	if profile == nil {
		t.Fatal("Expected the recent profile to be loaded")
	}
	if profile.Name != "Session" || profile.Units != UnitsHPa {
		t.Errorf("Unexpected profile loaded: %+v", profile)
	}
}

func TestInitialLoadRespectsOptOut(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.SaveProfile(ctx, &Profile{Name: "Session", Units: UnitsInHg})

	settings := store.LoadSettings(ctx)
	settings.LoadMostRecentProfileOnOpen = false
	store.SaveSettings(ctx, settings)

	_, profile := store.InitialLoad(ctx)
	if profile != nil {
		t.Errorf("Expected no profile when opted out, got %+v", profile)
	}
}

func TestInitialLoadSurvivesMissingProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	settings := DefaultSettings()
	settings.MostRecentProfile = "Deleted"
	store.SaveSettings(ctx, settings)

	got, profile := store.InitialLoad(ctx)
	if profile != nil {
		t.Errorf("Expected no profile for a missing document, got %+v", profile)
	}
	if got.MostRecentProfile != "Deleted" {
		t.Errorf("Expected settings to round-trip, got %+v", got)
	}
}

func TestProfileJSONDefaults(t *testing.T) {
	var profile Profile
	if err := profile.UnmarshalJSON([]byte(`{"name": "Old", "stations": ["KLAX"]}`)); err != nil {
		t.Fatalf("UnmarshalJSON failed: %v", err)
	}

	if !profile.ShowInput {
		t.Error("Expected showInput to default to true")
	}
	if !profile.ShowTitlebar {
		t.Error("Expected showTitlebar to default to true")
	}
	if profile.Units != UnitsInHg {
		t.Errorf("Expected units to default to inHg, got %q", profile.Units)
	}
}

func TestProfileWindowStateRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	profile := &Profile{
		Name:         "With Window",
		Stations:     []string{"KJFK"},
		ShowInput:    true,
		ShowTitlebar: true,
		Units:        UnitsInHg,
		Window: &WindowState{
			State:       "Normal",
			Position:    &Position{X: 100, Y: 200},
			Size:        &Size{Width: 250, Height: 64},
			ScaleFactor: 2.0,
		},
	}

	if err := store.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	loaded, err := store.LoadProfile(ctx, "With Window")
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.Window, profile.Window) {
		t.Errorf("Window state did not round-trip: %+v != %+v", loaded.Window, profile.Window)
	}
}
