package profiles

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"miniwx/internal/logger"
	"miniwx/internal/storage"
)

const (
	settingsDocument = "settings.json"
	profileSuffix    = ".profile.json"
)

// Store persists profiles and settings through a storage client.
// Saving or loading a profile records it as the most recent one, which
// InitialLoad uses to restore the user's last session.
type Store struct {
	storage storage.StorageClient
	log     *logger.Logger
}

// NewStore creates a profile store on top of a storage client
func NewStore(client storage.StorageClient) *Store {
	return &Store{
		storage: client,
		log:     logger.GetGlobalLogger().WithComponent("profiles"),
	}
}

// SaveProfile validates and persists a profile, marking it most recent
func (s *Store) SaveProfile(ctx context.Context, profile *Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize profile %s: %w", profile.Name, err)
	}

	name := documentName(profile.Name)
	if err := s.storage.Store(ctx, name, data); err != nil {
		return fmt.Errorf("failed to save profile %s: %w", profile.Name, err)
	}

	s.log.Debug("Saved profile", map[string]interface{}{"name": profile.Name})
	s.setMostRecent(ctx, profile.Name)
	return nil
}

// LoadProfile loads a profile by name, marking it most recent
func (s *Store) LoadProfile(ctx context.Context, name string) (*Profile, error) {
	data, err := s.storage.Get(ctx, documentName(name))
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", name, err)
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", name, err)
	}

	s.setMostRecent(ctx, profile.Name)
	return &profile, nil
}

// ListProfiles lists the names of all saved profiles
func (s *Store) ListProfiles(ctx context.Context) ([]string, error) {
	documents, err := s.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	names := make([]string, 0, len(documents))
	for _, doc := range documents {
		if strings.HasSuffix(doc, profileSuffix) {
			names = append(names, strings.TrimSuffix(doc, profileSuffix))
		}
	}
	return names, nil
}

// LoadSettings returns the persisted settings, or defaults when no
// settings document exists or it cannot be parsed
func (s *Store) LoadSettings(ctx context.Context) Settings {
	data, err := s.storage.Get(ctx, settingsDocument)
	if err != nil {
		return DefaultSettings()
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		s.log.Warn("Settings document is corrupt, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return DefaultSettings()
	}
	return settings
}

// SaveSettings persists the settings document
func (s *Store) SaveSettings(ctx context.Context, settings Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}

	if err := s.storage.Store(ctx, settingsDocument, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// InitialLoad returns the settings plus, when configured, the most
// recently used profile. A missing or unreadable recent profile is not
// an error; the frontend simply starts empty.
func (s *Store) InitialLoad(ctx context.Context) (Settings, *Profile) {
	settings := s.LoadSettings(ctx)

	if !settings.LoadMostRecentProfileOnOpen || settings.MostRecentProfile == "" {
		return settings, nil
	}

	profile, err := s.LoadProfile(ctx, settings.MostRecentProfile)
	if err != nil {
		s.log.Warn("Could not load most recent profile", map[string]interface{}{
			"name":  settings.MostRecentProfile,
			"error": err.Error(),
		})
		return settings, nil
	}
	return settings, profile
}

// setMostRecent records the most recently used profile in the settings
// document. Best effort: a failure here never fails the save/load that
// triggered it.
func (s *Store) setMostRecent(ctx context.Context, name string) {
	settings := s.LoadSettings(ctx)
	if settings.MostRecentProfile == name {
		return
	}

	settings.MostRecentProfile = name
	if err := s.SaveSettings(ctx, settings); err != nil {
		s.log.Warn("Could not record most recent profile", map[string]interface{}{
			"name":  name,
			"error": err.Error(),
		})
	}
}

// documentName maps a profile name to its storage object name. Spaces
// are kept; path separators are flattened so names stay valid flat
// object names.
func documentName(profileName string) string {
	flat := strings.NewReplacer("/", "-", "\\", "-").Replace(profileName)
	return flat + profileSuffix
}
