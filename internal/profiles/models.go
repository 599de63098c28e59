// Package profiles persists the UI's station profiles and application
// settings as JSON documents. The JSON shape (camelCase, defaults for
// omitted fields) is shared with the desktop frontend and must stay
// compatible with profiles written by older versions.
package profiles

import (
	"encoding/json"
	"fmt"
)

// AltimeterUnits selects how the frontend displays altimeter settings
type AltimeterUnits string

const (
	UnitsInHg AltimeterUnits = "inHg"
	UnitsHPa  AltimeterUnits = "hPa"
)

// Position is a window position in physical pixels
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a window size in physical pixels
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowState captures window geometry so a profile reopens where the
// user left it. The service round-trips this for the frontend but never
// interprets it.
type WindowState struct {
	State       string    `json:"state"` // Maximized, FullScreen or Normal
	Position    *Position `json:"position,omitempty"`
	Size        *Size     `json:"size,omitempty"`
	ScaleFactor float64   `json:"scaleFactor"`
}

// Profile is one named set of stations plus display preferences
type Profile struct {
	Name         string         `json:"name"`
	Stations     []string       `json:"stations"`
	ShowInput    bool           `json:"showInput"`
	ShowTitlebar bool           `json:"showTitlebar"`
	Window       *WindowState   `json:"window,omitempty"`
	Units        AltimeterUnits `json:"units"`
}

// UnmarshalJSON applies the defaults older profile files rely on:
// showInput and showTitlebar were introduced as opt-outs and default to
// true, units defaults to inHg.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type alias Profile
	aux := alias{
		ShowInput:    true,
		ShowTitlebar: true,
		Units:        UnitsInHg,
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Units == "" {
		aux.Units = UnitsInHg
	}

	*p = Profile(aux)
	return nil
}

// Validate checks the invariants a profile must hold before it is saved
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	switch p.Units {
	case UnitsInHg, UnitsHPa:
	default:
		return fmt.Errorf("unknown altimeter units %q", p.Units)
	}
	return nil
}

// Settings holds application-level preferences
type Settings struct {
	LoadMostRecentProfileOnOpen bool   `json:"loadMostRecentProfileOnOpen"`
	MostRecentProfile           string `json:"mostRecentProfile,omitempty"`
}

// UnmarshalJSON defaults loadMostRecentProfileOnOpen to true for
// settings files written before the field existed
func (s *Settings) UnmarshalJSON(data []byte) error {
	type alias Settings
	aux := alias{
		LoadMostRecentProfileOnOpen: true,
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*s = Settings(aux)
	return nil
}

// DefaultSettings returns the settings used when no settings document
// exists yet
func DefaultSettings() Settings {
	return Settings{
		LoadMostRecentProfileOnOpen: true,
	}
}
