package weather

import (
	"fmt"
	"math"
)

// METAR mirrors one report from the aviationweather.gov data API
// (/api/data/metar?ids={CODE}&format=json, which returns an array).
// Wdir is a number in degrees or the string "VRB"; Visib can be a
// number or a string like "10+", so both decode as any.
type METAR struct {
	ICAOId     string  `json:"icaoId"`
	ReportTime string  `json:"reportTime"`
	Temp       float64 `json:"temp"` // Celsius
	Dewp       float64 `json:"dewp"` // Celsius
	Wdir       any     `json:"wdir"`
	Wspd       float64 `json:"wspd"` // knots
	Wgst       float64 `json:"wgst"` // gust, knots
	Visib      any     `json:"visib"`
	Altim      float64 `json:"altim"` // hPa
	RawOb      string  `json:"rawOb"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Elev       float64 `json:"elev"`
	Name       string  `json:"name"`
	FltCat     string  `json:"fltCat"`
}

// Station mirrors one entry from /api/data/stationinfo
type Station struct {
	ICAOId  string  `json:"icaoId"`
	IATAId  string  `json:"iataId"`
	FAAId   string  `json:"faaId"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Elev    float64 `json:"elev"`
	Site    string  `json:"site"`
	State   string  `json:"state"`
	Country string  `json:"country"`
}

// inHgPerHPa converts an altimeter setting reported in hectopascals
const inHgPerHPa = 0.029529983071445

// WindString renders the report's wind for display: "Calm", variable
// winds as "VRB @ N kt", otherwise "DDD @ N kt" with gusts appended as
// "G M".
func (m *METAR) WindString() string {
	dir, variable := m.windDirection()

	if !variable && m.Wspd == 0 {
		return "Calm"
	}

	speed := int(math.Round(m.Wspd))
	gust := ""
	if m.Wgst > 0 {
		gust = fmt.Sprintf(" G %d", int(math.Round(m.Wgst)))
	}

	if variable {
		return fmt.Sprintf("VRB @ %d%s kt", speed, gust)
	}
	return fmt.Sprintf("%03d @ %d%s kt", dir, speed, gust)
}

// windDirection decodes the polymorphic wdir field
func (m *METAR) windDirection() (degrees int, variable bool) {
	switch v := m.Wdir.(type) {
	case float64:
		return int(math.Round(v)), false
	case string:
		return 0, v == "VRB"
	default:
		return 0, false
	}
}

// AltimeterInHg returns the altimeter setting in inches of mercury,
// rounded to the hundredth the UI displays (e.g. 29.92)
func (m *METAR) AltimeterInHg() float64 {
	return math.Round(m.Altim*inHgPerHPa*100) / 100
}

// AltimeterHPa returns the altimeter setting in whole hectopascals
func (m *METAR) AltimeterHPa() float64 {
	return math.Round(m.Altim)
}
