package vatsim

import "time"

// Datafeed is one snapshot of the VATSIM v3 public datafeed. Only the
// sections this service reads are modeled; the upstream payload also
// carries pilots, prefiles and rating tables.
type Datafeed struct {
	General     General      `json:"general"`
	Controllers []Controller `json:"controllers"`
	Atis        []ATIS       `json:"atis"`
}

// General holds feed-level metadata
type General struct {
	Version          int       `json:"version"`
	Update           string    `json:"update"`
	UpdateTimestamp  time.Time `json:"update_timestamp"`
	ConnectedClients int       `json:"connected_clients"`
	UniqueUsers      int       `json:"unique_users"`
}

// Controller is one online controller position
type Controller struct {
	CID         int       `json:"cid"`
	Name        string    `json:"name"`
	Callsign    string    `json:"callsign"`
	Frequency   string    `json:"frequency"`
	Facility    int       `json:"facility"`
	Rating      int       `json:"rating"`
	Server      string    `json:"server"`
	VisualRange int       `json:"visual_range"`
	TextAtis    []string  `json:"text_atis"`
	LogonTime   time.Time `json:"logon_time"`
	LastUpdated time.Time `json:"last_updated"`
}

// ATIS is one published ATIS or D-ATIS broadcast. Callsigns follow the
// feed convention KXYZ_ATIS, or KXYZ_A_ATIS / KXYZ_D_ATIS for airports
// with split arrival and departure streams. AtisCode is empty when the
// feed has no structured letter for the broadcast.
type ATIS struct {
	CID         int       `json:"cid"`
	Name        string    `json:"name"`
	Callsign    string    `json:"callsign"`
	Frequency   string    `json:"frequency"`
	Facility    int       `json:"facility"`
	Rating      int       `json:"rating"`
	Server      string    `json:"server"`
	VisualRange int       `json:"visual_range"`
	AtisCode    string    `json:"atis_code"`
	TextAtis    []string  `json:"text_atis"`
	LogonTime   time.Time `json:"logon_time"`
	LastUpdated time.Time `json:"last_updated"`
}

// status.json document served by status.vatsim.net; v3 lists the
// currently valid datafeed URLs.
type status struct {
	Data struct {
		V3         []string `json:"v3"`
		Transceivers []string `json:"transceivers"`
	} `json:"data"`
}
