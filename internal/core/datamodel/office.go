package datamodel

// Office is a location entry from the office directory.
type Office struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Timezone string `json:"timezone,omitempty"`
}
