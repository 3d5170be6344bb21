package model

import "time"

// Snapshot holds the result of one collection pass.
type Snapshot struct {
	Timestamp    time.Time   `json:"timestamp"`
	Host         *HostInfo   `json:"host,omitempty"`
	Drives       []DriveInfo `json:"drives"`
	Temperatures []DriveTemp `json:"temperatures"`
	Flavors      []Flavor    `json:"flavors"`
	Errors       []string    `json:"errors,omitempty"`
}

// HottestDrive returns the highest temperature reading, or false if there is none.
func (s *Snapshot) HottestDrive() (DriveTemp, bool) {
	if s == nil || len(s.Temperatures) == 0 {
		return DriveTemp{}, false
	}
	hot := s.Temperatures[0]
	for _, t := range s.Temperatures[1:] {
		if t.Temperature > hot.Temperature {
			hot = t
		}
	}
	return hot, true
}
