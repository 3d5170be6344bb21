package model

// HostInfo identifies the machine a report was taken on.
type HostInfo struct {
	Hostname       string `json:"hostname"`
	OS             string `json:"os,omitempty"`
	Kernel         string `json:"kernel,omitempty"`
	Virtualization string `json:"virtualization"`
}
