package model

// Flavor describes a desktop flavor package of a distribution.
type Flavor struct {
	Name    string `json:"name"`    // display label, e.g. "Xubuntu"
	Icon    string `json:"icon"`    // relative icon path
	URL     string `json:"url"`     // project homepage
	Package string `json:"package"` // meta package, e.g. "xubuntu-desktop"
}
