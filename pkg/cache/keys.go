package cache

// ArtifactKeyOpts holds the render settings that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	From   string  `json:"from,omitempty"`
	To     string  `json:"to,omitempty"`
	Style  string  `json:"style"`
	Title  string  `json:"title,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered format of a dataset.
	// entriesHash identifies the normalized entries.
	ArtifactKey(entriesHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every key component into a fixed-size key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(entriesHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", entriesHash, opts)
}
