package cache

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered output of a spec.
	ArtifactKey(specHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string     `json:"format"`
	Padding    [4]float64 `json:"padding"`
	Background string     `json:"background,omitempty"`
	Scale      float64    `json:"scale,omitempty"`
	Detailed   bool       `json:"detailed,omitempty"`
	EmbedFonts bool       `json:"embed_fonts,omitempty"`
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(specHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, specHash, opts)
}

var _ Keyer = DefaultKeyer{}
