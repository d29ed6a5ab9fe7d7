package cache

// Keyer generates cache keys for the different cacheable artifacts.
// Implementations must be deterministic: identical inputs always produce
// identical keys.
type Keyer interface {
	// HTTPKey generates a key for raw HTTP response caching.
	HTTPKey(namespace, key string) string

	// EditKey generates a key for a generative edit result. imageHashes are
	// the content hashes of the input images in request order; reordering
	// the inputs produces a different key on purpose, since the service may
	// treat image order as meaningful.
	EditKey(instruction string, imageHashes []string, opts EditKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact (for example the
	// provenance graph) derived from a content hash.
	ArtifactKey(contentHash string, opts ArtifactKeyOpts) string
}

// EditKeyOpts are the request parameters that affect an edit result.
type EditKeyOpts struct {
	Model string // service model identifier, "" for the service default
}

// ArtifactKeyOpts are the options that affect a rendered artifact.
type ArtifactKeyOpts struct {
	Format string // output format: "svg", "png", "dot"
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
// Format: "http:{namespace}:{key}" - kept readable for cache inspection.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// EditKey generates a hashed key covering the instruction, the ordered
// input image hashes, and the request options.
func (k *DefaultKeyer) EditKey(instruction string, imageHashes []string, opts EditKeyOpts) string {
	return hashKey("edit", instruction, imageHashes, opts)
}

// ArtifactKey generates a hashed key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(contentHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", contentHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
