package shared

// Sort describes a requested list ordering. Repositories validate the
// field against a per-entity whitelist before building the query, so an
// unknown field falls back to the entity default instead of failing.
type Sort struct {
	OrderBy  string
	OrderDir string
}
