package schema

import (
	"fmt"
	"sort"

	"github.com/operata/feedback-portal/internal/domain"
)

// Registry maps schema version identifiers to their published field
// declarations. Versions are registered once at construction and never
// mutated, so concurrent readers never contend with a writer.
type Registry struct {
	versions map[string]domain.SchemaVersion
}

// NewRegistry builds a registry holding every published schema version.
func NewRegistry() *Registry {
	r := &Registry{versions: make(map[string]domain.SchemaVersion)}
	for _, sv := range publishedVersions() {
		r.versions[sv.ID] = sv
	}
	return r
}

// Get returns the schema for a version identifier.
func (r *Registry) Get(version string) (domain.SchemaVersion, error) {
	sv, ok := r.versions[version]
	if !ok {
		return domain.SchemaVersion{}, fmt.Errorf("%w: %q", domain.ErrSchemaNotFound, version)
	}
	return sv, nil
}

// Versions lists the known version identifiers in sorted order.
func (r *Registry) Versions() []string {
	out := make([]string, 0, len(r.versions))
	for id := range r.versions {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
