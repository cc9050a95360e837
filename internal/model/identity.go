package model

import (
	"strings"

	"github.com/google/uuid"
)

// NamespaceComponent is the UUID v5 namespace for component identities,
// derived from the URL namespace and a fixed name.
var NamespaceComponent = uuid.NewSHA1(uuid.NameSpaceURL, []byte("aboutcode.org/component-identity/v1"))

// ComponentID returns a deterministic UUID v5 for the record, derived from
// its lowercased ABOUT file path. Attribution documents use it as an anchor.
//
// Examples:
//   - "./third_party/zlib.ABOUT" and "third_party/ZLIB.about" share one ID
func (r *Record) ComponentID() uuid.UUID {
	key := r.AboutFilePath
	if key == "" {
		key = r.Name() + "@" + r.Version()
	}
	return uuid.NewSHA1(NamespaceComponent, []byte(normalizeIdentityPath(key)))
}

func normalizeIdentityPath(p string) string {
	p = strings.ToLower(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimPrefix(p, "./")
}
