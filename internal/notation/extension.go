// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notation

import (
	"context"
	"net/url"

	"gitlab.com/tozd/go/errors"
)

// ExtensionRunner executes an externally supplied routine against a loaded
// document before export. Extensions may mutate the document in place.
type ExtensionRunner interface {
	// Perform runs the extension addressed by uri (scheme://name?params)
	// against doc.
	Perform(ctx context.Context, uri string, doc Document) error
}

// ExtensionFunc is one registered extension routine. params holds the
// query parameters from the extension URI.
type ExtensionFunc func(ctx context.Context, doc Document, params url.Values) error

// ExtensionRegistry is a URI-keyed ExtensionRunner. Extensions register
// under "scheme://host/path"; query parameters are passed to the routine.
type ExtensionRegistry struct {
	funcs map[string]ExtensionFunc
}

// NewExtensionRegistry returns an empty extension registry.
func NewExtensionRegistry() *ExtensionRegistry {
	return &ExtensionRegistry{funcs: make(map[string]ExtensionFunc)}
}

// Register binds fn to the given URI (without query parameters).
func (r *ExtensionRegistry) Register(uri string, fn ExtensionFunc) {
	r.funcs[uri] = fn
}

// Perform implements ExtensionRunner.
func (r *ExtensionRegistry) Perform(ctx context.Context, uri string, doc Document) error {
	u, err := url.Parse(uri)
	if err != nil {
		return errors.Errorf("invalid extension uri %q: %w", uri, err)
	}

	q := u.Query()
	u.RawQuery = ""
	fn, ok := r.funcs[u.String()]
	if !ok {
		return errors.Errorf("no extension registered for %q", u.String())
	}

	return fn(ctx, doc, q)
}
