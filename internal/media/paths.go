// Package media maps between the three representations of a stored image:
// legacy root-relative paths (/images/...), bucket object keys
// (images/posts/cover.jpg) and public URLs under the storage prefix. The
// forward and inverse mappings are idempotent for every path that matches a
// known shape.
package media

import (
	"errors"
	"path"
	"strings"
)

// ErrUnrecognizedMediaPath is returned when a source string matches neither
// the public storage prefix nor the legacy /images/ convention.
var ErrUnrecognizedMediaPath = errors.New("media: unrecognized media path")

const (
	legacyPrefix = "/images/"
	// ProxyPrefix is the local route under which storage objects are served
	// same-origin.
	ProxyPrefix = "/api/media/"
)

// Normalizer converts between object paths and public URLs for one bucket.
type Normalizer struct {
	publicPrefix string // always ends with a single slash
}

// NewNormalizer builds a Normalizer for the given public storage URL prefix.
func NewNormalizer(publicURL string) *Normalizer {
	return &Normalizer{publicPrefix: strings.TrimSuffix(publicURL, "/") + "/"}
}

// PublicURL returns the public URL of a bucket object.
func (n *Normalizer) PublicURL(objectPath string) string {
	return n.publicPrefix + strings.TrimPrefix(objectPath, "/")
}

// ObjectPathFromPublicURL inverts PublicURL. It also accepts legacy
// root-relative /images/ paths, which map onto the bucket by dropping the
// leading slash. Anything else fails with ErrUnrecognizedMediaPath.
func (n *Normalizer) ObjectPathFromPublicURL(src string) (string, error) {
	switch {
	case strings.HasPrefix(src, n.publicPrefix):
		p := strings.TrimPrefix(src, n.publicPrefix)
		if p == "" {
			return "", ErrUnrecognizedMediaPath
		}
		return p, nil
	case strings.HasPrefix(src, legacyPrefix):
		p := strings.TrimPrefix(src, "/")
		if p == strings.TrimPrefix(legacyPrefix, "/") {
			return "", ErrUnrecognizedMediaPath
		}
		return p, nil
	}
	return "", ErrUnrecognizedMediaPath
}

// RenderableImageSrc rewrites remote SVGs under the known storage prefix to
// the local proxy route. Some rendering contexts cannot fetch cross-origin
// SVGs reliably, so the app serves them from its own origin instead. Any
// other source is returned unchanged.
func (n *Normalizer) RenderableImageSrc(src string) string {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return src
	}
	base := src
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	if !strings.HasSuffix(strings.ToLower(base), ".svg") {
		return src
	}
	objectPath, err := n.ObjectPathFromPublicURL(src)
	if err != nil {
		// Foreign-host SVG; nothing we can proxy.
		return src
	}
	return ProxyPrefix + objectPath
}

// ContentTypeByExtension infers the Content-Type served by the media proxy.
// SVG is always forced to image/svg+xml so browsers render instead of
// download.
func ContentTypeByExtension(objectPath string) string {
	switch strings.ToLower(path.Ext(objectPath)) {
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".avif":
		return "image/avif"
	case ".ico":
		return "image/x-icon"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
