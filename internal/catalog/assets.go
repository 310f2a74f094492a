package catalog

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// AssetResolver checks local image references against an asset root.
type AssetResolver struct {
	Root string
}

// LooksLikeURL reports whether ref is a network address that is never
// checked on disk.
func LooksLikeURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// NormalizeImagePath turns a product image reference into a slash-separated
// path relative to the asset root: backslashes become slashes, percent
// escapes are decoded (a malformed escape leaves the string as is), and one
// leading "./" and then one leading "/" are removed.
func NormalizeImagePath(ref string) string {
	cleaned := strings.ReplaceAll(ref, `\`, "/")
	if decoded, err := url.PathUnescape(cleaned); err == nil {
		cleaned = decoded
	}
	cleaned = strings.TrimPrefix(cleaned, "./")
	cleaned = strings.TrimPrefix(cleaned, "/")
	return cleaned
}

// Path returns the filesystem path ref resolves to.
func (a AssetResolver) Path(ref string) string {
	return filepath.Join(a.Root, filepath.FromSlash(NormalizeImagePath(ref)))
}

// Exists reports whether the local file behind ref exists.
func (a AssetResolver) Exists(ref string) bool {
	_, err := os.Stat(a.Path(ref))
	return err == nil
}
