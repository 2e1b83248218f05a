package linkcheck

import (
	"path"
	"path/filepath"
	"strings"
)

// Resolution is the on-disk file an internal link is expected to address.
type Resolution struct {
	Target string

	// Index is set when the link named a directory and Target is its index
	// document.
	Index bool

	// Clamped is set when ".." segments tried to climb above the site root.
	// They stop at the root, as they would on a web server.
	Clamped bool
}

// Resolve maps an internal href found in the document at source to an
// absolute path under root. It reports false when nothing is left to
// resolve once the query and fragment are cut off.
//
// A path ending in "/" names a directory and resolves to its index
// document. Anything else is taken literally: "/about" is never rewritten
// to "/about/index.html".
func Resolve(source, root, href, index string) (Resolution, bool) {
	p := href
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return Resolution{}, false
	}

	// Work in URL space, rooted at "/", so cleaning can never leave the root.
	var urlPath string
	if strings.HasPrefix(p, "/") {
		urlPath = p
	} else {
		rel, err := filepath.Rel(root, filepath.Dir(source))
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			rel = "."
		}
		dir := path.Join("/", filepath.ToSlash(rel))
		urlPath = strings.TrimSuffix(dir, "/") + "/" + p
	}

	res := Resolution{Clamped: climbsAboveRoot(urlPath)}

	cleaned := path.Clean(urlPath)
	if strings.HasSuffix(p, "/") {
		cleaned = path.Join(cleaned, index)
		res.Index = true
	}

	res.Target = filepath.Join(root, filepath.FromSlash(cleaned))
	return res, true
}

// climbsAboveRoot reports whether a rooted URL path uses ".." to go above
// "/" at any point.
func climbsAboveRoot(urlPath string) bool {
	depth := 0
	for _, seg := range strings.Split(urlPath, "/") {
		switch seg {
		case "", ".":
		case "..":
			depth--
			if depth < 0 {
				return true
			}
		default:
			depth++
		}
	}
	return false
}
