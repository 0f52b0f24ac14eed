package app

import "strings"

// RequiresAuth reports whether the given request path requires
// authentication. It is a pure function of its arguments.
//
// Policy: an empty path or an empty exclusion list fails closed. An entry
// matches exactly when both sides compare equal after stripping at most one
// trailing slash from each. An entry ending in "*" is a prefix match on the
// part before the "*", ignoring trailing slashes. Anything else requires
// authentication.
func RequiresAuth(path string, excluded []string) bool {
	if path == "" || len(excluded) == 0 {
		return true
	}
	normalized := trimOneTrailingSlash(path)
	for _, entry := range excluded {
		if entry == "" {
			continue
		}
		if prefix, ok := strings.CutSuffix(entry, "*"); ok {
			// The bare prefix matches too: "/sso/*" excludes "/sso" but
			// never "/sso-admin".
			if strings.HasPrefix(path, prefix) || normalized == trimOneTrailingSlash(prefix) {
				return false
			}
			continue
		}
		if normalized == trimOneTrailingSlash(entry) {
			return false
		}
	}
	return true
}

func trimOneTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s[:len(s)-1]
	}
	return s
}
