package utils

import "strings"

// JoinURL joins a configured provider base URL with a resource path,
// tolerating trailing slashes on the base and missing leading slashes on the
// path. Operators paste base URLs into settings by hand, so both shapes occur.
func JoinURL(base, path string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
