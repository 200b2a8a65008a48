// Package validation guards object-storage operations: it normalizes object
// keys and checks inbound request payloads before they reach the backend.
package validation

import "strings"

// SanitizeKey strips traversal sequences, alternate separators and null bytes
// from an object key. A trailing slash (folder marker) survives sanitization
// unless nothing else is left.
//
// It is applied at the point of use after Parse has accepted the request, so
// callers must not treat its output as validated.
func SanitizeKey(key string) string {
	sanitized := normalizeSeparators(key)
	folder := strings.HasSuffix(sanitized, "/")

	sanitized = stripTraversal(sanitized)
	sanitized = strings.TrimLeft(sanitized, "/")

	if folder && sanitized != "" && !strings.HasSuffix(sanitized, "/") {
		sanitized += "/"
	}
	return sanitized
}

// ResolveKey sanitizes raw and reports whether the result still addresses
// the object raw names. Only separator, null byte and leading slash
// normalization may differ; anything else means sanitizing rewrote the key
// (a/..../ would become a/../) and it must be rejected.
func ResolveKey(raw string) (string, bool) {
	key := SanitizeKey(raw)
	if key == "" || !IsValidKey(key) {
		return "", false
	}
	if key != strings.TrimLeft(normalizeSeparators(raw), "/") {
		return "", false
	}
	return key, true
}

func normalizeSeparators(key string) string {
	key = strings.ReplaceAll(key, `\`, "/")
	return strings.ReplaceAll(key, "\x00", "")
}

// stripTraversal removes "../" sequences until none remain. Removing one can
// expose another (a/../../b), so a single replace is not enough.
func stripTraversal(key string) string {
	for i := 0; i <= len(key); i++ {
		next := strings.ReplaceAll(key, "../", "")
		if next == ".." {
			next = ""
		}
		next = strings.ReplaceAll(next, "/../", "/")
		if next == key {
			break
		}
		key = next
	}
	return key
}

// IsValidKey reports whether a raw key is free of null bytes and ".."
// segments and is non-empty once leading slashes are removed.
func IsValidKey(key string) bool {
	if strings.Contains(key, "\x00") {
		return false
	}
	normalized := strings.ReplaceAll(key, `\`, "/")
	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return false
		}
	}
	return strings.TrimLeft(normalized, "/") != ""
}
