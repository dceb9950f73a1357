package permission

import (
	"regexp"
	"strings"
)

// Key names a permission, e.g. "document.view".
type Key string

// Built-in permission keys.
const (
	WorkspaceAdmin   Key = "workspace.admin"
	DocumentView     Key = "document.view"
	DocumentEdit     Key = "document.edit"
	DocumentDelete   Key = "document.delete"
	DocumentPrint    Key = "document.print"
	DocumentAnnotate Key = "document.annotate"
)

// Builtin lists the keys seeded on a fresh database.
var Builtin = []Key{
	WorkspaceAdmin, DocumentView, DocumentEdit, DocumentDelete, DocumentPrint, DocumentAnnotate,
}

var keyRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z0-9_]+)*(\.\*)?$`)

// Valid reports whether k is a well formed key. A trailing ".*" marks a
// wildcard grant.
func (k Key) Valid() bool {
	return keyRegex.MatchString(string(k))
}

// Normalize lowercases and trims a key.
func Normalize(s string) Key {
	return Key(strings.ToLower(strings.TrimSpace(s)))
}

// Matches reports whether granted covers requested: an exact match, or a
// prefix match when granted ends with '*'.
func Matches(granted, requested Key) bool {
	if granted == requested {
		return true
	}
	if strings.HasSuffix(string(granted), "*") {
		prefix := strings.TrimSuffix(string(granted), "*")
		return strings.HasPrefix(string(requested), prefix)
	}
	return false
}

// HasValidPermissions returns true if any granted key covers requested.
func HasValidPermissions(granted []string, requested Key) bool {
	for _, g := range granted {
		if Matches(Normalize(g), requested) {
			return true
		}
	}
	return false
}
