package rules

import (
	"regexp"

	"github.com/nerrad567/plain-automation/internal/translator"
)

// idSuffix is the file extension every automation identifier carries.
const idSuffix = ".yaml"

// idPattern matches well-formed automation identifiers: a sanitized
// name plus the .yaml suffix. Rejects path separators and dot-dot
// traversal outright.
var idPattern = regexp.MustCompile(`^[a-z0-9_]+\.yaml$`)

// DeriveID converts a display name into the automation's file
// identifier. The mapping is deterministic: the same name always
// yields the same identifier, which is how renames and duplicates
// surface as AlreadyExists.
func DeriveID(name string) string {
	return translator.SanitizeIdentifier(name) + idSuffix
}

// ValidID reports whether id is a well-formed automation identifier.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}
