// Package skills tracks which skills a hero has been granted or has chosen
// during one creation or edit session.
package skills

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/herosheet/internal/platform/errors"
)

// SourceKind is where a skill came from.
type SourceKind int

const (
	SourceAncestry SourceKind = iota + 1
	SourceCulture
	SourceCareer
	SourceClass
	SourceKit
	SourceComplication
	SourceUserSelected
)

// SourceKinds lists every kind in declaration order.
var SourceKinds = []SourceKind{
	SourceAncestry,
	SourceCulture,
	SourceCareer,
	SourceClass,
	SourceKit,
	SourceComplication,
	SourceUserSelected,
}

// String returns the wire name of the kind.
func (k SourceKind) String() string {
	switch k {
	case SourceAncestry:
		return "ancestry"
	case SourceCulture:
		return "culture"
	case SourceCareer:
		return "career"
	case SourceClass:
		return "class"
	case SourceKit:
		return "kit"
	case SourceComplication:
		return "complication"
	case SourceUserSelected:
		return "user_selected"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// Granted reports whether the kind grants skills rather than letting the
// user choose them.
func (k SourceKind) Granted() bool {
	switch k {
	case SourceAncestry, SourceCulture, SourceCareer, SourceClass, SourceKit, SourceComplication:
		return true
	case SourceUserSelected:
		return false
	default:
		panic(fmt.Sprintf("skills: unknown source kind %d", int(k)))
	}
}

// ParseSourceKind resolves a wire name.
func ParseSourceKind(value string) (SourceKind, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "-", "_")
	for _, kind := range SourceKinds {
		if kind.String() == normalized {
			return kind, nil
		}
	}
	if normalized == "user" {
		return SourceUserSelected, nil
	}
	return 0, apperrors.WithMetadata(
		apperrors.CodeSkillUnknownSource,
		fmt.Sprintf("unknown skill source %q", value),
		map[string]string{"Source": value},
	)
}

// Source records one skill and where it came from.
type Source struct {
	SkillID string
	Kind    SourceKind
	Section string
}
