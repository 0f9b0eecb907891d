// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeNotFound is returned when a stored record does not exist.
	CodeNotFound Code = "NOT_FOUND"

	// Dice errors
	CodeDiceMissing     Code = "DICE_MISSING"
	CodeDiceInvalidSpec Code = "DICE_INVALID_SPEC"

	// Hero errors
	CodeHeroUnknownClass  Code = "HERO_UNKNOWN_CLASS"
	CodeHeroNameEmpty     Code = "HERO_NAME_EMPTY"
	CodeHeroNotActive     Code = "HERO_NOT_ACTIVE"
	CodeHeroInvalidRecord Code = "HERO_INVALID_RECORD"

	// Roll errors
	CodeRollUnknownEdgeBane Code = "ROLL_UNKNOWN_EDGE_BANE"
	CodeRollInvalidDie      Code = "ROLL_INVALID_DIE"

	// Skill errors
	CodeSkillIDEmpty       Code = "SKILL_ID_EMPTY"
	CodeSkillUnknownSource Code = "SKILL_UNKNOWN_SOURCE"

	// Status errors
	CodeStatusUnknownCondition Code = "STATUS_UNKNOWN_CONDITION"

	// Storage errors
	CodeStorageNotConfigured Code = "STORAGE_NOT_CONFIGURED"
)

// Kind groups codes by how a caller should react to them.
type Kind int

const (
	// KindInternal is a failure the caller cannot fix.
	KindInternal Kind = iota
	// KindInvalidArgument means the request itself was malformed.
	KindInvalidArgument
	// KindFailedPrecondition means the current state disallows the request.
	KindFailedPrecondition
	// KindNotFound means the referenced record does not exist.
	KindNotFound
)

// Kind maps the code to its caller-facing category.
func (c Code) Kind() Kind {
	switch c {
	case CodeDiceMissing,
		CodeDiceInvalidSpec,
		CodeHeroUnknownClass,
		CodeHeroNameEmpty,
		CodeRollUnknownEdgeBane,
		CodeRollInvalidDie,
		CodeSkillIDEmpty,
		CodeSkillUnknownSource,
		CodeStatusUnknownCondition:
		return KindInvalidArgument

	case CodeHeroNotActive,
		CodeStorageNotConfigured:
		return KindFailedPrecondition

	case CodeNotFound:
		return KindNotFound

	default:
		return KindInternal
	}
}

// String returns a lowercase label for the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindFailedPrecondition:
		return "failed_precondition"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}
