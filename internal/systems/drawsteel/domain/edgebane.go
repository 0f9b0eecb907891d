package domain

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/herosheet/internal/platform/errors"
)

// EdgeBane is the favorable or unfavorable modifier state of a power roll.
// The zero value means the resolver default applies.
type EdgeBane int

const (
	EdgeBaneUnspecified EdgeBane = iota
	EdgeBaneNormal
	EdgeBaneEdge
	EdgeBaneBane
	EdgeBaneDoubleEdge
	EdgeBaneDoubleBane
)

// String returns the wire name of the state.
func (e EdgeBane) String() string {
	switch e {
	case EdgeBaneUnspecified:
		return "unspecified"
	case EdgeBaneNormal:
		return "normal"
	case EdgeBaneEdge:
		return "edge"
	case EdgeBaneBane:
		return "bane"
	case EdgeBaneDoubleEdge:
		return "double_edge"
	case EdgeBaneDoubleBane:
		return "double_bane"
	default:
		return fmt.Sprintf("EdgeBane(%d)", int(e))
	}
}

// ParseEdgeBane resolves a wire name. An empty string is EdgeBaneUnspecified.
func ParseEdgeBane(value string) (EdgeBane, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "-", "_")
	switch normalized {
	case "", "unspecified":
		return EdgeBaneUnspecified, nil
	case "normal":
		return EdgeBaneNormal, nil
	case "edge":
		return EdgeBaneEdge, nil
	case "bane":
		return EdgeBaneBane, nil
	case "double_edge", "doubleedge":
		return EdgeBaneDoubleEdge, nil
	case "double_bane", "doublebane":
		return EdgeBaneDoubleBane, nil
	default:
		return EdgeBaneUnspecified, apperrors.WithMetadata(
			apperrors.CodeRollUnknownEdgeBane,
			fmt.Sprintf("unknown edge/bane state %q", value),
			map[string]string{"Value": value},
		)
	}
}

// Next returns the following state in the cycle
// normal, edge, bane, double edge, double bane, normal.
func (e EdgeBane) Next() EdgeBane {
	switch e {
	case EdgeBaneUnspecified, EdgeBaneNormal:
		return EdgeBaneEdge
	case EdgeBaneEdge:
		return EdgeBaneBane
	case EdgeBaneBane:
		return EdgeBaneDoubleEdge
	case EdgeBaneDoubleEdge:
		return EdgeBaneDoubleBane
	case EdgeBaneDoubleBane:
		return EdgeBaneNormal
	default:
		panic(fmt.Sprintf("domain: unknown edge/bane state %d", int(e)))
	}
}

// Bonus is the amount added to the roll total before tiering.
func (e EdgeBane) Bonus() int {
	switch e {
	case EdgeBaneEdge:
		return 2
	case EdgeBaneBane:
		return -2
	case EdgeBaneUnspecified, EdgeBaneNormal, EdgeBaneDoubleEdge, EdgeBaneDoubleBane:
		return 0
	default:
		panic(fmt.Sprintf("domain: unknown edge/bane state %d", int(e)))
	}
}

// TierShift is the number of tiers applied after tiering.
func (e EdgeBane) TierShift() int {
	switch e {
	case EdgeBaneDoubleEdge:
		return 1
	case EdgeBaneDoubleBane:
		return -1
	case EdgeBaneUnspecified, EdgeBaneNormal, EdgeBaneEdge, EdgeBaneBane:
		return 0
	default:
		panic(fmt.Sprintf("domain: unknown edge/bane state %d", int(e)))
	}
}

// ComposeEdgeBane combines counts of edges and banes into one state.
// Counts above two are treated as two. A single edge and a single bane
// cancel, double edge with one bane is an edge, double bane with one edge is
// a bane and two of each cancel.
func ComposeEdgeBane(edges, banes int) EdgeBane {
	edges = min(max(edges, 0), 2)
	banes = min(max(banes, 0), 2)
	switch net := edges - banes; {
	case edges == banes:
		return EdgeBaneNormal
	case banes == 0 && edges == 2:
		return EdgeBaneDoubleEdge
	case edges == 0 && banes == 2:
		return EdgeBaneDoubleBane
	case net > 0:
		return EdgeBaneEdge
	default:
		return EdgeBaneBane
	}
}
