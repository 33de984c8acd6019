package schema

import (
	"fmt"

	"github.com/shadetool/shade/internal/color"
)

// ViolationKind classifies a validation finding.
type ViolationKind string

// Violation kinds.
const (
	ViolationMissingRole ViolationKind = "missing-role"
	ViolationLowContrast ViolationKind = "low-contrast"
)

// Violation is a single validation finding. Hard violations make the schema
// unusable; soft ones (contrast) are reported but do not block.
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Role    Role          `json:"role,omitempty"`
	Against Role          `json:"against,omitempty"`
	Ratio   float64       `json:"ratio,omitempty"`
	Wanted  float64       `json:"wanted,omitempty"`
	Hard    bool          `json:"hard"`
	Message string        `json:"message"`
}

// ValidationResult is the outcome of validating a schema.
type ValidationResult struct {
	Violations []Violation `json:"violations"`
}

// OK reports whether no hard violation was found. Soft violations may still
// be present.
func (r ValidationResult) OK() bool {
	for _, v := range r.Violations {
		if v.Hard {
			return false
		}
	}
	return true
}

// Clean reports whether no violation of any kind was found.
func (r ValidationResult) Clean() bool {
	return len(r.Violations) == 0
}

// ContrastViolations returns only the soft contrast findings.
func (r ValidationResult) ContrastViolations() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Kind == ViolationLowContrast {
			out = append(out, v)
		}
	}
	return out
}

// Validate runs the three validation passes over a schema: structural (all
// mandatory roles bound), semantic pairing (declared foreground/background
// pairs meet their contrast floor, reported soft), and extension safety
// (unknown roles pass through untouched, so there is nothing to check beyond
// their presence being legal).
func Validate(s *Schema) ValidationResult {
	var result ValidationResult

	for _, role := range MandatoryRoles() {
		if _, ok := s.Roles[role]; !ok {
			result.Violations = append(result.Violations, Violation{
				Kind:    ViolationMissingRole,
				Role:    role,
				Hard:    true,
				Message: fmt.Sprintf("mandatory role %s is not bound", role),
			})
		}
	}

	for _, pair := range ContrastPairs() {
		fg, okFg := s.Roles[pair.Foreground]
		bg, okBg := s.Roles[pair.Background]
		if !okFg || !okBg {
			// Missing members are already reported by the structural pass.
			continue
		}
		ratio := color.ContrastRatio(fg, bg)
		if ratio < pair.MinRatio {
			result.Violations = append(result.Violations, Violation{
				Kind:    ViolationLowContrast,
				Role:    pair.Foreground,
				Against: pair.Background,
				Ratio:   ratio,
				Wanted:  pair.MinRatio,
				Hard:    false,
				Message: fmt.Sprintf("%s over %s has contrast %.2f, wants %.1f",
					pair.Foreground, pair.Background, ratio, pair.MinRatio),
			})
		}
	}

	return result
}
