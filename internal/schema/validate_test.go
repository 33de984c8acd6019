package schema

import (
	"testing"

	"github.com/shadetool/shade/internal/color"
)

func fullSchema() *Schema {
	s := New("test")
	s.Roles[RoleSurfacePrimary] = color.NewRGB(255, 255, 255)
	s.Roles[RoleSurfaceSecondary] = color.NewRGB(240, 240, 240)
	s.Roles[RoleContentPrimary] = color.NewRGB(20, 20, 20)
	s.Roles[RoleContentSecondary] = color.NewRGB(70, 70, 70)
	s.Roles[RoleContentInverse] = color.NewRGB(255, 255, 255)
	s.Roles[RoleAccentPrimary] = color.NewRGB(21, 83, 158)
	s.Roles[RoleStateError] = color.NewRGB(164, 0, 0)
	s.Roles[RoleStateWarning] = color.NewRGB(196, 98, 0)
	s.Roles[RoleStateSuccess] = color.NewRGB(38, 110, 48)
	return s
}

func TestValidateCompleteSchema(t *testing.T) {
	result := Validate(fullSchema())
	if !result.OK() {
		t.Fatalf("complete schema failed validation: %+v", result.Violations)
	}
	if !result.Clean() {
		t.Errorf("unexpected soft violations: %+v", result.Violations)
	}
}

func TestValidateMissingMandatoryRoleIsHard(t *testing.T) {
	s := fullSchema()
	delete(s.Roles, RoleAccentPrimary)

	result := Validate(s)
	if result.OK() {
		t.Fatal("missing mandatory role did not fail validation")
	}

	found := false
	for _, v := range result.Violations {
		if v.Kind == ViolationMissingRole && v.Role == RoleAccentPrimary && v.Hard {
			found = true
		}
	}
	if !found {
		t.Errorf("no hard missing-role violation for accent.primary: %+v", result.Violations)
	}
}

func TestValidateLowContrastIsSoft(t *testing.T) {
	s := fullSchema()
	// Light gray text on white: structurally fine, unreadable.
	s.Roles[RoleContentPrimary] = color.NewRGB(200, 200, 200)

	result := Validate(s)
	if !result.OK() {
		t.Fatal("soft contrast violation hard-failed validation")
	}
	if result.Clean() {
		t.Fatal("low-contrast pair went unreported")
	}

	violations := result.ContrastViolations()
	if len(violations) == 0 {
		t.Fatal("expected contrast violations")
	}
	for _, v := range violations {
		if v.Hard {
			t.Errorf("contrast violation marked hard: %+v", v)
		}
		if v.Ratio >= v.Wanted {
			t.Errorf("reported ratio %v not below threshold %v", v.Ratio, v.Wanted)
		}
	}
}

func TestValidateIgnoresExtensions(t *testing.T) {
	s := fullSchema()
	s.Extensions["vendor_special"] = color.NewRGB(1, 2, 3)

	if result := Validate(s); !result.Clean() {
		t.Errorf("extension role produced violations: %+v", result.Violations)
	}
}

func TestPresetsValidateClean(t *testing.T) {
	for _, preset := range []*Schema{LightPreset(), DarkPreset()} {
		result := Validate(preset)
		if !result.OK() {
			t.Errorf("%s preset hard-failed: %+v", preset.Name, result.Violations)
		}
		if contrast := result.ContrastViolations(); len(contrast) != 0 {
			t.Errorf("%s preset has contrast violations: %+v", preset.Name, contrast)
		}
	}
}

func TestPresetsAreDeterministic(t *testing.T) {
	a, b := LightPreset(), LightPreset()
	for role, c := range a.Roles {
		if b.Roles[role] != c {
			t.Errorf("light preset role %s differs between builds", role)
		}
	}
}
