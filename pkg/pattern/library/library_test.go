package library

import (
	"strings"
	"testing"

	"github.com/knitgrid/knitgrid/pkg/errors"
)

func TestDefaultLibraryCounts(t *testing.T) {
	tests := []struct {
		typ      string
		consumes int
		produces int
	}{
		{"knit", 1, 1},
		{"purl", 1, 1},
		{"yo", 0, 1},
		{"k2tog", 2, 1},
		{"skp", 2, 1},
		{"cast on", 0, 1},
		{"bind off", 1, 0},
		{"kfb", 1, 2},
	}

	lib := Default()
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			def, ok := lib.Lookup(tt.typ)
			if !ok {
				t.Fatalf("Lookup(%q) missing", tt.typ)
			}
			if got := def.NumberOfConsumedMeshes(); got != tt.consumes {
				t.Errorf("consumes = %d, want %d", got, tt.consumes)
			}
			if got := def.NumberOfProducedMeshes(); got != tt.produces {
				t.Errorf("produces = %d, want %d", got, tt.produces)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	src := `
[[instruction]]
type = "brioche"
consumes = 2
produces = 2
color = "#123456"
`
	lib, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def, ok := lib.Lookup("brioche")
	if !ok {
		t.Fatal("custom type missing")
	}
	if def.NumberOfConsumedMeshes() != 2 || def.NumberOfProducedMeshes() != 2 {
		t.Errorf("counts = %d/%d, want 2/2", def.NumberOfConsumedMeshes(), def.NumberOfProducedMeshes())
	}
	if def.Color != "#123456" {
		t.Errorf("color = %q", def.Color)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	if _, err := Load(strings.NewReader("[[instruction")); err == nil {
		t.Fatal("malformed TOML should fail")
	}
}

func TestAsInstruction(t *testing.T) {
	lib := Default()

	tests := []struct {
		name     string
		desc     map[string]any
		consumes int
		produces int
		color    string
		wantCode errors.Code
	}{
		{
			name:     "LibraryDefaults",
			desc:     map[string]any{"type": "k2tog"},
			consumes: 2,
			produces: 1,
			color:    "#ffaaaa",
		},
		{
			name: "DescriptorOverridesCounts",
			desc: map[string]any{
				"type":                      "cast on",
				"number of produced meshes": 4,
			},
			consumes: 0,
			produces: 4,
			color:    "#ccccff",
		},
		{
			name:     "DescriptorOverridesColor",
			desc:     map[string]any{"type": "knit", "color": "black"},
			consumes: 1,
			produces: 1,
			color:    "black",
		},
		{
			name:     "NoDeclaredColor",
			desc:     map[string]any{"type": "knit"},
			consumes: 1,
			produces: 1,
			color:    "",
		},
		{
			name:     "UnknownType",
			desc:     map[string]any{"type": "moss stitch"},
			wantCode: errors.ErrCodeUnknownInstruction,
		},
		{
			name:     "MissingType",
			desc:     map[string]any{"color": "red"},
			wantCode: errors.ErrCodeUnknownInstruction,
		},
		{
			name: "NegativeCount",
			desc: map[string]any{
				"type":                      "knit",
				"number of consumed meshes": -1,
			},
			wantCode: errors.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := lib.AsInstruction(tt.desc)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("AsInstruction: %v", err)
			}
			if spec.Consumes != tt.consumes || spec.Produces != tt.produces {
				t.Errorf("counts = %d/%d, want %d/%d", spec.Consumes, spec.Produces, tt.consumes, tt.produces)
			}
			if spec.Color != tt.color {
				t.Errorf("color = %q, want %q", spec.Color, tt.color)
			}
		})
	}
}

func TestAsInstructionKeepsExtraAttributes(t *testing.T) {
	spec, err := Default().AsInstruction(map[string]any{
		"type":    "knit",
		"comment": "edge stitch",
	})
	if err != nil {
		t.Fatalf("AsInstruction: %v", err)
	}
	if v, ok := spec.Attributes["comment"]; !ok || v != "edge stitch" {
		t.Errorf("extra attribute lost: %v, %v", v, ok)
	}
	if _, ok := spec.Attributes["type"]; ok {
		t.Error("typed fields should not leak into Attributes")
	}
}
