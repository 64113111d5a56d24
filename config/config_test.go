package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_MatchesPackageDefaults(t *testing.T) {
	c := Default()

	if c.Text.LineHeightTolerance != 0.5 {
		t.Errorf("expected line height tolerance 0.5, got %v", c.Text.LineHeightTolerance)
	}
	if c.Text.SyntheticSpaceRatio != 0.3 {
		t.Errorf("expected synthetic space ratio 0.3, got %v", c.Text.SyntheticSpaceRatio)
	}
	if c.Text.DirectionalBiasDistance != 50 {
		t.Errorf("expected bias distance 50, got %v", c.Text.DirectionalBiasDistance)
	}
	if c.Text.GridCellSize != 100 {
		t.Errorf("expected grid cell size 100, got %v", c.Text.GridCellSize)
	}
	if c.Overlay.RowTolerance != 5 || c.Overlay.MergeGap != 2 {
		t.Errorf("unexpected overlay defaults: %+v", c.Overlay)
	}
	if c.Input.MultiClickMillis != 400 {
		t.Errorf("expected 400ms multi-click window, got %d", c.Input.MultiClickMillis)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != Default() {
		t.Error("expected defaults for a missing file")
	}
}

func TestLoad_OverridesOnTopOfDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.toml")
	data := []byte("[text]\ngrid_cell_size = 50.0\n\n[input]\nmulti_click_millis = 250\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Text.GridCellSize != 50 {
		t.Errorf("expected overridden cell size 50, got %v", c.Text.GridCellSize)
	}
	if c.Input.MultiClickMillis != 250 {
		t.Errorf("expected overridden click window 250, got %d", c.Input.MultiClickMillis)
	}

	// Untouched sections keep their defaults.
	if c.Text.SyntheticSpaceRatio != 0.3 {
		t.Errorf("expected default synthetic space ratio, got %v", c.Text.SyntheticSpaceRatio)
	}
	if c.Overlay.MergeGap != 2 {
		t.Errorf("expected default merge gap, got %v", c.Overlay.MergeGap)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("not toml = = ="), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestConversions(t *testing.T) {
	c := Default()
	c.Text.GridCellSize = 25
	c.Input.MultiClickMillis = 300

	tm := c.TextModelConfig()
	if tm.Grid.CellSize != 25 {
		t.Errorf("expected converted cell size 25, got %v", tm.Grid.CellSize)
	}
	if tm.LineHeightTolerance != 0.5 {
		t.Errorf("expected tolerance carried through, got %v", tm.LineHeightTolerance)
	}

	in := c.InputConfig()
	if in.MultiClickTime != 300*time.Millisecond {
		t.Errorf("expected 300ms click window, got %v", in.MultiClickTime)
	}

	ov := c.OverlayConfig()
	if ov.RowTolerance != 5 || ov.MergeGap != 2 {
		t.Errorf("unexpected overlay conversion: %+v", ov)
	}
}
