// Package config aggregates the tunable parameters of a document view and
// loads overrides from TOML files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/tsawler/overmark/input"
	"github.com/tsawler/overmark/overlay"
	"github.com/tsawler/overmark/spatial"
	"github.com/tsawler/overmark/textmodel"
)

// Config collects every tunable of a view in one place. Zero values are not
// meaningful; start from Default() and override.
type Config struct {
	Text    Text    `toml:"text"`
	Overlay Overlay `toml:"overlay"`
	Input   Input   `toml:"input"`
}

// Text configures document building and hit-testing.
type Text struct {
	// LineHeightTolerance groups fragments into lines when their Y
	// positions differ by less than this fraction of fragment height.
	LineHeightTolerance float64 `toml:"line_height_tolerance"`

	// SyntheticSpaceRatio is the horizontal gap, as a fraction of fragment
	// height, beyond which a synthetic space separates same-line fragments.
	SyntheticSpaceRatio float64 `toml:"synthetic_space_ratio"`

	// DirectionalBiasDistance is how far in points a click must be from the
	// drag anchor before empty-space hit-testing biases toward the drag
	// direction.
	DirectionalBiasDistance float64 `toml:"directional_bias_distance"`

	// GridCellSize is the spatial index cell size in points.
	GridCellSize float64 `toml:"grid_cell_size"`

	// GridYWeight scales the vertical component of nearest-fragment
	// distance, biasing hits toward same-line fragments.
	GridYWeight float64 `toml:"grid_y_weight"`
}

// Overlay configures selection and highlight rectangle generation.
type Overlay struct {
	// RowTolerance is the rounding bucket in points used to group
	// rectangles into rows before merging.
	RowTolerance float64 `toml:"row_tolerance"`

	// MergeGap is the maximum horizontal gap in points between two
	// same-row rectangles that still merge into one.
	MergeGap float64 `toml:"merge_gap"`
}

// Input configures pointer gesture handling.
type Input struct {
	// MultiClickMillis is the maximum time in milliseconds between clicks
	// of one double or triple click sequence.
	MultiClickMillis int64 `toml:"multi_click_millis"`

	// MultiClickDistance is the maximum Manhattan distance in points
	// between clicks of one sequence.
	MultiClickDistance float64 `toml:"multi_click_distance"`
}

// Default returns the built-in defaults, matching each package's own
// DefaultConfig.
func Default() Config {
	text := textmodel.DefaultConfig()
	ov := overlay.DefaultConfig()
	in := input.DefaultConfig()
	return Config{
		Text: Text{
			LineHeightTolerance:     text.LineHeightTolerance,
			SyntheticSpaceRatio:     text.SyntheticSpaceRatio,
			DirectionalBiasDistance: text.DirectionalBiasDistance,
			GridCellSize:            text.Grid.CellSize,
			GridYWeight:             text.Grid.YWeight,
		},
		Overlay: Overlay{
			RowTolerance: ov.RowTolerance,
			MergeGap:     ov.MergeGap,
		},
		Input: Input{
			MultiClickMillis:   in.MultiClickTime.Milliseconds(),
			MultiClickDistance: in.MultiClickDistance,
		},
	}
}

// Load reads TOML overrides from path on top of the defaults. A missing
// file is not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return c, nil
}

// TextModelConfig converts to the textmodel package's configuration.
func (c Config) TextModelConfig() textmodel.Config {
	return textmodel.Config{
		LineHeightTolerance:     c.Text.LineHeightTolerance,
		SyntheticSpaceRatio:     c.Text.SyntheticSpaceRatio,
		DirectionalBiasDistance: c.Text.DirectionalBiasDistance,
		Grid: spatial.GridConfig{
			CellSize: c.Text.GridCellSize,
			YWeight:  c.Text.GridYWeight,
		},
	}
}

// OverlayConfig converts to the overlay package's configuration.
func (c Config) OverlayConfig() overlay.Config {
	return overlay.Config{
		RowTolerance: c.Overlay.RowTolerance,
		MergeGap:     c.Overlay.MergeGap,
	}
}

// InputConfig converts to the input package's configuration.
func (c Config) InputConfig() input.Config {
	return input.Config{
		MultiClickTime:     time.Duration(c.Input.MultiClickMillis) * time.Millisecond,
		MultiClickDistance: c.Input.MultiClickDistance,
	}
}
