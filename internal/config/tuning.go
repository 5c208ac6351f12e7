package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
const DefaultConfigPath = "config/tuning.defaults.json"

// maxConfigSize bounds the size of a tuning file.
const maxConfigSize = 1 * 1024 * 1024 // 1MB

// Built-in defaults used when a field is absent from the JSON.
const (
	defaultSmoothingAlpha      = 0.3
	defaultConfidenceThreshold = 0.3
	defaultSideMinScore        = 0.25
	defaultSideMargin          = 0.15
	defaultBikeType            = "road"
	defaultPointRadius         = 6.0
	defaultPointHitSlop        = 4.0
	defaultArcPointExclusion   = 2.0
	defaultArcRadius           = 40.0
	defaultArcTolerance        = 30.0
	defaultSnapStepDegrees     = 15.0
	defaultLabelOffset         = 12.0
	defaultLabelFontSize       = 14.0
)

// TuningConfig represents the root configuration for the angle engine.
// Pointer fields distinguish "absent" from zero so partial files are safe;
// use the Get* accessors to read effective values.
type TuningConfig struct {
	// Pose pipeline
	SmoothingAlpha      *float64 `json:"smoothing_alpha,omitempty"`
	ConfidenceThreshold *float64 `json:"confidence_threshold,omitempty"`
	SideMinScore        *float64 `json:"side_min_score,omitempty"`
	SideMargin          *float64 `json:"side_margin,omitempty"`
	BikeType            *string  `json:"bike_type,omitempty"`

	// Authoring canvas, in pixels
	PointRadius       *float64 `json:"point_radius,omitempty"`
	PointHitSlop      *float64 `json:"point_hit_slop,omitempty"`
	ArcPointExclusion *float64 `json:"arc_point_exclusion,omitempty"`
	ArcRadius         *float64 `json:"arc_radius,omitempty"`
	ArcTolerance      *float64 `json:"arc_tolerance,omitempty"`
	SnapStepDegrees   *float64 `json:"snap_step_degrees,omitempty"`

	// Rendering
	LabelOffset    *float64 `json:"label_offset,omitempty"`
	LabelFontSize  *float64 `json:"label_font_size,omitempty"`
	FlipHorizontal *bool    `json:"flip_horizontal,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field populated from
// the built-in defaults.
func DefaultTuningConfig() *TuningConfig {
	return &TuningConfig{
		SmoothingAlpha:      ptrFloat64(defaultSmoothingAlpha),
		ConfidenceThreshold: ptrFloat64(defaultConfidenceThreshold),
		SideMinScore:        ptrFloat64(defaultSideMinScore),
		SideMargin:          ptrFloat64(defaultSideMargin),
		BikeType:            ptrString(defaultBikeType),
		PointRadius:         ptrFloat64(defaultPointRadius),
		PointHitSlop:        ptrFloat64(defaultPointHitSlop),
		ArcPointExclusion:   ptrFloat64(defaultArcPointExclusion),
		ArcRadius:           ptrFloat64(defaultArcRadius),
		ArcTolerance:        ptrFloat64(defaultArcTolerance),
		SnapStepDegrees:     ptrFloat64(defaultSnapStepDegrees),
		LabelOffset:         ptrFloat64(defaultLabelOffset),
		LabelFontSize:       ptrFloat64(defaultLabelFontSize),
		FlipHorizontal:      ptrBool(false),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxConfigSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parseTuningConfig(data)
}

// ReadTuningConfig reads a TuningConfig from r with the same defaults and
// validation as LoadTuningConfig.
func ReadTuningConfig(r io.Reader) (*TuningConfig, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxConfigSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if len(data) > maxConfigSize {
		return nil, fmt.Errorf("config too large (max %d bytes)", maxConfigSize)
	}
	return parseTuningConfig(data)
}

func parseTuningConfig(data []byte) (*TuningConfig, error) {
	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/<pkg>/
		"../../../" + DefaultConfigPath, // from cmd/<tool>/ subdirectories
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	unit := []struct {
		name string
		v    *float64
	}{
		{"smoothing_alpha", c.SmoothingAlpha},
		{"confidence_threshold", c.ConfidenceThreshold},
		{"side_min_score", c.SideMinScore},
		{"side_margin", c.SideMargin},
	}
	for _, f := range unit {
		if f.v != nil && (*f.v < 0 || *f.v > 1) {
			return fmt.Errorf("%s must be between 0 and 1, got %f", f.name, *f.v)
		}
	}

	nonNegative := []struct {
		name string
		v    *float64
	}{
		{"point_radius", c.PointRadius},
		{"point_hit_slop", c.PointHitSlop},
		{"arc_point_exclusion", c.ArcPointExclusion},
		{"arc_radius", c.ArcRadius},
		{"arc_tolerance", c.ArcTolerance},
		{"snap_step_degrees", c.SnapStepDegrees},
		{"label_offset", c.LabelOffset},
	}
	for _, f := range nonNegative {
		if f.v != nil && *f.v < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", f.name, *f.v)
		}
	}

	if c.SnapStepDegrees != nil && *c.SnapStepDegrees > 180 {
		return fmt.Errorf("snap_step_degrees must be at most 180, got %f", *c.SnapStepDegrees)
	}
	if c.LabelFontSize != nil && *c.LabelFontSize <= 0 {
		return fmt.Errorf("label_font_size must be positive, got %f", *c.LabelFontSize)
	}
	if c.BikeType != nil && *c.BikeType == "" {
		return fmt.Errorf("bike_type must not be empty")
	}

	return nil
}

func getFloat(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// GetSmoothingAlpha returns the smoothing_alpha value or the default.
func (c *TuningConfig) GetSmoothingAlpha() float64 {
	return getFloat(c.SmoothingAlpha, defaultSmoothingAlpha)
}

// GetConfidenceThreshold returns the confidence_threshold value or the default.
func (c *TuningConfig) GetConfidenceThreshold() float64 {
	return getFloat(c.ConfidenceThreshold, defaultConfidenceThreshold)
}

// GetSideMinScore returns the side_min_score value or the default.
func (c *TuningConfig) GetSideMinScore() float64 {
	return getFloat(c.SideMinScore, defaultSideMinScore)
}

// GetSideMargin returns the side_margin value or the default.
func (c *TuningConfig) GetSideMargin() float64 {
	return getFloat(c.SideMargin, defaultSideMargin)
}

// GetBikeType returns the bike_type value or the default.
func (c *TuningConfig) GetBikeType() string {
	if c.BikeType == nil {
		return defaultBikeType
	}
	return *c.BikeType
}

// GetPointRadius returns the point_radius value or the default.
func (c *TuningConfig) GetPointRadius() float64 {
	return getFloat(c.PointRadius, defaultPointRadius)
}

// GetPointHitSlop returns the point_hit_slop value or the default.
func (c *TuningConfig) GetPointHitSlop() float64 {
	return getFloat(c.PointHitSlop, defaultPointHitSlop)
}

// GetArcPointExclusion returns the arc_point_exclusion value or the default.
func (c *TuningConfig) GetArcPointExclusion() float64 {
	return getFloat(c.ArcPointExclusion, defaultArcPointExclusion)
}

// GetArcRadius returns the arc_radius value or the default.
func (c *TuningConfig) GetArcRadius() float64 {
	return getFloat(c.ArcRadius, defaultArcRadius)
}

// GetArcTolerance returns the arc_tolerance value or the default.
func (c *TuningConfig) GetArcTolerance() float64 {
	return getFloat(c.ArcTolerance, defaultArcTolerance)
}

// GetSnapStepDegrees returns the snap_step_degrees value or the default.
func (c *TuningConfig) GetSnapStepDegrees() float64 {
	return getFloat(c.SnapStepDegrees, defaultSnapStepDegrees)
}

// GetLabelOffset returns the label_offset value or the default.
func (c *TuningConfig) GetLabelOffset() float64 {
	return getFloat(c.LabelOffset, defaultLabelOffset)
}

// GetLabelFontSize returns the label_font_size value or the default.
func (c *TuningConfig) GetLabelFontSize() float64 {
	return getFloat(c.LabelFontSize, defaultLabelFontSize)
}

// GetFlipHorizontal returns the flip_horizontal value or the default.
func (c *TuningConfig) GetFlipHorizontal() bool {
	if c.FlipHorizontal == nil {
		return false
	}
	return *c.FlipHorizontal
}
