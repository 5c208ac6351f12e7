package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTuningConfig(t *testing.T) {
	cfg := DefaultTuningConfig()

	if cfg.SmoothingAlpha == nil || *cfg.SmoothingAlpha != 0.3 {
		t.Errorf("Expected SmoothingAlpha 0.3, got %v", cfg.SmoothingAlpha)
	}
	if cfg.BikeType == nil || *cfg.BikeType != "road" {
		t.Errorf("Expected BikeType road, got %v", cfg.BikeType)
	}

	assert.Equal(t, 0.3, cfg.GetConfidenceThreshold())
	assert.Equal(t, 0.25, cfg.GetSideMinScore())
	assert.Equal(t, 0.15, cfg.GetSideMargin())
	assert.Equal(t, 30.0, cfg.GetArcTolerance())
	assert.Equal(t, 15.0, cfg.GetSnapStepDegrees())
	assert.False(t, cfg.GetFlipHorizontal())
}

func TestEmptyConfigGettersMatchDefaults(t *testing.T) {
	empty := EmptyTuningConfig()
	def := DefaultTuningConfig()

	assert.Equal(t, def.GetSmoothingAlpha(), empty.GetSmoothingAlpha())
	assert.Equal(t, def.GetConfidenceThreshold(), empty.GetConfidenceThreshold())
	assert.Equal(t, def.GetSideMinScore(), empty.GetSideMinScore())
	assert.Equal(t, def.GetSideMargin(), empty.GetSideMargin())
	assert.Equal(t, def.GetBikeType(), empty.GetBikeType())
	assert.Equal(t, def.GetPointRadius(), empty.GetPointRadius())
	assert.Equal(t, def.GetPointHitSlop(), empty.GetPointHitSlop())
	assert.Equal(t, def.GetArcPointExclusion(), empty.GetArcPointExclusion())
	assert.Equal(t, def.GetArcRadius(), empty.GetArcRadius())
	assert.Equal(t, def.GetArcTolerance(), empty.GetArcTolerance())
	assert.Equal(t, def.GetSnapStepDegrees(), empty.GetSnapStepDegrees())
	assert.Equal(t, def.GetLabelOffset(), empty.GetLabelOffset())
	assert.Equal(t, def.GetLabelFontSize(), empty.GetLabelFontSize())
	assert.Equal(t, def.GetFlipHorizontal(), empty.GetFlipHorizontal())
}

func TestLoadTuningConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	testJSON := `{
  "smoothing_alpha": 0.5,
  "bike_type": "tt",
  "snap_step_degrees": 5,
  "flip_horizontal": true
}`
	require.NoError(t, os.WriteFile(configPath, []byte(testJSON), 0644))

	cfg, err := LoadTuningConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.GetSmoothingAlpha())
	assert.Equal(t, "tt", cfg.GetBikeType())
	assert.Equal(t, 5.0, cfg.GetSnapStepDegrees())
	assert.True(t, cfg.GetFlipHorizontal())
	// Omitted fields fall back to defaults.
	assert.Nil(t, cfg.ArcRadius)
	assert.Equal(t, 40.0, cfg.GetArcRadius())
}

func TestLoadTuningConfig_DefaultsFileMatchesBuiltins(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	if diff := cmp.Diff(DefaultTuningConfig(), cfg); diff != "" {
		t.Errorf("defaults file drifted from built-in defaults (-builtin +file):\n%s", diff)
	}
}

func TestLoadTuningConfigMissing(t *testing.T) {
	_, err := LoadTuningConfig("/nonexistent/path/to/config.json")
	assert.Error(t, err)
}

func TestLoadTuningConfigWrongExtension(t *testing.T) {
	_, err := LoadTuningConfig("config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".json")
}

func TestLoadTuningConfigInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	invalidJSON := filepath.Join(tmpDir, "invalid_config.json")
	require.NoError(t, os.WriteFile(invalidJSON, []byte(`{"smoothing_alpha": "x"`), 0644))
	_, err := LoadTuningConfig(invalidJSON)
	assert.Error(t, err)

	outOfRange := filepath.Join(tmpDir, "range_config.json")
	require.NoError(t, os.WriteFile(outOfRange, []byte(`{"side_margin": 2}`), 0644))
	_, err = LoadTuningConfig(outOfRange)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "side_margin"))
}

func TestLoadTuningConfigTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.json")
	big := make([]byte, 1024*1024+1)
	for i := range big {
		big[i] = ' '
	}
	require.NoError(t, os.WriteFile(path, big, 0644))

	_, err := LoadTuningConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestReadTuningConfig(t *testing.T) {
	cfg, err := ReadTuningConfig(strings.NewReader(`{"bike_type": "mtb", "label_offset": 20}`))
	require.NoError(t, err)
	assert.Equal(t, "mtb", cfg.GetBikeType())
	assert.Equal(t, 20.0, cfg.GetLabelOffset())
	assert.Equal(t, 0.3, cfg.GetSmoothingAlpha())

	_, err = ReadTuningConfig(strings.NewReader(`{"smoothing_alpha": 1.5}`))
	assert.Error(t, err)

	_, err = ReadTuningConfig(strings.NewReader(strings.Repeat(" ", maxConfigSize+1)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TuningConfig
		wantErr bool
	}{
		{name: "valid config", cfg: DefaultTuningConfig()},
		{name: "empty config is valid", cfg: &TuningConfig{}},
		{name: "alpha too low", cfg: &TuningConfig{SmoothingAlpha: ptrFloat64(-0.1)}, wantErr: true},
		{name: "alpha too high", cfg: &TuningConfig{SmoothingAlpha: ptrFloat64(1.5)}, wantErr: true},
		{name: "confidence too high", cfg: &TuningConfig{ConfidenceThreshold: ptrFloat64(1.01)}, wantErr: true},
		{name: "negative arc tolerance", cfg: &TuningConfig{ArcTolerance: ptrFloat64(-1)}, wantErr: true},
		{name: "snap step too large", cfg: &TuningConfig{SnapStepDegrees: ptrFloat64(200)}, wantErr: true},
		{name: "zero font size", cfg: &TuningConfig{LabelFontSize: ptrFloat64(0)}, wantErr: true},
		{name: "empty bike type", cfg: &TuningConfig{BikeType: ptrString("")}, wantErr: true},
		{name: "zero snap step disables snapping", cfg: &TuningConfig{SnapStepDegrees: ptrFloat64(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
