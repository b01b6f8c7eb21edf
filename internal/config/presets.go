package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/licita-tools/pesquisa-cli/internal/model"
)

// PresetFile holds named threshold presets, so different procurement
// categories can carry their own band rules.
type PresetFile struct {
	Presets map[string]model.AnalysisConfig `yaml:"presets"`
}

// LoadPresets reads a threshold preset file from a YAML file and
// validates every preset.
func LoadPresets(path string) (*PresetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read presets %s", path)
	}

	var pf PresetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, eris.Wrapf(err, "config: parse presets %s", path)
	}
	if len(pf.Presets) == 0 {
		return nil, eris.Errorf("config: presets file %s defines no presets", path)
	}

	for name, preset := range pf.Presets {
		if err := preset.Validate(); err != nil {
			return nil, eris.Wrapf(err, "config: preset %q", name)
		}
	}

	return &pf, nil
}

// Preset returns the named preset.
func (pf *PresetFile) Preset(name string) (model.AnalysisConfig, error) {
	preset, ok := pf.Presets[name]
	if !ok {
		return model.AnalysisConfig{}, eris.Errorf("config: preset %q not found", name)
	}
	return preset, nil
}
