package expconfig

import (
	"encoding/json"
	"fmt"
	"os"
)

type rawExperimentConfig struct {
	Epsilon        float64 `json:"epsilon"`
	Alpha          float64 `json:"alpha"`
	Gamma          float64 `json:"gamma"`
	RewardPeriod   int     `json:"reward_period"`
	CuStepMapper   string  `json:"cu_step_mapper"`
	BufferSize     *int    `json:"buffer_size"`
	BufferSizeMult *int    `json:"buffer_size_multiplier"`
}

// ParseEnvironments reads the environment definitions file: a JSON list
// of environment configs.
func ParseEnvironments(envsPath string) ([]EnvConfig, error) {
	bs, err := os.ReadFile(envsPath)
	if err != nil {
		return nil, fmt.Errorf("reading environments file: %w", err)
	}
	var envConfigs []EnvConfig
	if err := json.Unmarshal(bs, &envConfigs); err != nil {
		return nil, fmt.Errorf("parsing environments file %s: %w", envsPath, err)
	}
	return envConfigs, nil
}

// ParseExperimentConfigs reads the experiment configurations file: a
// JSON list of configs. Each entry is validated on construction.
func ParseExperimentConfigs(configPath string) ([]ExperimentConfig, error) {
	bs, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading experiment configs file: %w", err)
	}
	var raw []rawExperimentConfig
	if err := json.Unmarshal(bs, &raw); err != nil {
		return nil, fmt.Errorf("parsing experiment configs file %s: %w", configPath, err)
	}

	configs := make([]ExperimentConfig, 0, len(raw))
	for i, r := range raw {
		daaf, err := NewDaafArgs(r.RewardPeriod, r.CuStepMapper, r.BufferSize, r.BufferSizeMult)
		if err != nil {
			return nil, fmt.Errorf("experiment config %d: %w", i, err)
		}
		configs = append(configs, ExperimentConfig{
			Control: ControlArgs{Epsilon: r.Epsilon, Alpha: r.Alpha, Gamma: r.Gamma},
			Daaf:    daaf,
		})
	}
	return configs, nil
}
