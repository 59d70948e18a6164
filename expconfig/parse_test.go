package expconfig

import (
	"os"
	"path"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	filePath := path.Join(t.TempDir(), name)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return filePath
}

func TestParseEnvironments(t *testing.T) {
	envsPath := writeTempFile(t, "envs.json", `[
		{"name": "grid-world", "level": "1", "args": {"height": 4, "width": 5}},
		{"name": "random-walk", "level": "2", "args": {"size": 7}}
	]`)
	envConfigs, err := ParseEnvironments(envsPath)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(envConfigs) != 2 {
		t.Fatalf("expected 2 env configs, got %d", len(envConfigs))
	}
	if envConfigs[0].Name != "grid-world" || envConfigs[0].Args["width"] != 5 {
		t.Errorf("unexpected first env config: %+v", envConfigs[0])
	}
	if envConfigs[1].Level != "2" {
		t.Errorf("unexpected second env config: %+v", envConfigs[1])
	}
}

func TestParseExperimentConfigs(t *testing.T) {
	configPath := writeTempFile(t, "configs.json", `[
		{"epsilon": 1.0, "alpha": 0.1, "gamma": 0.9, "reward_period": 2, "cu_step_mapper": "average-reward-mapper"},
		{"epsilon": 1.0, "alpha": 0.05, "gamma": 0.99, "reward_period": 4, "cu_step_mapper": "reward-estimation-ls-mapper", "buffer_size": 128}
	]`)
	configs, err := ParseExperimentConfigs(configPath)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("expected 2 configs, got %d", len(configs))
	}
	if configs[0].Daaf.CuStepMapper != AverageRewardMapper {
		t.Errorf("unexpected mapper %s", configs[0].Daaf.CuStepMapper)
	}
	if configs[1].Daaf.BufferSize == nil || *configs[1].Daaf.BufferSize != 128 {
		t.Errorf("buffer_size not parsed: %+v", configs[1].Daaf)
	}
}

func TestParseExperimentConfigsRejectsInvalid(t *testing.T) {
	badMapper := writeTempFile(t, "bad_mapper.json", `[
		{"epsilon": 1.0, "alpha": 0.1, "gamma": 0.9, "reward_period": 2, "cu_step_mapper": "bogus-mapper"}
	]`)
	if _, err := ParseExperimentConfigs(badMapper); err == nil {
		t.Errorf("expected error for unknown mapper")
	}

	bothBuffers := writeTempFile(t, "both_buffers.json", `[
		{"epsilon": 1.0, "alpha": 0.1, "gamma": 0.9, "reward_period": 2, "cu_step_mapper": "average-reward-mapper", "buffer_size": 10, "buffer_size_multiplier": 2}
	]`)
	if _, err := ParseExperimentConfigs(bothBuffers); err == nil {
		t.Errorf("expected error when both buffer sizing fields are set")
	}
}
