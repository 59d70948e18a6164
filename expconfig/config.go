package expconfig

import "fmt"

// EnvConfig identifies one environment variant. Immutable once parsed.
type EnvConfig struct {
	Name  string         `json:"name"`
	Level string         `json:"level"`
	Args  map[string]int `json:"args"`
}

// ControlArgs holds the learning control parameters
type ControlArgs struct {
	Epsilon float64 `json:"epsilon"`
	Alpha   float64 `json:"alpha"`
	Gamma   float64 `json:"gamma"`
}

// DaafArgs holds the arguments for delayed aggregate anonymous feedback
// experiments: rewards are only observed as periodic aggregates and the
// mapper decides how the learner consumes them.
type DaafArgs struct {
	RewardPeriod   int
	CuStepMapper   string
	BufferSize     *int
	BufferSizeMult *int
}

// NewDaafArgs validates the mapper name against the known set and
// rejects setting both buffer sizing fields at once.
func NewDaafArgs(rewardPeriod int, cuStepMapper string, bufferSize, bufferSizeMult *int) (DaafArgs, error) {
	if cuStepMapper != "" && !knownMapper(cuStepMapper) {
		return DaafArgs{}, fmt.Errorf("cu_step_mapper value `%s` is unknown. Should be one of: %v", cuStepMapper, CuMapperMethods)
	}
	if bufferSize != nil && bufferSizeMult != nil {
		return DaafArgs{}, fmt.Errorf("either buffer_size or buffer_size_multiplier can be defined, never both: buffer_size=%d, buffer_size_multiplier=%d", *bufferSize, *bufferSizeMult)
	}
	return DaafArgs{
		RewardPeriod:   rewardPeriod,
		CuStepMapper:   cuStepMapper,
		BufferSize:     bufferSize,
		BufferSizeMult: bufferSizeMult,
	}, nil
}

func knownMapper(name string) bool {
	for _, m := range CuMapperMethods {
		if m == name {
			return true
		}
	}
	return false
}

// EstimationBufferSize resolves the buffer sizing policy against the
// state-action count of the environment the experiment runs on
func (d DaafArgs) EstimationBufferSize(numStates, numActions int) int {
	if d.BufferSize != nil {
		return *d.BufferSize
	}
	mult := DefaultBufferSizeMultiplier
	if d.BufferSizeMult != nil {
		mult = *d.BufferSizeMult
	}
	return mult * numStates * numActions
}

// ExperimentConfig is one learning and evaluation configuration
type ExperimentConfig struct {
	Control ControlArgs
	Daaf    DaafArgs
}

// Experiment pairs one environment with one experiment configuration
type Experiment struct {
	Env    EnvConfig
	Config ExperimentConfig
}

// DiscountFactor is the gamma used both for learning and for the
// converged state-value baseline the experiment is scored against
func (e Experiment) DiscountFactor() float64 {
	return e.Config.Control.Gamma
}

// RunConfig is shared by every task of a batch
type RunConfig struct {
	NumEpisodes         int
	LogEpisodeFrequency int
	OutputDir           string
}

// ExperimentTask is one dispatchable unit of work: a single run of one
// experiment. Context carries plain serializable values across the
// worker boundary.
type ExperimentTask struct {
	ExpID      string
	RunID      int
	Experiment Experiment
	Run        RunConfig
	Context    map[string][]float64
}

// ID identifies the task uniquely within its batch
func (t ExperimentTask) ID() string {
	return fmt.Sprintf("%s/%d", t.ExpID, t.RunID)
}
