package expconfig

// known methods to handle cumulative periodic rewards
const (
	IdentityMapper           = "identity-mapper"
	SingleStepMapper         = "single-step-mapper"
	AverageRewardMapper      = "average-reward-mapper"
	RewardEstimationLSMapper = "reward-estimation-ls-mapper"
	RewardImputationMapper   = "reward-imputation-mapper"
	CumulativeRewardMapper   = "cumulative-reward-mapper"
)

var CuMapperMethods = []string{
	IdentityMapper,
	SingleStepMapper,
	AverageRewardMapper,
	RewardImputationMapper,
	RewardEstimationLSMapper,
	CumulativeRewardMapper,
}

// DefaultBufferSizeMultiplier scales (num states x num actions) to size
// the reward estimation buffer when neither sizing field is given
const DefaultBufferSizeMultiplier = 256

// StateValuesContextKey indexes the serialized baseline state values in
// an ExperimentTask's context mapping
const StateValuesContextKey = "dyna_prog_state_values"
