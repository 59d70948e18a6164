package eval

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/dsv-rl/daaf/envs"
	"github.com/dsv-rl/daaf/expconfig"
)

// transition is one observed step of an episode
type transition struct {
	state  int
	action int
	reward float64
	next   int
}

// stepMapper rewrites the reward stream the learner sees. Under delayed
// aggregate anonymous feedback only the cumulative reward of each
// period is observable; the mapper decides how that aggregate is fed
// back into per-step updates.
type stepMapper interface {
	// Map consumes one observed transition and returns the
	// transitions the learner updates on now, possibly none
	Map(t transition) []transition
	// EndEpisode flushes state buffered for an unfinished period
	EndEpisode() []transition
}

func newStepMapper(args expconfig.DaafArgs, mdp *envs.MDP) (stepMapper, error) {
	if args.CuStepMapper == "" || args.CuStepMapper == expconfig.IdentityMapper {
		return &identityMapper{}, nil
	}
	period := args.RewardPeriod
	if period < 1 {
		return nil, fmt.Errorf("reward_period must be positive for mapper %s", args.CuStepMapper)
	}
	switch args.CuStepMapper {
	case expconfig.SingleStepMapper:
		return &singleStepMapper{period: period}, nil
	case expconfig.AverageRewardMapper:
		return &averageRewardMapper{period: period}, nil
	case expconfig.CumulativeRewardMapper:
		return &cumulativeRewardMapper{period: period}, nil
	case expconfig.RewardImputationMapper:
		return newImputationMapper(period, mdp), nil
	case expconfig.RewardEstimationLSMapper:
		rows := args.EstimationBufferSize(mdp.NumStates, mdp.NumActions) / period
		if rows < 1 {
			rows = 1
		}
		return newLeastSquaresMapper(period, mdp, rows), nil
	}
	return nil, fmt.Errorf("cu_step_mapper value `%s` is unknown. Should be one of: %v", args.CuStepMapper, expconfig.CuMapperMethods)
}

// identityMapper passes every reward through unchanged
type identityMapper struct{}

func (m *identityMapper) Map(t transition) []transition { return []transition{t} }
func (m *identityMapper) EndEpisode() []transition      { return nil }

// singleStepMapper attributes the whole period aggregate to the last
// step of the period; earlier steps are seen with zero reward
type singleStepMapper struct {
	period int
	step   int
	sum    float64
}

func (m *singleStepMapper) Map(t transition) []transition {
	m.sum += t.reward
	m.step++
	if m.step%m.period == 0 {
		t.reward = m.sum
		m.sum = 0
	} else {
		t.reward = 0
	}
	return []transition{t}
}

func (m *singleStepMapper) EndEpisode() []transition {
	m.step = 0
	m.sum = 0
	return nil
}

// averageRewardMapper buffers a period and replays it with the mean
// reward of the period on each step
type averageRewardMapper struct {
	period int
	buffer []transition
	sum    float64
}

func (m *averageRewardMapper) flush() []transition {
	if len(m.buffer) == 0 {
		return nil
	}
	avg := m.sum / float64(len(m.buffer))
	out := make([]transition, len(m.buffer))
	for i, b := range m.buffer {
		b.reward = avg
		out[i] = b
	}
	m.buffer = m.buffer[:0]
	m.sum = 0
	return out
}

func (m *averageRewardMapper) Map(t transition) []transition {
	m.sum += t.reward
	m.buffer = append(m.buffer, t)
	if len(m.buffer) == m.period {
		return m.flush()
	}
	return nil
}

func (m *averageRewardMapper) EndEpisode() []transition {
	return m.flush()
}

// cumulativeRewardMapper exposes the running episode total at each
// period boundary and zero in between
type cumulativeRewardMapper struct {
	period int
	step   int
	total  float64
}

func (m *cumulativeRewardMapper) Map(t transition) []transition {
	m.total += t.reward
	m.step++
	if m.step%m.period == 0 {
		t.reward = m.total
	} else {
		t.reward = 0
	}
	return []transition{t}
}

func (m *cumulativeRewardMapper) EndEpisode() []transition {
	m.step = 0
	m.total = 0
	return nil
}

// imputationMapper keeps a running per state-action reward estimate,
// refreshed at each period boundary by spreading the aggregate evenly
// over the period's visits, and substitutes the estimate on every step
type imputationMapper struct {
	period    int
	estimates [][]float64
	visits    [][]float64
	buffer    []transition
	sum       float64
}

func newImputationMapper(period int, mdp *envs.MDP) *imputationMapper {
	estimates := make([][]float64, mdp.NumStates)
	visits := make([][]float64, mdp.NumStates)
	for s := range estimates {
		estimates[s] = make([]float64, mdp.NumActions)
		visits[s] = make([]float64, mdp.NumActions)
	}
	return &imputationMapper{period: period, estimates: estimates, visits: visits}
}

func (m *imputationMapper) flush() []transition {
	if len(m.buffer) == 0 {
		return nil
	}
	share := m.sum / float64(len(m.buffer))
	for _, b := range m.buffer {
		n := m.visits[b.state][b.action] + 1
		m.visits[b.state][b.action] = n
		m.estimates[b.state][b.action] += (share - m.estimates[b.state][b.action]) / n
	}
	out := make([]transition, len(m.buffer))
	for i, b := range m.buffer {
		b.reward = m.estimates[b.state][b.action]
		out[i] = b
	}
	m.buffer = m.buffer[:0]
	m.sum = 0
	return out
}

func (m *imputationMapper) Map(t transition) []transition {
	m.sum += t.reward
	m.buffer = append(m.buffer, t)
	if len(m.buffer) == m.period {
		return m.flush()
	}
	return nil
}

func (m *imputationMapper) EndEpisode() []transition {
	return m.flush()
}

// leastSquaresMapper estimates per state-action rewards by solving the
// linear system (period visit counts) x (rewards) = (period aggregates)
// over a sliding window of completed periods
type leastSquaresMapper struct {
	period     int
	numPairs   int
	numActions int
	maxRows    int

	rows    [][]float64
	targets []float64

	estimates []float64
	solved    bool

	buffer []transition
	sum    float64
}

func newLeastSquaresMapper(period int, mdp *envs.MDP, maxRows int) *leastSquaresMapper {
	numPairs := mdp.NumStates * mdp.NumActions
	return &leastSquaresMapper{
		period:     period,
		numPairs:   numPairs,
		numActions: mdp.NumActions,
		maxRows:    maxRows,
		estimates:  make([]float64, numPairs),
	}
}

func (m *leastSquaresMapper) pair(state, action int) int {
	return state*m.numActions + action
}

func (m *leastSquaresMapper) solve() {
	if len(m.rows) < m.numPairs {
		return
	}
	data := make([]float64, 0, len(m.rows)*m.numPairs)
	for _, row := range m.rows {
		data = append(data, row...)
	}
	visitMatrix := mat.NewDense(len(m.rows), m.numPairs, data)
	aggregates := mat.NewVecDense(len(m.targets), m.targets)

	var qr mat.QR
	qr.Factorize(visitMatrix)
	var solution mat.Dense
	if err := qr.SolveTo(&solution, false, aggregates); err != nil {
		// rank deficient window, keep the previous estimate
		return
	}
	for i := 0; i < m.numPairs; i++ {
		m.estimates[i] = solution.At(i, 0)
	}
	m.solved = true
}

func (m *leastSquaresMapper) flush() []transition {
	if len(m.buffer) == 0 {
		return nil
	}
	row := make([]float64, m.numPairs)
	for _, b := range m.buffer {
		row[m.pair(b.state, b.action)]++
	}
	m.rows = append(m.rows, row)
	m.targets = append(m.targets, m.sum)
	if len(m.rows) > m.maxRows {
		m.rows = m.rows[1:]
		m.targets = m.targets[1:]
	}
	m.solve()

	var out []transition
	if m.solved {
		out = make([]transition, len(m.buffer))
		for i, b := range m.buffer {
			b.reward = m.estimates[m.pair(b.state, b.action)]
			out[i] = b
		}
	}
	m.buffer = m.buffer[:0]
	m.sum = 0
	return out
}

func (m *leastSquaresMapper) Map(t transition) []transition {
	m.sum += t.reward
	m.buffer = append(m.buffer, t)
	if len(m.buffer) == m.period {
		return m.flush()
	}
	return nil
}

func (m *leastSquaresMapper) EndEpisode() []transition {
	return m.flush()
}
