// Package baselines indexes converged dynamic-programming state values
// by (environment name, level, discount factor). Solving an MDP to its
// fixed point is expensive; the index computes each distinct key once
// and persists the result so later batches can reuse it.
package baselines

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dsv-rl/daaf/envs"
)

// Key identifies one baseline computation
type Key struct {
	EnvName        string
	Level          string
	DiscountFactor float64
}

func (k Key) String() string {
	return fmt.Sprintf("%s-%s-%s", k.EnvName, k.Level, strconv.FormatFloat(k.DiscountFactor, 'f', -1, 64))
}

// Spec is one index-build input: a key plus the MDP to solve if no
// persisted value exists for the key
type Spec struct {
	EnvName        string
	Level          string
	DiscountFactor float64
	MDP            *envs.MDP
}

func (s Spec) key() Key {
	return Key{EnvName: s.EnvName, Level: s.Level, DiscountFactor: s.DiscountFactor}
}

// Solver computes converged state values for an MDP and discount factor
type Solver func(mdp *envs.MDP, gamma float64) []float64

// ErrNotIndexed is returned by Get for keys the index was not built
// with. There is no lazy fallback: callers must build the index over
// the full key set up front.
var ErrNotIndexed = errors.New("state values not indexed")

// IntegrityError reports the same nominal key observed with differing
// MDP dynamics, either within one build or against a persisted entry.
// Silent overwrite would let two experiments disagree on ground truth,
// so the build fails instead.
type IntegrityError struct {
	Key         Key
	Fingerprint string
	Conflicting string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("baseline key %s maps to conflicting MDP dynamics (%.8s vs %.8s)", e.Key, e.Fingerprint, e.Conflicting)
}

// Index holds the computed state values. Read-only after BuildIndex.
type Index struct {
	values map[Key][]float64
}

// BuildIndex deduplicates the specs by key and resolves each distinct
// key once: from the store when a persisted entry exists, otherwise by
// solving the spec's MDP and persisting the result. A nil store
// disables persistence.
func BuildIndex(specs []Spec, solve Solver, store Store) (*Index, error) {
	values := make(map[Key][]float64)
	fingerprints := make(map[Key]string)

	for _, spec := range specs {
		key := spec.key()
		fingerprint := spec.MDP.Fingerprint()
		if seen, ok := fingerprints[key]; ok {
			if seen != fingerprint {
				return nil, &IntegrityError{Key: key, Fingerprint: seen, Conflicting: fingerprint}
			}
			continue
		}
		fingerprints[key] = fingerprint

		if store != nil {
			entry, ok, err := store.Load(key)
			if err != nil {
				return nil, fmt.Errorf("loading baseline %s: %w", key, err)
			}
			if ok {
				if entry.Fingerprint != fingerprint {
					return nil, &IntegrityError{Key: key, Fingerprint: fingerprint, Conflicting: entry.Fingerprint}
				}
				values[key] = entry.Values
				continue
			}
		}

		computed := solve(spec.MDP, spec.DiscountFactor)
		if store != nil {
			entry := &Entry{Values: computed, Fingerprint: fingerprint}
			if err := store.Save(key, entry); err != nil {
				return nil, fmt.Errorf("persisting baseline %s: %w", key, err)
			}
		}
		values[key] = computed
	}

	return &Index{values: values}, nil
}

// Get returns a copy of the state values for the key. Fails for keys
// outside the set the index was built from.
func (i *Index) Get(envName, level string, discountFactor float64) ([]float64, error) {
	key := Key{EnvName: envName, Level: level, DiscountFactor: discountFactor}
	stored, ok := i.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotIndexed, key)
	}
	out := make([]float64, len(stored))
	copy(out, stored)
	return out, nil
}

// Len reports the number of distinct keys in the index
func (i *Index) Len() int {
	return len(i.values)
}
