package baselines

import (
	"errors"
	"math"
	"testing"

	"github.com/dsv-rl/daaf/envs"
)

func countingSolver(count *int) Solver {
	return func(mdp *envs.MDP, gamma float64) []float64 {
		*count++
		values := make([]float64, mdp.NumStates)
		for s := range values {
			values[s] = gamma * float64(s)
		}
		return values
	}
}

func TestBuildIndexDeduplicates(t *testing.T) {
	mdpA := envs.NewGridWorld(3, 3).MDP()
	mdpB := envs.NewRandomWalk(5).MDP()
	specs := []Spec{
		{EnvName: "envA", Level: "1", DiscountFactor: 0.9, MDP: mdpA},
		{EnvName: "envA", Level: "1", DiscountFactor: 0.9, MDP: mdpA},
		{EnvName: "envB", Level: "2", DiscountFactor: 0.99, MDP: mdpB},
	}

	solves := 0
	index, err := BuildIndex(specs, countingSolver(&solves), nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if solves != 2 {
		t.Errorf("expected 2 solves for 2 distinct keys, got %d", solves)
	}
	if index.Len() != 2 {
		t.Errorf("expected 2 indexed keys, got %d", index.Len())
	}
}

func TestIndexGetSharedKey(t *testing.T) {
	mdp := envs.NewGridWorld(3, 3).MDP()
	specs := []Spec{
		{EnvName: "envA", Level: "1", DiscountFactor: 0.9, MDP: mdp},
		{EnvName: "envA", Level: "1", DiscountFactor: 0.9, MDP: mdp},
	}
	solves := 0
	index, err := BuildIndex(specs, countingSolver(&solves), nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	first, err := index.Get("envA", "1", 0.9)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	second, err := index.Get("envA", "1", 0.9)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("value %d differs: %f vs %f", i, first[i], second[i])
		}
	}

	// returned vectors are copies, mutating one must not leak
	first[0] = 42
	clean, _ := index.Get("envA", "1", 0.9)
	if clean[0] == 42 {
		t.Errorf("Get returned a shared slice")
	}
}

func TestIndexGetUnknownKey(t *testing.T) {
	index, err := BuildIndex(nil, countingSolver(new(int)), nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	_, err = index.Get("missing", "1", 0.9)
	if !errors.Is(err, ErrNotIndexed) {
		t.Errorf("expected ErrNotIndexed, got %v", err)
	}
}

func TestBuildIndexIntegrityConflict(t *testing.T) {
	specs := []Spec{
		{EnvName: "envA", Level: "1", DiscountFactor: 0.9, MDP: envs.NewGridWorld(3, 3).MDP()},
		{EnvName: "envA", Level: "1", DiscountFactor: 0.9, MDP: envs.NewGridWorld(4, 4).MDP()},
	}
	_, err := BuildIndex(specs, countingSolver(new(int)), nil)
	var integrityErr *IntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	key := Key{EnvName: "envA", Level: "1", DiscountFactor: 0.9}
	saved := &Entry{Values: []float64{0.5, -1.25, 3.75e-7}, Fingerprint: "abc"}

	if _, ok, err := store.Load(key); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}
	if err := store.Save(key, saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, ok, err := store.Load(key)
	if err != nil || !ok {
		t.Fatalf("load failed: ok=%v err=%v", ok, err)
	}
	if loaded.Fingerprint != saved.Fingerprint {
		t.Errorf("fingerprint changed: %s vs %s", loaded.Fingerprint, saved.Fingerprint)
	}
	if len(loaded.Values) != len(saved.Values) {
		t.Fatalf("length changed: %d vs %d", len(loaded.Values), len(saved.Values))
	}
	for i := range saved.Values {
		if math.Abs(loaded.Values[i]-saved.Values[i]) > 1e-12 {
			t.Errorf("value %d changed: %g vs %g", i, loaded.Values[i], saved.Values[i])
		}
	}
}

func TestBuildIndexReusesPersisted(t *testing.T) {
	store := NewFileStore(t.TempDir())
	specs := []Spec{
		{EnvName: "envA", Level: "1", DiscountFactor: 0.9, MDP: envs.NewGridWorld(3, 3).MDP()},
	}

	firstSolves := 0
	if _, err := BuildIndex(specs, countingSolver(&firstSolves), store); err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	if firstSolves != 1 {
		t.Fatalf("expected 1 solve on first build, got %d", firstSolves)
	}

	secondSolves := 0
	index, err := BuildIndex(specs, countingSolver(&secondSolves), store)
	if err != nil {
		t.Fatalf("second build failed: %v", err)
	}
	if secondSolves != 0 {
		t.Errorf("expected persisted reuse, got %d solves", secondSolves)
	}
	if _, err := index.Get("envA", "1", 0.9); err != nil {
		t.Errorf("persisted key not readable: %v", err)
	}
}

func TestBuildIndexRejectsStaleEntry(t *testing.T) {
	store := NewFileStore(t.TempDir())
	key := Key{EnvName: "envA", Level: "1", DiscountFactor: 0.9}
	if err := store.Save(key, &Entry{Values: []float64{1}, Fingerprint: "other-dynamics"}); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	specs := []Spec{
		{EnvName: "envA", Level: "1", DiscountFactor: 0.9, MDP: envs.NewGridWorld(3, 3).MDP()},
	}
	_, err := BuildIndex(specs, countingSolver(new(int)), store)
	var integrityErr *IntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("expected IntegrityError for stale entry, got %v", err)
	}
}
