package montyhall

import (
	"math/rand/v2"
)

// Source is the random source a simulation draws from. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a PCG-backed generator seeded with seed.
func NewSource(seed uint64) *rand.Rand {
	return newStream(seed, 0)
}

// newStream returns the generator for one worker. Distinct stream values give
// non-overlapping sequences for the same seed.
func newStream(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream)) // #nosec G404 -- simulation does not require cryptographic randomness
}

// PlayTrial plays one game with n options. It does not validate n; callers
// must ensure n >= MinOptions.
func PlayTrial(rng Source, n int, switchStrategy bool) Trial {
	t := Trial{Chosen: 0}
	t.Correct = rng.IntN(n)
	t.Revealed = pickExcluding(rng, n, t.Chosen, t.Correct)
	t.Final = t.Chosen
	if switchStrategy {
		t.Final = pickExcluding(rng, n, t.Chosen, t.Revealed)
	}
	t.Won = t.Final == t.Correct
	return t
}

// Run plays cfg.Trials independent games and counts the wins.
func Run(rng Source, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	res := Result{Options: cfg.Options, Switch: cfg.Switch, Trials: cfg.Trials}
	res.Wins = playTrials(rng, cfg.Options, cfg.Switch, cfg.Trials)
	return res, nil
}

func playTrials(rng Source, n int, switchStrategy bool, trials int) int {
	wins := 0
	for i := 0; i < trials; i++ {
		if PlayTrial(rng, n, switchStrategy).Won {
			wins++
		}
	}
	return wins
}

// pickExcluding draws uniformly from 0..n-1 without a and b, which may be
// equal. The draw indexes the remaining options in ascending order, so it
// matches a uniform choice over the filtered list without allocating it.
func pickExcluding(rng Source, n, a, b int) int {
	if a > b {
		a, b = b, a
	}
	if a == b {
		k := rng.IntN(n - 1)
		if k >= a {
			k++
		}
		return k
	}
	k := rng.IntN(n - 2)
	if k >= a {
		k++
	}
	if k >= b {
		k++
	}
	return k
}
