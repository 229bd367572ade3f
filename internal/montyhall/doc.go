// Package montyhall estimates win probabilities of the generalized Monty Hall
// game by Monte Carlo simulation.
//
// A game has n options, exactly one of which is correct. The player always
// picks option 0 first; since the correct option is drawn uniformly, fixing
// the first pick does not bias the estimate. The host then reveals one option
// that is neither the pick nor the correct one, and the player either stays or
// switches to a uniformly drawn option that is neither the pick nor the
// revealed one.
//
// # Usage
//
//	rng := montyhall.NewSource(42)
//	res, err := montyhall.Run(rng, montyhall.Config{Options: 3, Switch: true, Trials: 100000})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.WinProbability()) // ~0.667
//
// Large runs can be spread over workers, each with its own random stream:
//
//	res, err := montyhall.RunParallel(ctx, cfg, montyhall.ParallelOptions{Workers: 8, Seed: 42})
package montyhall
