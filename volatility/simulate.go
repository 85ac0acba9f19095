package volatility

import "fmt"

// Trajectory is a simulated ground truth: latent values X and observations Y,
// both of length T. It is generated once and treated as read-only input.
type Trajectory struct {
	X []float64
	Y []float64
}

// Len is the horizon T.
func (tr Trajectory) Len() int { return len(tr.X) }

// Simulate draws a trajectory of horizon T from the model.
//
// Algorithm:
//  1. x_0 ~ Normal(0, InitialScale()).
//  2. For t = 1..T−1: x_t = SampleTransition(x_{t−1}), then
//     y_t = SampleObservation(x_t).
//
// y_0 is not drawn and stays 0; the filter still weights particles by it at
// t = 0, where it is the most probable value under every particle.
// Randomness is consumed in the order x_0, (x_1, y_1), (x_2, y_2), ...
//
// Errors: ErrHorizon when T < 1.
// Complexity: O(T).
func (m *Model) Simulate(r NormalSource, T int) (Trajectory, error) {
	if T < 1 {
		return Trajectory{}, fmt.Errorf("%w: T=%d", ErrHorizon, T)
	}
	tr := Trajectory{X: make([]float64, T), Y: make([]float64, T)}
	tr.X[0] = m.SampleInitial(r)
	for t := 1; t < T; t++ {
		tr.X[t] = m.SampleTransition(r, tr.X[t-1])
		tr.Y[t] = m.SampleObservation(r, tr.X[t])
	}
	return tr, nil
}
