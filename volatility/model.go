package volatility

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sentinel errors for model construction and simulation.
var (
	// ErrPhi indicates a persistence |φ| ≥ 1 (non-stationary latent process).
	ErrPhi = errors.New("volatility: persistence phi must satisfy |phi| < 1")
	// ErrSigma indicates a negative innovation scale σ.
	ErrSigma = errors.New("volatility: innovation scale sigma must be non-negative")
	// ErrParams indicates a NaN or infinite parameter.
	ErrParams = errors.New("volatility: parameters must be finite")
	// ErrHorizon indicates a simulation horizon T < 1.
	ErrHorizon = errors.New("volatility: horizon must be at least 1")
)

// NormalSource draws Normal(mean, scale) variates; *randsrc.Stream satisfies it.
type NormalSource interface {
	Normal(mean, scale float64) float64
}

// Params are the stochastic-volatility parameters.
//
//   - Phi   — persistence of the latent log-volatility, |Phi| < 1.
//   - Sigma — scale (standard deviation) of the latent innovations, ≥ 0.
//   - Gamma — offset of the observation scale exp(Gamma + x).
type Params struct {
	Phi   float64 `json:"phi"`
	Sigma float64 `json:"sigma"`
	Gamma float64 `json:"gamma"`
}

// DefaultParams returns φ=0.95, σ=√(1−φ²), γ=1.
// With this σ the latent process has unit stationary variance.
func DefaultParams() Params {
	const phi = 0.95
	return Params{Phi: phi, Sigma: math.Sqrt(1 - phi*phi), Gamma: 1}
}

// Validate reports the first invalid parameter.
func (p Params) Validate() error {
	for _, v := range []float64{p.Phi, p.Sigma, p.Gamma} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %+v", ErrParams, p)
		}
	}
	if math.Abs(p.Phi) >= 1 {
		return fmt.Errorf("%w: phi=%g", ErrPhi, p.Phi)
	}
	if p.Sigma < 0 {
		return fmt.Errorf("%w: sigma=%g", ErrSigma, p.Sigma)
	}
	return nil
}

// Model is the nonlinear stochastic-volatility state-space model
//
//	x_t = φ·x_{t−1} + Normal(0, σ)
//	y_t = Normal(0, exp(γ + x_t))
//
// where the second argument of Normal is a scale (standard deviation).
// Model is immutable and safe for concurrent use; randomness is supplied by
// the caller on every sampling call.
type Model struct {
	p Params
}

// New validates p and returns the model.
func New(p Params) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Model{p: p}, nil
}

// Params returns the model parameters.
func (m *Model) Params() Params { return m.p }

// InitialScale is the scale of the initial distribution, σ/√(1−φ²).
// It is the stationary standard deviation of the latent AR(1) process.
func (m *Model) InitialScale() float64 {
	return m.p.Sigma / math.Sqrt(1-m.p.Phi*m.p.Phi)
}

// SampleInitial draws x_0 ~ Normal(0, InitialScale()).
func (m *Model) SampleInitial(r NormalSource) float64 {
	return r.Normal(0, m.InitialScale())
}

// InitialLogDensity is log N(x0; 0, InitialScale()).
func (m *Model) InitialLogDensity(x0 float64) float64 {
	return distuv.Normal{Mu: 0, Sigma: m.InitialScale()}.LogProb(x0)
}

// SampleTransition draws x_t = φ·xPrev + Normal(0, σ).
func (m *Model) SampleTransition(r NormalSource, xPrev float64) float64 {
	return m.p.Phi*xPrev + r.Normal(0, m.p.Sigma)
}

// TransitionLogDensity is log N(xNext; φ·xPrev, σ).
func (m *Model) TransitionLogDensity(xNext, xPrev float64) float64 {
	return distuv.Normal{Mu: m.p.Phi * xPrev, Sigma: m.p.Sigma}.LogProb(xNext)
}

// ObservationScale is exp(γ + x), the standard deviation of y given x.
func (m *Model) ObservationScale(x float64) float64 {
	return math.Exp(m.p.Gamma + x)
}

// SampleObservation draws y ~ Normal(0, exp(γ + x)).
func (m *Model) SampleObservation(r NormalSource, x float64) float64 {
	return r.Normal(0, m.ObservationScale(x))
}

// ObservationLogDensity is log N(y; 0, exp(γ + x)).
// It is -Inf when the observation is impossible under x (for instance when
// exp(γ + x) underflows to 0 for y ≠ 0, or y² overflows).
func (m *Model) ObservationLogDensity(y, x float64) float64 {
	l := distuv.Normal{Mu: 0, Sigma: m.ObservationScale(x)}.LogProb(y)
	if math.IsNaN(l) {
		return math.Inf(-1)
	}
	return l
}
