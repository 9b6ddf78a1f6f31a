// Package deviate implements the non-uniform probability distributions
// drawn by a model worker, layered over a uniform rng.PRNG. The gamma,
// Poisson (rate > 12) and binomial (BTRD) generators cache their
// derived constants, keyed by the arguments that produced them, and
// recompute only when those arguments change; the other distributions
// compute directly from their arguments on every call.
package deviate

import (
	"errors"
	"math"

	"github.com/joeycumines/go-inem/rng"
)

// ErrInvalidArgument is returned (wrapped with a distribution-specific
// message) when a distribution's parameters fall outside its support.
var ErrInvalidArgument = errors.New("deviate: invalid argument")

const (
	oneThird = 1.0 / 3.0
)

var sqrt2Pi = math.Sqrt(2.0 * math.Pi)

// Engine draws non-uniform deviates from an underlying uniform engine,
// caching per-distribution derived parameters across calls.
type Engine struct {
	source rng.PRNG

	gaussianHasSpare bool
	gaussianSpare    float64

	gammaLastShape float64
	gammaLastC     float64

	poissonLastRate float64
	poissonTerms    poissonTerms

	binomialLastN int64
	binomialLastP float64
	binomialTerms binomialTerms
}

// NewEngine constructs a deviate engine drawing from source.
func NewEngine(source rng.PRNG) *Engine {
	return &Engine{
		source:          source,
		gammaLastShape:  math.Inf(-1),
		poissonLastRate: math.Inf(-1),
		binomialLastN:   -1,
		binomialLastP:   -1.0,
	}
}

func invalidArgument(msg string) error {
	return &invalidArgumentError{msg: msg}
}

type invalidArgumentError struct{ msg string }

func (e *invalidArgumentError) Error() string { return "deviate: " + e.msg }
func (e *invalidArgumentError) Unwrap() error { return ErrInvalidArgument }
func (e *invalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// full64 is the divisor used to map a uniform 64-bit word onto [0,1]:
// the all-ones 64-bit word, matching the original engine's UI64(-1) cast.
var full64 = float64(^uint64(0))

// IntFullRange returns a uniformly distributed 64-bit signed integer
// spanning the full range representable by the word.
func (e *Engine) IntFullRange() int64 {
	return int64(e.source.Next64())
}

// RealClosed returns a uniform deviate in [0, 1].
func (e *Engine) RealClosed() float64 {
	return float64(e.source.Next64()) / full64
}

// RealClopen returns a uniform deviate in [0, 1), rejecting 1.0.
func (e *Engine) RealClopen() float64 {
	for {
		if v := e.RealClosed(); v != 1.0 {
			return v
		}
	}
}

// RealOpclo returns a uniform deviate in (0, 1], rejecting 0.0.
func (e *Engine) RealOpclo() float64 {
	for {
		if v := e.RealClosed(); v != 0.0 {
			return v
		}
	}
}

// RealOpen returns a uniform deviate in (0, 1), rejecting both endpoints.
func (e *Engine) RealOpen() float64 {
	for {
		if v := e.RealClosed(); v != 0.0 && v != 1.0 {
			return v
		}
	}
}

// Normal returns a standard normal (mean 0, sigma 1) deviate, computed
// two-at-a-time via the Marsaglia polar method; one value is returned,
// the other cached for the following call.
func (e *Engine) Normal() float64 {
	if e.gaussianHasSpare {
		e.gaussianHasSpare = false
		return e.gaussianSpare
	}

	var w, x1, x2 float64
	for {
		x1 = 2.0*e.RealClosed() - 1.0
		x2 = 2.0*e.RealClosed() - 1.0
		w = x1*x1 + x2*x2
		if w != 0.0 && w < 1.0 {
			break
		}
	}

	w = math.Sqrt(-2.0 * math.Log(w) / w)
	e.gaussianSpare = x2 * w
	e.gaussianHasSpare = true
	return x1 * w
}

// NormalMeanSigma returns a normal deviate with the given mean and
// standard deviation.
func (e *Engine) NormalMeanSigma(mean, sigma float64) float64 {
	return e.Normal()*sigma + mean
}

// gammaHelper draws Gamma(shape, 1) via Marsaglia-Tsang, valid for
// shape >= 1.
func (e *Engine) gammaHelper(shape float64) float64 {
	d := shape - oneThird

	var c float64
	if shape != e.gammaLastShape {
		c = oneThird / math.Sqrt(d)
		e.gammaLastShape = shape
		e.gammaLastC = c
	} else {
		c = e.gammaLastC
	}

	mrc := -1.0 / c
	lu := math.Log(e.RealOpen())

	var z, v float64
	for {
		z = e.Normal()
		onecz := 1.0 + c*z
		v = onecz * onecz * onecz
		if z > mrc && lu < (0.5*z*z+d-d*v+d*math.Log(v)) {
			break
		}
	}

	return d * v
}

// Gamma returns a deviate from Gamma(shape, scale): Marsaglia-Tsang for
// shape >= 1, Stuart's trick (G(shape+1)*U^(1/shape)) for shape < 1.
func (e *Engine) Gamma(shape, scale float64) (float64, error) {
	if shape <= 0 || scale <= 0 {
		return 0, invalidArgument("gamma: shape and scale must be positive")
	}

	if shape >= 1.0 {
		return scale * e.gammaHelper(shape), nil
	}
	return scale * e.gammaHelper(shape+1.0) * math.Pow(e.RealOpen(), 1.0/shape), nil
}

// Weibull returns a deviate from the Weibull distribution with the
// given scale, shape, and location delay.
func (e *Engine) Weibull(scale, shape, delay float64) (float64, error) {
	if scale <= 0 || shape <= 0 {
		return 0, invalidArgument("weibull: scale and shape must be positive")
	}
	return scale*math.Pow(-math.Log(e.RealOpclo()), 1.0/shape) + delay, nil
}

// Exponential returns a deviate from the exponential distribution with
// the given rate.
func (e *Engine) Exponential(rate float64) (float64, error) {
	if rate <= 0 {
		return 0, invalidArgument("exponential: rate must be positive")
	}
	return -math.Log(e.RealOpen()) / rate, nil
}

// Rayleigh returns a deviate from the Rayleigh distribution with the
// given scale.
func (e *Engine) Rayleigh(scale float64) (float64, error) {
	if scale <= 0 {
		return 0, invalidArgument("rayleigh: scale must be positive")
	}
	return scale * math.Sqrt(-2.0*math.Log(e.RealOpen())), nil
}

// ChiSquared returns a deviate from the chi-squared distribution with
// k degrees of freedom, dispatching to Gamma(k/2, 2).
func (e *Engine) ChiSquared(k int64) (float64, error) {
	if k <= 0 {
		return 0, invalidArgument("chi_squared: k must be positive")
	}
	v, err := e.Gamma(float64(k)/2.0, 2.0)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// LogNormal returns a standard log-normal deviate.
func (e *Engine) LogNormal() float64 {
	return math.Exp(e.Normal())
}

// LogNormalMeanSigma returns a log-normal deviate parameterized by the
// underlying normal's mean and sigma.
func (e *Engine) LogNormalMeanSigma(mean, sigma float64) float64 {
	return math.Exp(e.NormalMeanSigma(mean, sigma))
}

// Geometric returns the number of trials (not failures) until the first
// success, for a per-trial success probability p, modeling the CDF
// 1 - (1-p)^k.
func (e *Engine) Geometric(p float64) (int64, error) {
	if p < 0.0 || p > 1.0 {
		return 0, invalidArgument("geometric: p must be in [0, 1]")
	}
	u := e.RealOpclo()
	return int64(math.Log(u)/math.Log(1.0-p)) + 1, nil
}

// CauchyLorentz returns a deviate from the Cauchy-Lorentz distribution
// with the given location and scale.
func (e *Engine) CauchyLorentz(location, scale float64) (float64, error) {
	if scale <= 0 {
		return 0, invalidArgument("cauchy_lorentz: scale must be positive")
	}
	u := e.RealOpen()
	return location + scale*math.Tan(math.Pi*(u-0.5)), nil
}
