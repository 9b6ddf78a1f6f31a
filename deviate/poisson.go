package deviate

import "math"

// poissonTerms caches the normal-envelope parameters used by the
// rejection method for rate > 12, invalidated whenever rate changes.
type poissonTerms struct {
	normalSigma       float64
	normalMean        float64
	logRate           float64
	normalScaleFactor float64
	normalOffset      float64
}

// Poisson returns a deviate from the Poisson distribution with the
// given rate: Knuth's product-of-uniforms method for rate <= 12, and a
// rejection method against an offset normal envelope for rate > 12.
func (e *Engine) Poisson(rate float64) (int64, error) {
	if rate <= 0 {
		return 0, invalidArgument("poisson: rate must be positive")
	}

	if rate <= 12 {
		l := math.Exp(-rate)
		k := int64(-1)
		p := 1.0
		for {
			k++
			p *= e.RealClosed()
			if p <= l {
				break
			}
		}
		return k, nil
	}

	var pt poissonTerms
	if e.poissonLastRate != rate {
		e.poissonLastRate = rate

		pt.normalSigma = math.Sqrt(rate)
		pt.normalMean = rate
		pt.logRate = math.Log(rate)
		pt.normalScaleFactor = 1.0 / (pt.normalSigma * sqrt2Pi)

		offsetRate := pt.normalMean - 0.5*pt.normalSigma
		poissonPmf := math.Exp(offsetRate*pt.logRate - rate - lnGamma(offsetRate+1.0))
		normalExp := (offsetRate - pt.normalMean) / pt.normalSigma
		normalPdf := pt.normalScaleFactor * math.Exp(-0.5*normalExp*normalExp)

		// Scaled up slightly to stay clear of rounding at the boundary.
		pt.normalOffset = 1.02 * (poissonPmf - normalPdf)

		e.poissonTerms = pt
	} else {
		pt = e.poissonTerms
	}

	var normalPdf, poissonPmf, k float64
	for {
		var guess float64
		for {
			guess = e.NormalMeanSigma(pt.normalMean, pt.normalSigma)
			if guess >= 0 {
				break
			}
		}
		k = math.Floor(guess + 0.5) // continuity correction

		normalExp := (k - pt.normalMean) / pt.normalSigma

		normalPdf = pt.normalScaleFactor*math.Exp(-0.5*normalExp*normalExp) + pt.normalOffset
		poissonPmf = math.Exp(k*pt.logRate - rate - lnFactorial(k))

		if normalPdf < poissonPmf {
			pt.normalOffset += 1.02 * (poissonPmf - normalPdf)
			e.poissonTerms.normalOffset = pt.normalOffset
			continue // force retry
		}

		if poissonPmf >= normalPdf*e.RealClosed() {
			break
		}
	}

	return int64(k), nil
}

func lnGamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

func lnFactorial(k float64) float64 {
	return lnGamma(k + 1.0)
}
