package deviate

import "math"

// rescaledBinomialHistogramTerms holds the precomputed Stirling-series
// correction for k in [0, 9]; larger k fall back to a four-term series.
var rescaledBinomialHistogramTerms = [10]float64{
	0.08106146679532726,
	0.04134069595540929,
	0.02767792568499834,
	0.02079067210376509,
	0.01664469118982119,
	0.01387612882307075,
	0.01189670994589177,
	0.01041126526197209,
	0.009255462182712733,
	0.008330563433362871,
}

const (
	rbht1 = 1.0 / 12.0
	rbht2 = 1.0 / 360.0
	rbht3 = 1.0 / 1260.0
	rbht4 = 1.0 / 1680.0
)

func rescaledBinomialHistogram(k int64) float64 {
	if k <= 9 {
		return rescaledBinomialHistogramTerms[k]
	}
	rkp1 := 1.0 / (float64(k) + 1.0)
	rkp1s := rkp1 * rkp1
	return (rbht1 - (rbht2-(rbht3-rbht4*rkp1s)*rkp1s)*rkp1s) * rkp1
}

// binomialTerms caches the Hörmann BTRD constants derived from (n, p),
// invalidated whenever either argument changes.
type binomialTerms struct {
	m       int64
	r       float64
	nr      float64
	npq     float64
	twoNpq  float64
	b       float64
	a       float64
	c       float64
	alpha   float64
	vr      float64
	urvr    float64
	twoUrVr float64
	nm      int64
	h       float64
}

// Binomial returns a deviate from Binomial(n, p): Bernoulli counting
// for n < 15, inverse-CDF walk for n*p < 10, and Hörmann's BTRD
// algorithm otherwise. Samples for p > 0.5 are drawn for 1-p and
// reflected.
func (e *Engine) Binomial(n int64, p float64) (int64, error) {
	if n <= 0 || p < 0 || p > 1.0 {
		return 0, invalidArgument("binomial: n must be positive and p must be in [0, 1]")
	}

	var k int64
	switch {
	case n < 15:
		threshold := uint32(0.5 + p*float64(^uint32(0)))
		for i := int64(0); i < n; i++ {
			if e.source.Next32() < threshold {
				k++
			}
		}
	case float64(n)*p < 10:
		if p > 0.5 {
			k = n - e.binomialByInvertedDistribution(n, 1.0-p)
		} else {
			k = e.binomialByInvertedDistribution(n, p)
		}
	default:
		if p > 0.5 {
			k = n - e.binomialByBtrd(n, 1.0-p)
		} else {
			k = e.binomialByBtrd(n, p)
		}
	}

	return k, nil
}

func (e *Engine) binomialByInvertedDistribution(n int64, p float64) int64 {
	q := 1.0 - p
	s := p / q
	a := (float64(n) + 1) * s
	r := math.Pow(q, float64(n))
	lastR := r
	u := e.RealClosed()

	const epsilon = 1e-12

	k := int64(0)
	for u > r && (r >= lastR || r >= epsilon) {
		k++
		u -= r
		lastR = r
		r *= (a / float64(k)) - s
	}

	return k
}

func (e *Engine) binomialByBtrd(n int64, p float64) int64 {
	var bt binomialTerms
	if n != e.binomialLastN || p != e.binomialLastP {
		q := 1.0 - p

		bt.m = int64((float64(n) + 1) * p)
		bt.r = p / q
		bt.nr = (float64(n) + 1.0) * bt.r
		bt.npq = float64(n) * p * q
		bt.twoNpq = 2.0 * bt.npq

		sqrtnpq := math.Sqrt(bt.npq)

		bt.b = 1.15 + 2.53*sqrtnpq
		bt.a = -0.0873 + 0.0248*bt.b + 0.01*p
		bt.c = float64(n)*p + 0.5
		bt.alpha = (2.83 + 5.1/bt.b) * sqrtnpq
		bt.vr = 0.92 - 4.2/bt.b
		bt.urvr = 0.86 * bt.vr
		bt.twoUrVr = 2.0 * bt.urvr
		bt.nm = n - bt.m + 1
		bt.h = (float64(bt.m)+0.5)*math.Log((float64(bt.m)+1.0)/(bt.r*float64(bt.nm))) +
			rescaledBinomialHistogram(bt.m) +
			rescaledBinomialHistogram(n-bt.m)

		e.binomialLastN = n
		e.binomialLastP = p
		e.binomialTerms = bt
	} else {
		bt = e.binomialTerms
	}

	var k int64
	var v float64
	for {
		v = e.RealClosed()
		if v <= bt.urvr {
			break
		}
		if ok := e.binomialDecomposition(&k, n, v, bt); ok {
			break
		}
	}

	if v <= bt.urvr {
		u := (v / bt.vr) - 0.43
		k = int64(bt.c + u*(bt.b+2.0*bt.a/(0.5-math.Abs(u))))
	}

	return k
}

func (e *Engine) binomialDecomposition(k *int64, n int64, v float64, bt binomialTerms) bool {
	var u float64
	if v >= bt.vr {
		u = e.RealOpen() - 0.5
	} else {
		u = v/bt.vr - 0.93
		if u >= 0.0 {
			u = 0.5 - u
		} else {
			u = -0.5 - u
		}
		v = e.RealOpen() * bt.vr
	}

	us := 0.5 - math.Abs(u)
	*k = int64(bt.c + u*(bt.b+2.0*bt.a/us))

	if *k < 0 || *k > n {
		return false
	}

	v = v * bt.alpha / (bt.b + bt.a/(us*us))

	km := *k - bt.m
	if km < 0 {
		km = -km
	}

	if km <= 15 {
		f := 1.0
		if bt.m < *k {
			for i := bt.m; i < *k; i++ {
				f *= (bt.nr / float64(i)) - bt.r
			}
		} else if bt.m > *k {
			for i := *k; i < bt.m; i++ {
				v *= (bt.nr / float64(i)) - bt.r
			}
		}
		return v <= f
	}

	v = math.Log(v)
	fkm := float64(km)
	rho := (fkm / bt.npq) * ((1.0/6.0+fkm*(0.625+fkm/3.0))/bt.npq + 0.5)
	t := -(fkm * fkm) / bt.twoNpq

	if v < (t - rho) {
		return true
	}
	if v > (t + rho) {
		return false
	}

	nk := n - *k + 1
	sq := bt.h +
		float64(n+1)*math.Log(float64(bt.nm)/float64(nk)) +
		(float64(*k)+0.5)*math.Log((float64(nk)*bt.r)/(float64(*k)+1.0)) -
		rescaledBinomialHistogram(*k) -
		rescaledBinomialHistogram(n-*k)

	return v <= sq
}
