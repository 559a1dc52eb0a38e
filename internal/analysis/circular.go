package analysis

import "math"

const hoursPerCycle = 24.0

// minResultantLength guards the ln(R) term in the circular standard
// deviation; dispersion at or below it is reported as maximal.
const minResultantLength = 1e-9

// maxCircularStdDevHours is the value reported for degenerate (uniformly
// dispersed) time-of-day samples.
const maxCircularStdDevHours = 12.0

func hoursToRadians(h float64) float64 {
	return h * 2 * math.Pi / hoursPerCycle
}

func radiansToHours(r float64) float64 {
	h := r * hoursPerCycle / (2 * math.Pi)
	return wrapHours(h)
}

// wrapHours maps any hour value into [0,24).
func wrapHours(h float64) float64 {
	h = math.Mod(h, hoursPerCycle)
	if h < 0 {
		h += hoursPerCycle
	}
	return h
}

// CircularMean computes the circular mean of time-of-day values in hours,
// returning a value in [0,24). Values spanning midnight average correctly:
// CircularMean([23.5, 0.5]) is 0, not 12. Empty input returns 0.
func CircularMean(hours []float64) float64 {
	if len(hours) == 0 {
		return 0
	}
	var sinSum, cosSum float64
	for _, h := range hours {
		theta := hoursToRadians(h)
		sinSum += math.Sin(theta)
		cosSum += math.Cos(theta)
	}
	return radiansToHours(math.Atan2(sinSum, cosSum))
}

// CircularStdDev computes the circular standard deviation of time-of-day
// values in hours using the mean resultant length. Empty input returns 0;
// a degenerate resultant is treated as maximal dispersion.
func CircularStdDev(hours []float64) float64 {
	if len(hours) == 0 {
		return 0
	}
	var sinSum, cosSum float64
	for _, h := range hours {
		theta := hoursToRadians(h)
		sinSum += math.Sin(theta)
		cosSum += math.Cos(theta)
	}
	r := math.Sqrt(sinSum*sinSum+cosSum*cosSum) / float64(len(hours))
	if r <= minResultantLength {
		return maxCircularStdDevHours
	}
	if r >= 1 {
		return 0
	}
	sigma := math.Sqrt(-2 * math.Log(r))
	sd := sigma * hoursPerCycle / (2 * math.Pi)
	if sd > maxCircularStdDevHours {
		return maxCircularStdDevHours
	}
	return sd
}

// CircularDiffHours returns the signed difference a-b between two
// time-of-day values, wrapped into (-12,12].
func CircularDiffHours(a, b float64) float64 {
	d := math.Mod(a-b, hoursPerCycle)
	if d > hoursPerCycle/2 {
		d -= hoursPerCycle
	} else if d <= -hoursPerCycle/2 {
		d += hoursPerCycle
	}
	return d
}

// circularDistFraction returns the unsigned distance between two phase
// fractions on the unit circle, in [0,0.5].
func circularDistFraction(a, b float64) float64 {
	d := math.Abs(a - b)
	d = math.Mod(d, 1)
	if d > 0.5 {
		d = 1 - d
	}
	return d
}
