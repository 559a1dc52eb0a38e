package analysis

import (
	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

// Stage score component thresholds. Heart-rate deviation is relative to the
// session baseline; RMSSD values are in seconds.
const (
	hrDevAwake      = 0.10
	hrDevStable     = 0.05
	hrDevDeep       = -0.05
	hrDevRemLow     = 0.02
	hrDevRemHigh    = 0.12
	rmssdSuppressed = 0.015
	rmssdRemCeil    = 0.03
	rmssdElevated   = 0.05
)

// stage index order used by the score vectors.
var stageOrder = [4]domain.StageKind{
	domain.StageAwake,
	domain.StageLight,
	domain.StageDeep,
	domain.StageRem,
}

// Classifier assigns a sleep stage to each feature window using threshold
// rules over heart-rate deviation, HRV level, movement and temperature
// trend, then applies a temporal smoothing pass over the score vectors.
type Classifier struct {
	cfg Config
}

// NewClassifier creates a classifier with the given configuration.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify scores a single window against the session heart-rate baseline
// and returns the winning stage with its confidence. Confidence is the
// normalized margin between the best and second-best scores.
func (c *Classifier) Classify(w domain.FeatureWindow, baselineHR float64) (domain.StageKind, float64) {
	scores := c.scoreWindow(w, baselineHR)
	return pickStage(scores)
}

// ClassifySession classifies a full ordered sequence of epochs and merges
// runs of identical stages into hypnogram spans. Sessions shorter than the
// smoothing window use the raw per-epoch scores. An empty input yields an
// empty hypnogram.
func (c *Classifier) ClassifySession(windows []domain.FeatureWindow) []domain.SleepStage {
	if len(windows) == 0 {
		return nil
	}

	baselineHR := sessionBaselineHR(windows)

	raw := make([][4]float64, len(windows))
	for i, w := range windows {
		raw[i] = c.scoreWindow(w, baselineHR)
	}

	scores := raw
	if len(windows) >= c.cfg.SmoothingWindow {
		scores = smoothScores(raw, c.cfg.SmoothingWindow)
	}

	var stages []domain.SleepStage
	for i, s := range scores {
		kind, confidence := pickStage(s)
		start := windows[i].Timestamp.Truncate(c.cfg.EpochLength)
		end := start.Add(c.cfg.EpochLength)

		if n := len(stages); n > 0 && stages[n-1].Kind == kind && stages[n-1].EndAt.Equal(start) {
			// extend the current run, averaging confidence over its epochs
			run := &stages[n-1]
			epochs := float64(run.EndAt.Sub(run.StartAt) / c.cfg.EpochLength)
			run.Confidence = (run.Confidence*epochs + confidence) / (epochs + 1)
			run.EndAt = end
			continue
		}
		stages = append(stages, domain.SleepStage{
			Kind:       kind,
			StartAt:    start,
			EndAt:      end,
			Confidence: confidence,
		})
	}
	return stages
}

// sessionBaselineHR is the mean heart rate over epochs that saw any
// heart-rate data.
func sessionBaselineHR(windows []domain.FeatureWindow) float64 {
	var rates []float64
	for _, w := range windows {
		if w.HeartRateAvg > 0 {
			rates = append(rates, w.HeartRateAvg)
		}
	}
	return mean(rates)
}

// scoreWindow produces the per-stage evidence scores for one epoch.
func (c *Classifier) scoreWindow(w domain.FeatureWindow, baselineHR float64) [4]float64 {
	hrDev := 0.0
	if baselineHR > 0 && w.HeartRateAvg > 0 {
		hrDev = (w.HeartRateAvg - baselineHR) / baselineHR
	}
	moving := w.SleepWakeFlag > 0

	var s [4]float64

	// Awake: movement dominates, backed by elevated heart rate and
	// suppressed HRV.
	s[0] = 0.10
	if moving {
		s[0] += 0.60
	}
	if hrDev > hrDevAwake {
		s[0] += 0.25
	}
	if w.RMSSD > 0 && w.RMSSD < rmssdSuppressed {
		s[0] += 0.05
	}

	// Light: the default sleeping state when nothing stands out.
	s[1] = 0.35
	if !moving {
		s[1] += 0.15
	}
	if hrDev >= -hrDevStable && hrDev <= hrDevStable {
		s[1] += 0.15
	}

	// Deep: stillness, heart rate well below baseline, high vagal tone,
	// falling wrist temperature.
	s[2] = 0.05
	if !moving {
		s[2] += 0.15
	}
	if hrDev < hrDevDeep {
		s[2] += 0.30
	}
	if w.RMSSD > rmssdElevated {
		s[2] += 0.25
	}
	if w.WristTempGradient < 0 {
		s[2] += 0.15
	}

	// REM: stillness with heart rate back near or above baseline and low
	// HRV; oxygen saturation tends to be less stable.
	s[3] = 0.05
	if !moving {
		s[3] += 0.15
	}
	if hrDev >= hrDevRemLow && hrDev <= hrDevRemHigh {
		s[3] += 0.30
	}
	if w.RMSSD > 0 && w.RMSSD < rmssdRemCeil {
		s[3] += 0.20
	}
	if w.SpO2StdDev > 0.5 {
		s[3] += 0.10
	}

	return s
}

// smoothScores averages score vectors over a centered moving window,
// reducing single-epoch stage flicker before the argmax.
func smoothScores(scores [][4]float64, window int) [][4]float64 {
	half := window / 2
	out := make([][4]float64, len(scores))
	for i := range scores {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > len(scores)-1 {
			hi = len(scores) - 1
		}
		var sum [4]float64
		for j := lo; j <= hi; j++ {
			for k := 0; k < 4; k++ {
				sum[k] += scores[j][k]
			}
		}
		n := float64(hi - lo + 1)
		for k := 0; k < 4; k++ {
			out[i][k] = sum[k] / n
		}
	}
	return out
}

// pickStage returns the argmax stage and the normalized top-two margin
// clamped to [0,1].
func pickStage(scores [4]float64) (domain.StageKind, float64) {
	best, second := 0, 1
	if scores[second] > scores[best] {
		best, second = second, best
	}
	for i := 2; i < 4; i++ {
		if scores[i] > scores[best] {
			second = best
			best = i
		} else if scores[i] > scores[second] {
			second = i
		}
	}
	confidence := 0.0
	if scores[best] > 0 {
		confidence = clamp01((scores[best] - scores[second]) / scores[best])
	}
	return stageOrder[best], confidence
}
