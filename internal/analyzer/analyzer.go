// Package analyzer computes statistical features of a pixel buffer and
// turns them into a transform recommendation and a derived key. Every
// function here is pure: no state, no I/O, no logging.
package analyzer

import (
	"math"

	"gonum.org/v1/gonum/stat"

	apperrors "github.com/Pinank23/CODECRAFT-CS-02/internal/errors"
	"github.com/Pinank23/CODECRAFT-CS-02/internal/pixel"
	"github.com/Pinank23/CODECRAFT-CS-02/pkg/models"
)

const (
	// epsilon keeps log2 defined on empty histogram bins. The entropy is a
	// Shannon estimate over 256 intensity bins, not exact for continuous data.
	epsilon = 1e-10

	// edgeThreshold is the intensity delta above which a forward difference
	// counts as an edge.
	edgeThreshold = 10.0

	entropyHigh   = 6.0
	entropyMedium = 4.0
	contrastBusy  = 50.0
)

// Analyze computes entropy, contrast, brightness and edge density of a
// buffer and classifies its complexity. It fails on degenerate (zero-area)
// input; callers must not feed a failed analysis into RecommendMethod or
// DeriveKey.
func Analyze(buf *pixel.Buffer) (models.AnalysisResult, error) {
	if buf == nil {
		return models.AnalysisResult{}, apperrors.NewDegenerateImageError(0, 0)
	}
	if buf.Empty() {
		return models.AnalysisResult{}, apperrors.NewDegenerateImageError(buf.Width, buf.Height)
	}

	luma := lumaPlane(buf)

	entropy := shannonEntropy(luma)
	brightness := stat.Mean(luma, nil)
	contrast := popStdDev(luma, brightness)
	edges := edgeDensity(luma, buf.Width, buf.Height)

	return models.AnalysisResult{
		Entropy:     entropy,
		Contrast:    contrast,
		Brightness:  brightness,
		EdgeDensity: edges,
		Complexity:  classify(entropy),
	}, nil
}

// RecommendMethod maps an analysis to a transform, first match wins:
// high complexity favors aes, busy contrast favors xor, everything else
// gets swap. shift and steganography are deliberately never recommended;
// they remain user-selectable only.
func RecommendMethod(res models.AnalysisResult) models.Method {
	switch {
	case res.Complexity == models.ComplexityHigh:
		return models.MethodAES
	case res.Contrast > contrastBusy:
		return models.MethodXOR
	default:
		return models.MethodSwap
	}
}

// DeriveKey folds the measured entropy and contrast into a base key.
// The result is always in [1,255] and deterministic for a given
// (baseKey, analysis) pair; any randomness in picking baseKey belongs to
// the caller.
func DeriveKey(res models.AnalysisResult, baseKey int) int {
	combined := int(float64(baseKey)*res.Entropy*res.Contrast) % 256
	if combined < 1 {
		return 1
	}
	return combined
}

// lumaPlane reduces the buffer to one float64 sample per pixel: the
// arithmetic mean over all channels, or the sample itself for grayscale.
func lumaPlane(buf *pixel.Buffer) []float64 {
	luma := make([]float64, buf.Width*buf.Height)

	if buf.Channels == 1 {
		for i, s := range buf.Pix {
			luma[i] = float64(s)
		}
		return luma
	}

	c := buf.Channels
	for p := range luma {
		sum := 0
		base := p * c
		for ch := 0; ch < c; ch++ {
			sum += int(buf.Pix[base+ch])
		}
		luma[p] = float64(sum) / float64(c)
	}
	return luma
}

// shannonEntropy estimates entropy from a 256-bin histogram of rounded
// intensities. A constant image comes out fractionally negative because of
// the epsilon term, so the result is floored at zero.
func shannonEntropy(luma []float64) float64 {
	var hist [256]float64
	for _, l := range luma {
		bin := int(math.Round(l))
		if bin < 0 {
			bin = 0
		} else if bin > 255 {
			bin = 255
		}
		hist[bin]++
	}

	n := float64(len(luma))
	entropy := 0.0
	for _, count := range hist {
		p := count / n
		entropy -= p * math.Log2(p+epsilon)
	}
	if entropy < 0 {
		return 0
	}
	return entropy
}

// popStdDev is the population standard deviation of the samples.
func popStdDev(luma []float64, mean float64) float64 {
	var sumSq float64
	for _, l := range luma {
		d := l - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(luma)))
}

// edgeDensity takes a first-order forward difference along the vertical
// axis and reports the fraction of magnitudes above the threshold, over
// the total pixel count so the value stays in [0,1].
func edgeDensity(luma []float64, width, height int) float64 {
	if height < 2 {
		return 0
	}

	edges := 0
	for y := 0; y < height-1; y++ {
		row := y * width
		next := (y + 1) * width
		for x := 0; x < width; x++ {
			if math.Abs(luma[next+x]-luma[row+x]) > edgeThreshold {
				edges++
			}
		}
	}
	return float64(edges) / float64(width*height)
}

func classify(entropy float64) models.Complexity {
	switch {
	case entropy > entropyHigh:
		return models.ComplexityHigh
	case entropy > entropyMedium:
		return models.ComplexityMedium
	default:
		return models.ComplexityLow
	}
}
