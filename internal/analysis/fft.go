package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// PowerSpectrum returns |X_k|^2 for the non-negative frequency bins of data
// after mean removal and zero-padding to a power of two.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	padded := make([]float64, nextPow2(len(data)))
	for i, v := range data {
		padded[i] = v - mean
	}

	if len(padded) < 2 {
		return []float64{0}
	}

	coeffs := fourier.NewFFT(len(padded)).Coefficients(nil, padded)
	ps := make([]float64, len(padded)/2)

	for i := range ps {
		a := cmplx.Abs(coeffs[i])
		ps[i] = a * a
	}

	return ps
}

// Spectrum is a one-sided power spectrum with its frequency axis.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// NewSpectrum computes the spectrum of samples taken every dt seconds.
func NewSpectrum(samples []float64, dt float64) Spectrum {
	ps := PowerSpectrum(samples)
	n := nextPow2(len(samples))
	freqs := make([]float64, len(ps))
	if dt > 0 {
		df := 1 / (float64(n) * dt)
		for i := range freqs {
			freqs[i] = float64(i) * df
		}
	}
	return Spectrum{Freqs: freqs, Power: ps}
}

// Peak returns the frequency of the strongest non-DC bin, or 0 when the
// signal is constant.
func (s Spectrum) Peak() float64 {
	if len(s.Freqs) == 0 {
		return 0
	}
	best, idx := 0.0, 0
	for i := 1; i < len(s.Power); i++ {
		if s.Power[i] > best {
			best, idx = s.Power[i], i
		}
	}
	return s.Freqs[idx]
}

// at returns the power of the bin nearest to f.
func (s Spectrum) at(f float64) float64 {
	if len(s.Freqs) < 2 {
		return 0
	}
	df := s.Freqs[1] - s.Freqs[0]
	i := int(math.Round(f / df))
	if i < 0 || i >= len(s.Power) {
		return 0
	}
	return s.Power[i]
}

// HarmonicRatio is the power in the odd harmonics 3f0, 5f0, ... up to the
// Nyquist bin, relative to the power at f0.
func (s Spectrum) HarmonicRatio(f0 float64) float64 {
	base := s.at(f0)
	if base == 0 || f0 <= 0 {
		return 0
	}
	nyq := s.Freqs[len(s.Freqs)-1]

	var sum float64
	for h := 3.0; h*f0 <= nyq; h += 2 {
		sum += s.at(h * f0)
	}
	return sum / base
}

// DominantFrequency is the frequency carrying the most power in samples
// taken every dt seconds.
func DominantFrequency(samples []float64, dt float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	return NewSpectrum(samples, dt).Peak()
}
