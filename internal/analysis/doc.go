// Package analysis provides frequency-domain tools for simulated traces.
//
//   - [PowerSpectrum]: one-sided power of a mean-removed, zero-padded trace
//   - [NewSpectrum]: power spectrum with its frequency axis
//   - [DominantFrequency]: strongest non-DC component of a trace
//
// # Harmonic Content
//
// A memristor driven by a pure sine draws a distorted current. The ratio of
// odd-harmonic power to the fundamental grows with the pinched loop area:
//
//	s := analysis.NewSpectrum(res.Current, res.Time[1]-res.Time[0])
//	distortion := s.HarmonicRatio(s.Peak())
package analysis
