// Package analysis provides frequency analysis of rolled-out
// trajectories.
//
//   - [FFT]: radix-2 fast Fourier transform
//   - [PowerSpectrum]: magnitude spectrum of a trajectory row
//   - [DominantFrequency]: peak of the spectrum at a known sample rate
//
// The spectrum of an oscillating coordinate exposes its period:
//
//	ps := analysis.PowerSpectrum(analysis.PadPow2(row))
//	freq, _ := analysis.DominantFrequency(ps, sampleRate)
package analysis
