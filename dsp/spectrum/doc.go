// Package spectrum assembles an analysis window across consecutive audio
// blocks and turns it into a normalized magnitude spectrum.
//
// An [Analyzer] is fed one block at a time from the real-time path. It
// reports when the window is complete, at which point [Analyzer.Magnitudes]
// runs the forward transform and starts the next accumulation pass. All
// buffers and the FFT plan are created by [NewAnalyzer]; nothing allocates
// afterwards.
package spectrum
