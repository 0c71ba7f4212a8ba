// Package chain implements the amp-style signal chain applied to the
// raw string voices: a noise gate, a tube-style asymmetric distortion
// with anti-aliased oversampling, and two cabinet models (a filter
// cascade and an FFT-convolution impulse response).
package chain
