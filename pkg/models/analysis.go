package models

import "fmt"

// Method identifies one of the five pixel transforms. The set is closed:
// transforms are dispatched by the engine, not registered at runtime.
type Method string

const (
	MethodSwap          Method = "swap"
	MethodXOR           Method = "xor"
	MethodShift         Method = "shift"
	MethodAES           Method = "aes" // simplified rotate-and-offset, not the real cipher
	MethodSteganography Method = "steganography"
)

// Methods lists every recognized transform identifier.
func Methods() []Method {
	return []Method{MethodSwap, MethodXOR, MethodShift, MethodAES, MethodSteganography}
}

// ParseMethod validates a method identifier string.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodSwap, MethodXOR, MethodShift, MethodAES, MethodSteganography:
		return Method(s), nil
	}
	return "", fmt.Errorf("unrecognized method %q", s)
}

// Complexity classifies an image by its entropy.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// AnalysisResult holds the statistical features of a pixel buffer. It is
// computed fresh per image and never mutated after creation.
type AnalysisResult struct {
	Entropy     float64    `json:"entropy"`
	Contrast    float64    `json:"contrast"`
	Brightness  float64    `json:"brightness"`
	EdgeDensity float64    `json:"edge_density"`
	Complexity  Complexity `json:"complexity"`
}
