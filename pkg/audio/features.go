package audio

// FeatureVector is the per-tick output of the analysis engine. All fields
// except Beat are normalized into [0,1]. It is a plain value type: each tick
// produces a fresh copy, so consumers can hold one without seeing later
// mutation.
type FeatureVector struct {
	// Spectrum contains the normalized band energies, low frequencies first.
	Spectrum [BandCount]float64 `json:"spectrum"`

	// RMS is the overall loudness.
	RMS float64 `json:"rms"`

	// Bass, Mid and Treble are sub-band averages over fixed index ranges
	// of Spectrum: [0,8), [8,20), [20,32).
	Bass   float64 `json:"bass"`
	Mid    float64 `json:"mid"`
	Treble float64 `json:"treble"`

	// Centroid is the normalized spectral centroid; 0 means all energy in
	// band 0, 1 means all energy in the top band. Silence reads as 0.
	Centroid float64 `json:"centroid"`

	// Beat is true only on the tick a beat was detected (single-tick
	// pulse, not a level).
	Beat bool `json:"beat"`

	// BPM is the configured tempo hint.
	BPM float64 `json:"bpm"`
}
