package voice

import (
	"encoding/binary"
	"math"
)

// Signal helpers over LINEAR16 little-endian PCM. These feed the volume and
// pitch scores; speech rate and fluency come from the transcriber.

// rmsVolume returns a [0,1] loudness score. Typical conversational speech
// sits around 0.05-0.2 of full scale, so the RMS is stretched before
// clamping.
func rmsVolume(pcm []byte) float64 {
	n := len(pcm) / 2
	if n == 0 {
		return 0
	}

	var sum float64
	for i := 0; i < n; i++ {
		s := int16(binary.LittleEndian.Uint16(pcm[2*i:]))
		f := float64(s) / 32768.0
		sum += f * f
	}

	rms := math.Sqrt(sum / float64(n))
	return clamp01(rms * 4)
}

// pitchScore uses the zero-crossing rate as a cheap fundamental-frequency
// proxy and places it on [0,1], with typical speech (85-255 Hz fundamentals)
// landing mid-range.
func pitchScore(pcm []byte, sampleRateHz int) float64 {
	n := len(pcm) / 2
	if n < 2 || sampleRateHz <= 0 {
		return 0
	}

	var crossings int
	prev := int16(binary.LittleEndian.Uint16(pcm))
	for i := 1; i < n; i++ {
		s := int16(binary.LittleEndian.Uint16(pcm[2*i:]))
		if (prev < 0 && s >= 0) || (prev >= 0 && s < 0) {
			crossings++
		}
		prev = s
	}

	seconds := float64(n) / float64(sampleRateHz)
	// Two crossings per cycle.
	hz := float64(crossings) / seconds / 2
	return clamp01(hz / 400)
}

// speechRateScore normalizes words-per-second; ~2.5 wps is a comfortable
// interview pace and maps near the middle of the range.
func speechRateScore(wordCount int, seconds float64) float64 {
	if wordCount <= 0 || seconds <= 0 {
		return 0
	}
	return clamp01(float64(wordCount) / seconds / 4)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
