package voice

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sinePCM(freq float64, sampleRateHz int, seconds, amplitude float64) []byte {
	n := int(float64(sampleRateHz) * seconds)
	out := make([]byte, 2*n)
	for i := 0; i < n; i++ {
		v := amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRateHz))
		binary.LittleEndian.PutUint16(out[2*i:], uint16(int16(v*32767)))
	}
	return out
}

func TestRMSVolume(t *testing.T) {
	assert.Zero(t, rmsVolume(nil))
	assert.Zero(t, rmsVolume(make([]byte, 2*1600))) // silence

	// a full-scale sine has RMS ~0.707; stretched and clamped to 1
	assert.Equal(t, 1.0, rmsVolume(sinePCM(200, 16000, 0.5, 1.0)))

	// conversational amplitude lands mid-range
	quiet := rmsVolume(sinePCM(200, 16000, 0.5, 0.1))
	assert.InDelta(t, 0.283, quiet, 0.02)
}

func TestPitchScore(t *testing.T) {
	assert.Zero(t, pitchScore(nil, 16000))
	assert.Zero(t, pitchScore(sinePCM(200, 16000, 0.5, 0.5), 0))

	// a 200 Hz tone crosses zero 400 times per second -> 200/400 = 0.5
	got := pitchScore(sinePCM(200, 16000, 1.0, 0.5), 16000)
	assert.InDelta(t, 0.5, got, 0.02)

	// anything at or above 400 Hz saturates
	assert.Equal(t, 1.0, pitchScore(sinePCM(800, 16000, 1.0, 0.5), 16000))
}

func TestSpeechRateScore(t *testing.T) {
	assert.Zero(t, speechRateScore(0, 10))
	assert.Zero(t, speechRateScore(10, 0))

	// 2 words per second -> 0.5
	assert.InDelta(t, 0.5, speechRateScore(20, 10), 1e-9)

	// very fast speech clamps
	assert.Equal(t, 1.0, speechRateScore(100, 10))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-1))
	assert.Equal(t, 0.25, clamp01(0.25))
	assert.Equal(t, 1.0, clamp01(2))
}
