package stt

import "context"

// Provider transcribes one chunk of recorded audio. The voice analyzer uses
// the transcript and recognizer confidence to derive delivery metrics.
type Provider interface {
	Transcribe(ctx context.Context, audio []byte, language string) (text string, confidence float64, err error)
	Close() error
}
