package config

import (
	"os"
	"strconv"
	"time"
)

// Config gathers all environment-driven settings. Every field has a default
// that works for a keyless local run (mock analyzers, mock LLM).
type Config struct {
	Port string

	// LLM provider selection: "vertex", "openai" (any OpenAI-compatible
	// endpoint, e.g. Groq), or "mock".
	LLMProvider     string
	VertexProjectID string
	VertexLocation  string
	VertexModel     string
	LLMAPIKey       string
	LLMBaseURL      string
	LLMModel        string

	// Face analyzer sidecar. Empty URL selects the static analyzer.
	FaceAnalyzerURL string

	// Voice analyzer. "speech" uses Google Cloud Speech, anything else the
	// static analyzer.
	VoiceAnalyzer      string
	SpeechSampleRateHz int

	// Optional GCS bucket for archiving uploaded resumes and response media.
	// Empty disables archiving.
	MediaBucket string

	DefaultDuration  time.Duration
	QuestionCount    int
	AdapterTimeout   time.Duration
	ReaperInterval   time.Duration
	SessionRetention time.Duration
}

func Load() Config {
	return Config{
		Port: getenv("PORT", "8080"),

		LLMProvider:     getenv("LLM_PROVIDER", "mock"),
		VertexProjectID: os.Getenv("VERTEX_PROJECT_ID"),
		VertexLocation:  getenv("VERTEX_LOCATION", "us-central1"),
		VertexModel:     getenv("VERTEX_MODEL", "gemini-1.5-flash"),
		LLMAPIKey:       os.Getenv("LLM_API_KEY"),
		LLMBaseURL:      os.Getenv("LLM_BASE_URL"),
		LLMModel:        getenv("LLM_MODEL", "llama-3.3-70b-versatile"),

		FaceAnalyzerURL:    os.Getenv("FACE_ANALYZER_URL"),
		VoiceAnalyzer:      getenv("VOICE_ANALYZER", "mock"),
		SpeechSampleRateHz: getenvInt("SPEECH_SAMPLE_RATE_HZ", 16000),

		MediaBucket: os.Getenv("MEDIA_BUCKET"),

		DefaultDuration:  getenvMinutes("SESSION_DURATION_MINUTES", 10),
		QuestionCount:    getenvInt("QUESTION_COUNT", 5),
		AdapterTimeout:   time.Duration(getenvInt("ADAPTER_TIMEOUT_SECONDS", 30)) * time.Second,
		ReaperInterval:   getenvMinutes("REAPER_INTERVAL_MINUTES", 5),
		SessionRetention: getenvMinutes("SESSION_RETENTION_MINUTES", 60),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getenvMinutes(key string, def int) time.Duration {
	return time.Duration(getenvInt(key, def)) * time.Minute
}
