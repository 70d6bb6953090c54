package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/yoointerview/config"
	"github.com/yoockh/yoointerview/internal/api/handlers"
	"github.com/yoockh/yoointerview/internal/api/middleware"
	"github.com/yoockh/yoointerview/internal/api/routes"
	"github.com/yoockh/yoointerview/internal/logger"
	"github.com/yoockh/yoointerview/internal/providers/face"
	"github.com/yoockh/yoointerview/internal/providers/llm"
	"github.com/yoockh/yoointerview/internal/providers/stt"
	"github.com/yoockh/yoointerview/internal/providers/voice"
	"github.com/yoockh/yoointerview/internal/services"
	"github.com/yoockh/yoointerview/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	llmProvider := buildLLMProvider(ctx, cfg, log)
	defer llmProvider.Close()

	faceAnalyzer := buildFaceAnalyzer(cfg, log)
	voiceAnalyzer := buildVoiceAnalyzer(ctx, cfg, log)

	var uploader storage.Uploader
	if cfg.MediaBucket != "" {
		gcs, err := storage.NewGCSUploader(ctx, cfg.MediaBucket)
		if err != nil {
			log.WithError(err).Warn("gcs uploader init failed, media archiving disabled")
		} else {
			uploader = gcs
			log.WithField("bucket", cfg.MediaBucket).Info("media archiving enabled")
		}
	}

	evaluator := services.NewLLMEvaluator(llmProvider, cfg.QuestionCount, log)
	parser := services.NewResumeParser()
	media := services.NewMediaService(uploader, log)

	registry := services.NewSessionRegistry(faceAnalyzer, voiceAnalyzer, evaluator, services.RegistryConfig{
		DefaultDuration: cfg.DefaultDuration,
		AdapterTimeout:  cfg.AdapterTimeout,
	}, log)
	registry.StartReaper(ctx, cfg.ReaperInterval, cfg.SessionRetention)

	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Resume:    handlers.NewResumeHandler(parser, media),
		Interview: handlers.NewInterviewHandler(registry, parser, media),
		WS:        handlers.NewWSHandler(registry),
	})

	log.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func buildLLMProvider(ctx context.Context, cfg config.Config, log *logrus.Logger) llm.Provider {
	switch cfg.LLMProvider {
	case "vertex":
		p, err := llm.NewVertexGemini(ctx, cfg.VertexProjectID, cfg.VertexLocation, cfg.VertexModel)
		if err != nil {
			log.WithError(err).Warn("vertex init failed, falling back to mock provider")
			return llm.NewStatic()
		}
		log.WithField("model", cfg.VertexModel).Info("using vertex llm provider")
		return p
	case "openai":
		if cfg.LLMAPIKey == "" {
			log.Warn("LLM_API_KEY not set, falling back to mock provider")
			return llm.NewStatic()
		}
		log.WithField("model", cfg.LLMModel).Info("using openai-compatible llm provider")
		return llm.NewOpenAICompat(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel)
	default:
		log.Info("using mock llm provider")
		return llm.NewStatic()
	}
}

func buildFaceAnalyzer(cfg config.Config, log *logrus.Logger) face.Analyzer {
	if cfg.FaceAnalyzerURL != "" {
		log.WithField("endpoint", cfg.FaceAnalyzerURL).Info("using http face analyzer")
		return face.NewHTTPAnalyzer(cfg.FaceAnalyzerURL)
	}
	log.Info("using static face analyzer")
	return face.NewStaticAnalyzer()
}

func buildVoiceAnalyzer(ctx context.Context, cfg config.Config, log *logrus.Logger) voice.Analyzer {
	if cfg.VoiceAnalyzer == "speech" {
		transcriber, err := stt.NewGoogleSpeech(ctx, cfg.SpeechSampleRateHz)
		if err != nil {
			log.WithError(err).Warn("speech client init failed, falling back to static voice analyzer")
			return voice.NewStaticAnalyzer()
		}
		log.Info("using speech voice analyzer")
		return voice.NewSpeechAnalyzer(transcriber, cfg.SpeechSampleRateHz, "en-US")
	}
	log.Info("using static voice analyzer")
	return voice.NewStaticAnalyzer()
}
