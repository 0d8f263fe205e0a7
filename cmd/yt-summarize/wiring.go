package main

import (
	"github.com/nguyentantai21042004/yt-summarize/internal/config"
	"github.com/nguyentantai21042004/yt-summarize/internal/events"
	"github.com/nguyentantai21042004/yt-summarize/internal/llm"
	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
	"github.com/nguyentantai21042004/yt-summarize/internal/media"
	"github.com/nguyentantai21042004/yt-summarize/internal/metrics"
	"github.com/nguyentantai21042004/yt-summarize/internal/output"
	"github.com/nguyentantai21042004/yt-summarize/internal/processor"
	"github.com/nguyentantai21042004/yt-summarize/internal/summarizer"
	"github.com/nguyentantai21042004/yt-summarize/internal/transcribe"
	"github.com/nguyentantai21042004/yt-summarize/internal/video"
	"github.com/nguyentantai21042004/yt-summarize/pkg/executor"
)

type pipeline struct {
	processor processor.Processor
	publisher events.Publisher
	metrics   *metrics.Metrics
}

func (p *pipeline) Close() error {
	return p.publisher.Close()
}

// buildPipeline wires every collaborator from cfg.
func buildPipeline(cfg *config.Config, log logger.Logger) *pipeline {
	exec := executor.New()
	m := metrics.New()

	md := media.New(media.Config{
		FFmpegPath:   cfg.FFmpeg.FFmpegPath,
		FFprobePath:  cfg.FFmpeg.FFprobePath,
		TempDir:      cfg.Paths.Temp,
		AudioBitrate: cfg.FFmpeg.AudioBitrate,
	}, exec, log)

	transcriber := transcribe.New(newTranscriptionBackend(cfg, exec, md, log), md, log, m, transcribe.Options{
		MaxUploadMB:     cfg.Transcription.MaxUploadMB,
		SegmentDuration: cfg.Transcription.SegmentDuration,
	})

	sum := summarizer.New(newGenerator(cfg, log), summarizer.Config{
		Model:                cfg.LLM.Model,
		FallbackModel:        cfg.LLM.FallbackModel,
		Temperature:          cfg.LLM.Temperature,
		MaxTokens:            cfg.LLM.MaxTokens,
		MaxTokensDetailed:    cfg.LLM.MaxTokensDetailed,
		ChunkThresholdTokens: cfg.LLM.ChunkThresholdTokens,
		ChunkChars:           cfg.LLM.ChunkChars,
		MaxDepth:             cfg.LLM.MaxDepth,
	}, log, m)

	var synth output.Synthesizer
	if !cfg.Speech.Disabled {
		synth = output.NewSynthesizer(output.SpeechConfig{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.Speech.Model,
			Voice:   cfg.Speech.Voice,
			Speed:   cfg.Speech.Speed,
			Dir:     cfg.Paths.Output,
			Timeout: cfg.OpenAI.Timeout,
		}, nil, log, m)
	}

	pub := events.New(events.Config{
		Enabled:   cfg.Events.Enabled,
		Brokers:   cfg.Events.Brokers,
		Topic:     cfg.Events.Topic,
		Principal: cfg.Events.Principal,
	}, log, m)

	proc := processor.New(processor.Config{
		TempDir:     cfg.Paths.Temp,
		AudioFormat: cfg.FFmpeg.AudioFormat,
	}, processor.Deps{
		Acquirer: video.New(video.Config{
			YtDlpPath: cfg.YtDlp.BinaryPath,
			TempDir:   cfg.Paths.Temp,
			Format:    cfg.YtDlp.Format,
		}, exec, log),
		Media:       md,
		Transcriber: transcriber,
		Summarizer:  sum,
		Writer:      output.NewWriter(cfg.Paths.Output, log),
		Synthesizer: synth,
		Publisher:   pub,
		Metrics:     m,
		Logger:      log,
	})

	return &pipeline{processor: proc, publisher: pub, metrics: m}
}

func newTranscriptionBackend(cfg *config.Config, exec executor.Executor, md media.Media, log logger.Logger) transcribe.Backend {
	if cfg.Transcription.Backend == "whispercpp" {
		return transcribe.NewWhisperCPPBackend(transcribe.WhisperCPPConfig{
			BinaryPath: cfg.Whisper.BinaryPath,
			ModelPath:  cfg.Whisper.ModelPath,
			Threads:    cfg.Whisper.Threads,
			Prompt:     cfg.Whisper.Prompt,
		}, exec, md, log)
	}
	return transcribe.NewOpenAIBackend(transcribe.OpenAIConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.Transcription.Model,
	}, nil)
}

func newGenerator(cfg *config.Config, log logger.Logger) llm.Generator {
	if cfg.LLM.Provider == "gemini" {
		return llm.NewGemini(llm.GeminiConfig{APIKeys: cfg.Gemini.APIKeys}, nil, log)
	}
	return llm.NewOpenAI(llm.OpenAIConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Timeout: cfg.OpenAI.Timeout,
	})
}

// toolRequirements lists the external binaries the configured pipeline
// shells out to.
func toolRequirements(cfg *config.Config) []media.Requirement {
	return []media.Requirement{
		{Name: "FFmpeg", Command: cfg.FFmpeg.FFmpegPath},
		{Name: "FFprobe", Command: cfg.FFmpeg.FFprobePath},
		{Name: "yt-dlp", Command: cfg.YtDlp.BinaryPath, Optional: true},
		{Name: "whisper.cpp", Command: cfg.Whisper.BinaryPath, Optional: cfg.Transcription.Backend != "whispercpp"},
	}
}
