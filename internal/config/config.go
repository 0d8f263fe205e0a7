package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
)

type Config struct {
	OpenAI        OpenAIConfig        `yaml:"openai"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	LLM           LLMConfig           `yaml:"llm"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Whisper       WhisperConfig       `yaml:"whisper"`
	Summary       SummaryConfig       `yaml:"summary"`
	Speech        SpeechConfig        `yaml:"speech"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	YtDlp         YtDlpConfig         `yaml:"ytdlp"`
	Paths         PathsConfig         `yaml:"paths"`
	Output        OutputConfig        `yaml:"output"`
	Logging       LoggingConfig       `yaml:"logging"`
	Metrics       MetricsConfig       `yaml:"metrics"`
	Events        EventsConfig        `yaml:"events"`
}

type OpenAIConfig struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url" validate:"omitempty,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

type LLMConfig struct {
	Provider             string  `yaml:"provider" validate:"oneof=openai gemini"`
	Model                string  `yaml:"model" validate:"required"`
	FallbackModel        string  `yaml:"fallback_model" validate:"required"`
	Temperature          float64 `yaml:"temperature" validate:"gte=0,lte=2"`
	MaxTokens            int     `yaml:"max_tokens" validate:"gt=0"`
	MaxTokensDetailed    int     `yaml:"max_tokens_detailed" validate:"gt=0"`
	ChunkThresholdTokens int     `yaml:"chunk_threshold_tokens" validate:"gt=0"`
	ChunkChars           int     `yaml:"chunk_chars" validate:"gt=0"`
	MaxDepth             int     `yaml:"max_depth" validate:"gt=0"`
}

type TranscriptionConfig struct {
	Backend         string        `yaml:"backend" validate:"oneof=openai whispercpp"`
	Model           string        `yaml:"model"`
	Language        string        `yaml:"language"`
	MaxUploadMB     float64       `yaml:"max_upload_mb" validate:"gt=0"`
	SegmentDuration time.Duration `yaml:"segment_duration" validate:"gt=0"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Threads    int    `yaml:"threads" validate:"gte=0"`
	Prompt     string `yaml:"prompt"`
}

type SummaryConfig struct {
	Style             string `yaml:"style" validate:"oneof=brief detailed bullet"`
	Chapters          bool   `yaml:"chapters"`
	IncludeTranscript bool   `yaml:"include_transcript"`
}

type SpeechConfig struct {
	Disabled bool    `yaml:"disabled"`
	Model    string  `yaml:"model"`
	Voice    string  `yaml:"voice" validate:"oneof=alloy echo fable onyx nova shimmer sage"`
	Speed    float64 `yaml:"speed" validate:"gte=0.25,lte=4"`
}

type FFmpegConfig struct {
	FFmpegPath   string `yaml:"ffmpeg_path"`
	FFprobePath  string `yaml:"ffprobe_path"`
	AudioFormat  string `yaml:"audio_format" validate:"oneof=mp3 wav"`
	AudioBitrate string `yaml:"audio_bitrate"`
}

type YtDlpConfig struct {
	BinaryPath string `yaml:"binary_path"`
	Format     string `yaml:"format"`
}

type PathsConfig struct {
	Temp   string `yaml:"temp" validate:"required"`
	Output string `yaml:"output" validate:"required"`
	Watch  string `yaml:"watch"`
}

type OutputConfig struct {
	Docx bool `yaml:"docx"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console auto"`
}

type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr" validate:"omitempty,hostname_port"`
}

type EventsConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Brokers   []string `yaml:"brokers"`
	Topic     string   `yaml:"topic"`
	Principal string   `yaml:"principal"`
}

// Load reads a YAML config file, applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrConfiguration, "config", "read", path, err)
	}
	return parse(data, path)
}

// LoadOrDefault behaves like Load but falls back to defaults plus
// environment when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return parse(nil, path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrConfiguration, "config", "read", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, path string) (*Config, error) {
	cfg := &Config{}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errs.Wrap(errs.ErrConfiguration, "config", "parse", path, err)
		}
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" && c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = v
	}
	if len(c.Gemini.APIKeys) == 0 {
		raw := os.Getenv("GEMINI_API_KEYS")
		if raw == "" {
			raw = os.Getenv("GEMINI_API_KEY")
		}
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.Gemini.APIKeys = append(c.Gemini.APIKeys, k)
			}
		}
	}
}

func (c *Config) applyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4-turbo-preview"
		if c.LLM.Provider == "gemini" {
			c.LLM.Model = "gemini-2.5-flash"
		}
	}
	if c.LLM.FallbackModel == "" {
		c.LLM.FallbackModel = "gpt-3.5-turbo-16k"
		if c.LLM.Provider == "gemini" {
			c.LLM.FallbackModel = "gemini-2.5-flash-lite"
		}
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1000
	}
	if c.LLM.MaxTokensDetailed == 0 {
		c.LLM.MaxTokensDetailed = 2000
	}
	if c.LLM.ChunkThresholdTokens == 0 {
		c.LLM.ChunkThresholdTokens = 10000
	}
	if c.LLM.ChunkChars == 0 {
		c.LLM.ChunkChars = 40000
	}
	if c.LLM.MaxDepth == 0 {
		c.LLM.MaxDepth = 3
	}

	if c.Transcription.Backend == "" {
		c.Transcription.Backend = "openai"
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = "whisper-1"
	}
	if c.Transcription.MaxUploadMB == 0 {
		c.Transcription.MaxUploadMB = 25
	}
	if c.Transcription.SegmentDuration == 0 {
		c.Transcription.SegmentDuration = 10 * time.Minute
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}

	if c.Summary.Style == "" {
		c.Summary.Style = "detailed"
	}
	if c.Speech.Model == "" {
		c.Speech.Model = "tts-1"
	}
	if c.Speech.Voice == "" {
		c.Speech.Voice = "nova"
	}
	if c.Speech.Speed == 0 {
		c.Speech.Speed = 1.0
	}

	if c.FFmpeg.FFmpegPath == "" {
		c.FFmpeg.FFmpegPath = "ffmpeg"
	}
	if c.FFmpeg.FFprobePath == "" {
		c.FFmpeg.FFprobePath = "ffprobe"
	}
	if c.FFmpeg.AudioFormat == "" {
		c.FFmpeg.AudioFormat = "mp3"
	}
	if c.FFmpeg.AudioBitrate == "" {
		c.FFmpeg.AudioBitrate = "192k"
	}
	if c.YtDlp.BinaryPath == "" {
		c.YtDlp.BinaryPath = "yt-dlp"
	}
	if c.YtDlp.Format == "" {
		c.YtDlp.Format = "best[ext=mp4]/best"
	}

	if c.Paths.Temp == "" {
		c.Paths.Temp = "./temp"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "./output"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "auto"
	}
	if c.Events.Topic == "" {
		c.Events.Topic = "yt-summarize.summaries"
	}
	if c.Events.Principal == "" {
		c.Events.Principal = "yt-summarize"
	}
}

// Validate checks field constraints. It does not require credentials; see
// CheckCredentials.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errs.Wrap(errs.ErrConfiguration, "config", "validate", "", err)
	}
	if c.Transcription.Language != "" {
		lang, err := NormalizeLanguage(c.Transcription.Language)
		if err != nil {
			return err
		}
		c.Transcription.Language = lang
	}
	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		return errs.Wrap(errs.ErrConfiguration, "config", "validate", "events.brokers is required when events are enabled", nil)
	}
	return nil
}

// CheckCredentials verifies that every configured backend has what it needs
// to make calls.
func (c *Config) CheckCredentials() error {
	needOpenAI := c.LLM.Provider == "openai" || c.Transcription.Backend == "openai"
	if needOpenAI && c.OpenAI.APIKey == "" {
		return errs.Wrap(errs.ErrConfiguration, "config", "credentials",
			"OPENAI_API_KEY not set: export it or add it to a .env file", nil)
	}
	if c.LLM.Provider == "gemini" && len(c.Gemini.APIKeys) == 0 {
		return errs.Wrap(errs.ErrConfiguration, "config", "credentials", "GEMINI_API_KEYS not set", nil)
	}
	if c.Transcription.Backend == "whispercpp" && c.Whisper.ModelPath == "" {
		return errs.Wrap(errs.ErrConfiguration, "config", "credentials", "whisper.model_path is required for the whispercpp backend", nil)
	}
	return nil
}

// NormalizeLanguage validates a language hint and reduces it to the
// two-letter code transcription backends expect ("pt-BR" becomes "pt").
func NormalizeLanguage(code string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return "", errs.Wrap(errs.ErrInput, "config", "language", fmt.Sprintf("invalid language code %q", code), err)
	}
	base, _ := tag.Base()
	return base.String(), nil
}
