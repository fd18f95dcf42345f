package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr         string
	DBPath             string
	UploadPath         string
	DetectorBackend    string
	YOLOHost           string
	YOLOModel          string
	OllamaHost         string
	OllamaVisionModel  string
	OllamaModel        string
	GeneratorBackend   string
	CohereAPIKey       string
	CohereModel        string
	ClaudeAPIKey       string
	ClaudeModel        string
	GeminiAPIKey       string
	GeminiModel        string
	StockImageURL      string
	StockImageValidate bool
	LogLevel           string
	LogFile            string
	TelemetryDir       string
	WSPongWait         time.Duration
}

var defaults = map[string]any{
	"LISTEN_ADDR":          ":8080",
	"DB_PATH":              "/data/smartbite.db",
	"UPLOAD_PATH":          "/data/uploads",
	"DETECTOR_BACKEND":     "yolo",
	"YOLO_HOST":            "http://localhost:8000",
	"YOLO_MODEL":           "yolo11n",
	"OLLAMA_HOST":          "http://localhost:11434",
	"OLLAMA_VISION_MODEL":  "llava",
	"OLLAMA_MODEL":         "llama3",
	"GENERATOR_BACKEND":    "cohere",
	"COHERE_API_KEY":       "",
	"COHERE_MODEL":         "command-r-plus",
	"CLAUDE_API_KEY":       "",
	"CLAUDE_MODEL":         "claude-opus-4-6",
	"GEMINI_API_KEY":       "",
	"GEMINI_MODEL":         "gemini-1.5-flash",
	"STOCK_IMAGE_URL":      "https://source.unsplash.com/600x400/",
	"STOCK_IMAGE_VALIDATE": false,
	"LOG_LEVEL":            "info",
	"LOG_FILE":             "",
	"TELEMETRY_DIR":        "",
	"WS_PONG_WAIT":         "60s",
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory if one exists. Variables already set in the
// environment take precedence over .env entries.
func Load() *Config {
	_ = godotenv.Load()
	return fromViper(newViper())
}

// LoadFile is like Load but also reads path (any format viper understands).
// Environment variables override values from the file.
func LoadFile(path string) (*Config, error) {
	_ = godotenv.Load()
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return fromViper(v), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	return v
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		ListenAddr:         v.GetString("LISTEN_ADDR"),
		DBPath:             v.GetString("DB_PATH"),
		UploadPath:         v.GetString("UPLOAD_PATH"),
		DetectorBackend:    v.GetString("DETECTOR_BACKEND"),
		YOLOHost:           v.GetString("YOLO_HOST"),
		YOLOModel:          v.GetString("YOLO_MODEL"),
		OllamaHost:         v.GetString("OLLAMA_HOST"),
		OllamaVisionModel:  v.GetString("OLLAMA_VISION_MODEL"),
		OllamaModel:        v.GetString("OLLAMA_MODEL"),
		GeneratorBackend:   v.GetString("GENERATOR_BACKEND"),
		CohereAPIKey:       v.GetString("COHERE_API_KEY"),
		CohereModel:        v.GetString("COHERE_MODEL"),
		ClaudeAPIKey:       v.GetString("CLAUDE_API_KEY"),
		ClaudeModel:        v.GetString("CLAUDE_MODEL"),
		GeminiAPIKey:       v.GetString("GEMINI_API_KEY"),
		GeminiModel:        v.GetString("GEMINI_MODEL"),
		StockImageURL:      v.GetString("STOCK_IMAGE_URL"),
		StockImageValidate: v.GetBool("STOCK_IMAGE_VALIDATE"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFile:            v.GetString("LOG_FILE"),
		TelemetryDir:       v.GetString("TELEMETRY_DIR"),
		WSPongWait:         v.GetDuration("WS_PONG_WAIT"),
	}
}
