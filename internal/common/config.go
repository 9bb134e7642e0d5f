package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	OCR        OCRConfig
	Cache      CacheConfig
	Output     OutputConfig
	Classifier ClassifierConfig
	Workers    int
}

// OCRConfig holds text-acquisition configuration. The external binaries are
// poppler's pdftotext/pdftoppm and tesseract.
type OCRConfig struct {
	Pdftotext string
	Pdftoppm  string
	Tesseract string

	Language    string
	DPILadder   []int // rasterization DPIs tried in order when rendering fails
	PageTimeout time.Duration
	MaxPages    int // 0 = no limit

	MinTextLength int // character floor below which OCR is escalated
	ProbePages    int // pages inspected for the floor check

	Disabled bool // force the "ocr not available" capability state
}

// CacheConfig holds the OCR output cache location.
type CacheConfig struct {
	Path string
}

// OutputConfig holds output artifact locations.
type OutputConfig struct {
	RecordsPath        string
	JustificationsPath string
	DebugTextDir       string // empty = no raw-text dumps
	VerifiedDir        string // complete documents are archived here
}

// ClassifierConfig holds the optional downstream classification oracle
// settings. An empty APIKey disables classification entirely.
type ClassifierConfig struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Pdftotext:     getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			Language:      getEnv("OCR_LANGUAGE", "por"),
			DPILadder:     getEnvAsInts("OCR_DPI_LADDER", []int{300, 150, 72}),
			PageTimeout:   getEnvAsDuration("OCR_PAGE_TIMEOUT", 2*time.Minute),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
			MinTextLength: getEnvAsInt("MIN_TEXT_LENGTH", 100),
			ProbePages:    getEnvAsInt("TEXT_PROBE_PAGES", 3),
			Disabled:      getEnvAsBool("OCR_DISABLED", false),
		},
		Cache: CacheConfig{
			Path: getEnv("OCR_CACHE_PATH", "./ocr_cache/ocr.db"),
		},
		Output: OutputConfig{
			RecordsPath:        getEnv("RECORDS_PATH", "./records.xlsx"),
			JustificationsPath: getEnv("JUSTIFICATIONS_PATH", "./justifications.xlsx"),
			DebugTextDir:       getEnv("DEBUG_TEXT_DIR", ""),
			VerifiedDir:        getEnv("VERIFIED_DIR", "./verified"),
		},
		Classifier: ClassifierConfig{
			BaseURL:     getEnv("CLASSIFIER_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("CLASSIFIER_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("CLASSIFIER_API_KEY", ""),
			Temperature: getEnvAsFloat32("CLASSIFIER_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("CLASSIFIER_TIMEOUT", 45*time.Second),
		},
		Workers: getEnvAsInt("WORKERS", 0), // 0 = GOMAXPROCS
	}
}

// Helper functions for environment variable parsing.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInts(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []int
	for _, part := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return defaultValue
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
