package config

import (
	"errors"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultFeedURL is the NDFD REST endpoint.
const DefaultFeedURL = "https://graphical.weather.gov/xml/sample_products/browser_interface/ndfdXMLclient.php"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// NDFD feed configuration.
	FeedBaseURL   string
	FeedTimeout   time.Duration
	FeedUserAgent string
	ElementPolicy string
	Elements      []string
	OutputFormat  string

	// Optional forecast sink.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	feedTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("NDFD_TIMEOUT", "30s"))
	if err != nil || feedTimeout <= 0 {
		return nil, errors.New("invalid NDFD_TIMEOUT")
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		FeedBaseURL:   sharedcfg.EnvOrDefault("NDFD_BASE_URL", DefaultFeedURL),
		FeedTimeout:   feedTimeout,
		FeedUserAgent: sharedcfg.EnvOrDefault("NDFD_USER_AGENT", "ndfd-forecast-service/1.0"),
		ElementPolicy: strings.ToLower(sharedcfg.EnvOrDefault("NDFD_ELEMENT_POLICY", "enabled")),
		Elements:      parseList(os.Getenv("NDFD_ELEMENTS")),
		OutputFormat:  strings.ToUpper(sharedcfg.EnvOrDefault("OUTPUT_FORMAT", "JSON")),

		KafkaEnabled: os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "ndfd-point-forecasts"),
	}

	switch cfg.ElementPolicy {
	case "enabled", "all":
	case "custom":
		if len(cfg.Elements) == 0 {
			return nil, errors.New("NDFD_ELEMENT_POLICY is custom but NDFD_ELEMENTS is empty")
		}
	default:
		return nil, errors.New("invalid NDFD_ELEMENT_POLICY: want enabled, all or custom")
	}
	if cfg.OutputFormat != "JSON" && cfg.OutputFormat != "XML" {
		return nil, errors.New("invalid OUTPUT_FORMAT: want JSON or XML")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if cfg.KafkaTopic == "" {
			return nil, errors.New("KAFKA_TOPIC is required when KAFKA_ENABLED is true")
		}
	}

	return cfg, nil
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
