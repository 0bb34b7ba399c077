package config

import (
	"encoding/xml"
	"io"
	"os"
	"sync"
)

var (
	cfg  *APIConfig
	once sync.Once
)

// APIConfig represents the root element of config.xml.
type APIConfig struct {
	XMLName     xml.Name      `xml:"API"`
	RequestDump bool          `xml:"REQUEST_DUMP,attr"`
	Context     ContextConfig `xml:"CONTEXT"`
	Session     SessionConfig `xml:"SESSION"`
	Upload      UploadConfig  `xml:"UPLOAD"`
	Logging     LoggingConfig `xml:"LOGGING"`
	RateLimit   RateConfig    `xml:"RATE_LIMIT"`
}

// ContextConfig holds basic server settings.
type ContextConfig struct {
	Port     int    `xml:"PORT"`
	Host     string `xml:"HOST"`
	TimeZone string `xml:"TIME_ZONE"`
}

// SessionConfig governs the in-memory session store.
type SessionConfig struct {
	TimeoutMinutes   int `xml:"TIMEOUT_MINUTES"`
	JanitorSweepSecs int `xml:"JANITOR_SWEEP_SECONDS"`
}

// UploadConfig constrains the audio upload collaborator.
type UploadConfig struct {
	MaxAudioBytes    int64  `xml:"MAX_AUDIO_BYTES"`
	AllowedExtension string `xml:"ALLOWED_EXTENSION"`
}

// LoggingConfig holds log file settings.
type LoggingConfig struct {
	Directory  string `xml:"DIRECTORY"`
	MaxSizeMB  int    `xml:"MAX_SIZE_MB"`
	MaxBackups int    `xml:"MAX_BACKUPS"`
}

// RateConfig holds the per-session request limiter settings.
type RateConfig struct {
	RequestsPerSecond float64 `xml:"REQUESTS_PER_SECOND"`
	Burst             int     `xml:"BURST"`
}

// LoadConfig loads and parses the XML configuration from the given file.
func LoadConfig(xmlPath string) (*APIConfig, error) {
	once.Do(func() {
		f, err := os.Open(xmlPath)
		if err != nil {
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return
		}

		var newCfg APIConfig
		if err := xml.Unmarshal(data, &newCfg); err != nil {
			return
		}
		newCfg.applyDefaults()

		cfg = &newCfg
	})

	if cfg == nil {
		return nil, os.ErrInvalid
	}
	return cfg, nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *APIConfig {
	return cfg
}

func (c *APIConfig) applyDefaults() {
	if c.Context.Port == 0 {
		c.Context.Port = 8080
	}
	if c.Session.TimeoutMinutes == 0 {
		c.Session.TimeoutMinutes = 60
	}
	if c.Session.JanitorSweepSecs == 0 {
		c.Session.JanitorSweepSecs = 300
	}
	if c.Upload.MaxAudioBytes == 0 {
		c.Upload.MaxAudioBytes = 10 << 20
	}
	if c.Upload.AllowedExtension == "" {
		c.Upload.AllowedExtension = ".wav"
	}
	if c.Logging.Directory == "" {
		c.Logging.Directory = "logs"
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = 10
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = 5
	}
	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 20
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 40
	}
}
