// Package config reads the server settings from the environment.
package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config is everything main needs to wire the server.
type Config struct {
	Port string

	ItinerariesFile string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	RedisURL      string
	RedisPassword string
	DraftTTL      time.Duration

	MaintainerEmail string
	SiteURL         string
	LogFile         string

	// SubmitRate is the number of submissions a client IP may make per minute.
	SubmitRate int
	// EditRate is the number of form edits (add a day, remove a stop, ...) a
	// client IP may make per minute.
	EditRate int
}

// Defaults
const (
	DefaultPort            = ":8080"
	DefaultMongoDatabase   = "tirthyatra"
	DefaultMongoCollection = "itineraries"
	DefaultDraftTTL        = 24 * time.Hour
	DefaultSubmitRate      = 30
	DefaultEditRate        = 600
)

// Bursts allowed on top of the per-minute rates.
const (
	SubmitBurst = 5
	EditBurst   = 60
)

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv. A malformed number or duration is an
// error rather than a silent default.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Config{
		Port:            port(getenv("PORT")),
		ItinerariesFile: getenv("ITINERARIES_FILE"),
		MongoURI:        getenv("MONGO_URI"),
		MongoDatabase:   or(getenv("MONGO_DB"), DefaultMongoDatabase),
		MongoCollection: or(getenv("MONGO_COLLECTION"), DefaultMongoCollection),
		RedisURL:        getenv("REDIS_URL"),
		RedisPassword:   getenv("REDIS_PASSWORD"),
		DraftTTL:        DefaultDraftTTL,
		MaintainerEmail: getenv("MAINTAINER_EMAIL"),
		SiteURL:         strings.TrimRight(getenv("SITE_URL"), "/"),
		LogFile:         getenv("LOG_FILE"),
		SubmitRate:      DefaultSubmitRate,
		EditRate:        DefaultEditRate,
	}

	if v := getenv("DRAFT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("DRAFT_TTL: want a positive duration, got %q", v)
		}
		c.DraftTTL = d
	}
	if v := getenv("SUBMIT_RATE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("SUBMIT_RATE: want a positive integer, got %q", v)
		}
		c.SubmitRate = n
	}
	if v := getenv("EDIT_RATE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("EDIT_RATE: want a positive integer, got %q", v)
		}
		c.EditRate = n
	}
	return c, nil
}

func port(p string) string {
	if p == "" {
		return DefaultPort
	}
	if p[0] != ':' {
		return ":" + p
	}
	return p
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// SetupLogging points the standard logger at stderr and, when LOG_FILE is set,
// at a rotated log file as well. The returned closer flushes the file.
func SetupLogging(c Config) io.Closer {
	if c.LogFile == "" {
		return io.NopCloser(nil)
	}
	w := &lumberjack.Logger{
		Filename:   c.LogFile,
		MaxSize:    32, // MB
		MaxBackups: 3,
		MaxAge:     14,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, w))
	return w
}
