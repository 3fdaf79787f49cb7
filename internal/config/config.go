// Package config loads server settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/dimension-tools-mcp/internal/imaging"
	"github.com/ironsheep/dimension-tools-mcp/internal/logging"
	"github.com/ironsheep/dimension-tools-mcp/internal/measure"
)

// Environment variable names.
const (
	EnvLogLevel     = "DIMENSION_MCP_LOG_LEVEL"
	EnvOutputDir    = "DIMENSION_MCP_OUTPUT_DIR"
	EnvBackend      = "DIMENSION_MCP_BACKEND"
	EnvMinRadius    = "DIMENSION_MCP_MIN_RADIUS"
	EnvMinArcLength = "DIMENSION_MCP_MIN_ARC_LENGTH"
	EnvArcColor     = "DIMENSION_MCP_ARC_COLOR"
	EnvCircleColor  = "DIMENSION_MCP_CIRCLE_COLOR"
)

type Config struct {
	LogLevel   logging.Level
	OutputDir  string
	Backend    measure.Backend
	Thresholds measure.Thresholds
	Style      imaging.Style
}

// Load reads settings from the process environment, falling back to values
// in envFiles. With no envFiles a .env file in the working directory is used
// if it exists. Process environment always wins over file values.
func Load(envFiles ...string) (*Config, error) {
	fileVals := map[string]string{}
	if len(envFiles) == 0 {
		// .env is optional
		if vals, err := godotenv.Read(); err == nil {
			fileVals = vals
		}
	} else {
		vals, err := godotenv.Read(envFiles...)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file: %w", err)
		}
		fileVals = vals
	}

	getEnv := func(key, fallback string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		if v, ok := fileVals[key]; ok && v != "" {
			return v
		}
		return fallback
	}
	return build(getEnv)
}

func build(getEnv func(key, fallback string) string) (*Config, error) {
	level, err := logging.ParseLevel(getEnv(EnvLogLevel, "info"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}

	backend, err := measure.ParseBackend(getEnv(EnvBackend, string(measure.BackendNative)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvBackend, err)
	}

	defaults := measure.DefaultThresholds()
	minRadius, err := parseFloat(EnvMinRadius, getEnv(EnvMinRadius, ""), defaults.MinRadius)
	if err != nil {
		return nil, err
	}
	minArc, err := parseFloat(EnvMinArcLength, getEnv(EnvMinArcLength, ""), defaults.MinArcLength)
	if err != nil {
		return nil, err
	}

	style, err := imaging.ParseStyle(
		getEnv(EnvArcColor, imaging.DefaultArcColor),
		getEnv(EnvCircleColor, imaging.DefaultCircleColor),
	)
	if err != nil {
		return nil, err
	}

	return &Config{
		LogLevel:   level,
		OutputDir:  getEnv(EnvOutputDir, os.TempDir()),
		Backend:    backend,
		Thresholds: measure.Thresholds{MinRadius: minRadius, MinArcLength: minArc},
		Style:      style,
	}, nil
}

func parseFloat(key, raw string, fallback float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", key, raw)
	}
	return v, nil
}
