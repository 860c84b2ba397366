package helpers

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DurationSetting parses a configured duration such as "15s" or "24h". Blank values use
// fallback silently; malformed or non-positive ones use it with a warning naming the setting.
func DurationSetting(lgr zerolog.Logger, name, value string, fallback time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		lgr.Warn().Err(err).Str("setting", name).Str("value", value).Dur("fallback", fallback).Msg("Invalid duration setting, using fallback")
		return fallback
	}
	return d
}
