package logging

import "log/slog"

// SlogLevel maps a zap level onto the equivalent slog level so one configured
// level drives both logging stacks.
func SlogLevel(level Level) slog.Level {
	switch {
	case level <= LevelDebug:
		return slog.LevelDebug
	case level == LevelInfo:
		return slog.LevelInfo
	case level == LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
