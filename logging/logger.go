package logging

import (
	"os"

	"github.com/rs/zerolog"
)

var RootLogger zerolog.Logger = zerolog.New(
	zerolog.NewConsoleWriter(
		func(w *zerolog.ConsoleWriter) { w.Out = os.Stderr },
		func(w *zerolog.ConsoleWriter) { w.TimeFormat = "15:04:05.000" })).Level(zerolog.InfoLevel).
	With().Timestamp().Logger()

// SetLevel changes the root logger level, unknown names keep the current level
func SetLevel(name string) error {
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return err
	}
	RootLogger = RootLogger.Level(level)
	return nil
}
