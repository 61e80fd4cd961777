package tui

import (
	"strings"

	"github.com/jask/puzboard/internal/config"
	"github.com/jask/puzboard/internal/playboard"
)

// BoardOptions turns solving preferences into playboard options.
func BoardOptions(cfg config.PlayConfig) ([]playboard.Option, error) {
	movement, err := playboard.ParseMovementStrategy(cfg.Movement)
	if err != nil {
		return nil, err
	}
	opts := []playboard.Option{
		playboard.WithMovementStrategy(movement),
		playboard.WithResponder(cfg.Responder),
		playboard.WithSkipCompletedLetters(cfg.SkipCompleted),
		playboard.WithPreserveCorrectLetters(cfg.PreserveCorrect),
		playboard.WithDontDeleteCrossing(cfg.DontDeleteCrossing),
	}
	switch strings.ToLower(cfg.ShowErrors) {
	case config.ShowErrorsGrid:
		opts = append(opts, playboard.WithShowErrorsGrid(true))
	case config.ShowErrorsCursor:
		opts = append(opts, playboard.WithShowErrorsCursor(true))
	}
	return opts, nil
}
