package logging

import (
	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/onboardx/internal/errors"
)

// LevelFor maps an error's severity to the level it is logged at when a pass
// absorbs it: low and unclassified failures are warnings, anything that cost
// a whole pass its input is an error.
func LevelFor(err error) logrus.Level {
	switch errors.GetSeverity(err) {
	case errors.SeverityHigh, errors.SeverityCritical:
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

// Failure logs an absorbed error with its structured fields at the level its
// severity calls for. The detailed form, with context and stack, goes to the
// debug log.
func Failure(log logrus.FieldLogger, err error, msg string) {
	entry := log.WithFields(errors.LogFields(err))
	entry.Log(LevelFor(err), msg)
	if detail := errors.Detail(err); detail != "" {
		entry.Debug(detail)
	}
}
