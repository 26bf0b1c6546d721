package logging

import (
	"go.uber.org/zap"
)

// New returns a console logger in development and a JSON production logger otherwise.
func New(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
