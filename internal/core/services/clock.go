package services

import (
	"time"

	"github.com/irodasoft/docuflow_app/internal/core/ports"
)

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// NewSystemClock returns a Clock backed by the wall clock (UTC).
func NewSystemClock() ports.Clock {
	return systemClock{}
}
