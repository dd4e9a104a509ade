package publish

import "github.com/Johannes-Berggren/publish/internal/models"

// Reporter is told when each step starts and ends.
type Reporter interface {
	StepStarted(step models.Step)
	StepFinished(step models.Step, err error)
}

type nopReporter struct{}

func (nopReporter) StepStarted(models.Step)         {}
func (nopReporter) StepFinished(models.Step, error) {}
