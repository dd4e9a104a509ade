package models

// StepName identifies one stage of a publish run.
type StepName string

const (
	StepBuild  StepName = "build"
	StepOutput StepName = "output"
	StepSite   StepName = "site"
)

// Step is a planned or completed publish stage.
type Step struct {
	Name     StepName
	Dir      string
	Commands []string
}
