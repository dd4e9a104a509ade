package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/Johannes-Berggren/publish/internal/models"
	"github.com/Johannes-Berggren/publish/internal/publish"
)

// Reporter prints one header per publish step. With a spinner it animates
// the running step and replaces it with a check mark or a cross.
type Reporter struct {
	out     io.Writer
	styles  Styles
	spin    bool
	current *spinner.Spinner
	started time.Time
}

// NewReporter returns a Reporter writing to out. withSpinner only takes
// effect when out is a terminal.
func NewReporter(out io.Writer, withSpinner bool) *Reporter {
	return &Reporter{
		out:    out,
		styles: NewStyles(out),
		spin:   withSpinner && IsTerminal(out),
	}
}

func (r *Reporter) StepStarted(step models.Step) {
	r.started = time.Now()
	title := StepTitle(step)
	if !r.spin {
		fmt.Fprintln(r.out, r.styles.Step.Render("==> "+title))
		return
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(r.out))
	s.Suffix = " " + title
	s.Start()
	r.current = s
}

func (r *Reporter) StepFinished(step models.Step, err error) {
	line := r.finishLine(step, err)
	if r.current != nil {
		r.current.FinalMSG = line + "\n"
		r.current.Stop()
		r.current = nil
		return
	}
	fmt.Fprintln(r.out, line)
}

func (r *Reporter) finishLine(step models.Step, err error) string {
	elapsed := time.Since(r.started).Round(time.Millisecond)
	if err != nil {
		return r.styles.Failure.Render("✗ "+StepTitle(step)) + " " + r.styles.Muted.Render(elapsed.String())
	}
	return r.styles.Success.Render("✓ "+StepTitle(step)) + " " + r.styles.Muted.Render(elapsed.String())
}

// StepTitle is the human name of a step.
func StepTitle(step models.Step) string {
	switch step.Name {
	case models.StepBuild:
		return "Building site"
	case models.StepOutput:
		return "Publishing output " + step.Dir
	case models.StepSite:
		return "Publishing source " + step.Dir
	default:
		return string(step.Name)
	}
}

// PrintPlan writes the commands a dry run would execute.
func PrintPlan(out io.Writer, steps []models.Step) {
	s := NewStyles(out)
	fmt.Fprintln(out, s.Title.Render("Dry run, nothing will be executed"))
	for _, step := range steps {
		fmt.Fprintln(out, s.Step.Render("==> "+StepTitle(step)))
		for _, c := range step.Commands {
			fmt.Fprintf(out, "    %s %s\n", s.Dir.Render("("+step.Dir+")"), s.Command.Render(c))
		}
	}
}

// PrintSummary writes the commits a successful run created.
func PrintSummary(out io.Writer, res *publish.Result) {
	if res == nil {
		return
	}
	s := NewStyles(out)
	for _, c := range res.Commits {
		hash := c.ShortHash
		if hash == "" {
			hash = "-------"
		}
		fmt.Fprintf(out, "%s %s %s\n", s.Hash.Render(hash), s.Dir.Render(c.Repo), c.Message)
	}
	fmt.Fprintln(out, s.Success.Render("Published."))
}
