package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/questgame/internal/cli/formatter"
	"github.com/alexanderramin/questgame/internal/domain"
)

var errFormAborted = errors.New("form aborted")

func questHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[x] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// stepsForm builds a checklist with the quest's current done flags
// preselected. Selected receives the indexes checked on submit.
func stepsForm(q *domain.Quest, selected *[]int) *huh.Form {
	options := make([]huh.Option[int], len(q.Steps))
	for i, s := range q.Steps {
		options[i] = huh.NewOption(fmt.Sprintf("%d. %s", i+1, s.Text), i).Selected(s.Done)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title(q.Title).
				Description("space toggles, enter saves").
				Options(options...).
				Value(selected),
		),
	).WithTheme(questHuhTheme()).WithShowHelp(false)
}

// runStepsForm shows the checklist and returns one done flag per step.
func runStepsForm(q *domain.Quest) ([]bool, error) {
	var selected []int
	if err := stepsForm(q, &selected).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, errFormAborted
		}
		return nil, err
	}
	return doneFlags(len(q.Steps), selected), nil
}

func doneFlags(n int, selected []int) []bool {
	done := make([]bool, n)
	for _, i := range selected {
		if i >= 0 && i < n {
			done[i] = true
		}
	}
	return done
}
