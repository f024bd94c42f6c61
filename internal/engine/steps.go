package engine

import (
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/rng"
)

const (
	minSteps = 3
	maxSteps = 6
)

var stepTemplates = map[domain.Category][]string{
	domain.CategoryBuild: {
		"Understand the problem and define scope",
		"Implement the main change",
		"Test locally",
		"Review the code",
		"Commit and document",
	},
	domain.CategoryShip: {
		"Decide what goes into this delivery",
		"Apply changes and test",
		"Produce the build or package",
		"Send it to its destination (store, server, ...)",
		"Note what changed in the log",
	},
	domain.CategoryReach: {
		"Define the core message",
		"Create the content (text, video, image)",
		"Review and adjust",
		"Publish and distribute",
		"Record the first metrics",
	},
}

// PlanSteps derives the checklist for a quest. The number of steps is drawn
// from the sequence keyed by title; the steps themselves are always the
// leading entries of the category template, in template order.
func PlanSteps(src rng.Source, category domain.Category, title string) []domain.Step {
	templates, ok := stepTemplates[category]
	if !ok {
		templates = stepTemplates[domain.CategoryBuild]
	}
	upper := min(maxSteps, len(templates))
	n := rng.IntBetween(src.Sequence(title), minSteps, upper)

	steps := make([]domain.Step, 0, n)
	for _, text := range templates[:n] {
		steps = append(steps, domain.Step{Text: text})
	}
	return steps
}
