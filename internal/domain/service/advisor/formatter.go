package advisor

import (
	"fmt"
	"strings"

	"quotewise/internal/domain/entity"
	"quotewise/pkg/lox"
)

const maxDifferentiators = 2

// renderAnswer собирает детерминированный разговорный ответ из
// структурированного результата. Никакой генерации: те же входы — тот
// же текст, фразы выводятся из числовых вкладов.
func renderAnswer(result *entity.ComparisonResult) string {
	var b strings.Builder

	best := result.Best

	fmt.Fprintf(&b, "Best value: %s (quote %q) with a score of %.3f.",
		best.Provider, best.ID, best.Score)

	if diff := differentiators(best); len(diff) > 0 {
		fmt.Fprintf(&b, " What sets it apart: %s.", strings.Join(diff, ", "))
	}

	if len(result.Ranked) > 1 {
		writeRunnerUp(&b, result)
	}

	if n := incompleteCount(result.Ranked); n > 0 {
		fmt.Fprintf(&b, " Note: %d quote(s) were missing attributes and were scored on what was available.", n)
	}

	return b.String()
}

// differentiators один-два атрибута с наибольшим вкладом в балл лучшей.
func differentiators(best entity.ScoredQuote) []string {
	available := make([]entity.Contribution, 0, len(best.Explanation))
	for _, c := range best.Explanation {
		if c.Available && c.Contribution > 0 {
			available = append(available, c)
		}
	}

	if len(available) > maxDifferentiators {
		available = available[:maxDifferentiators]
	}

	return lox.Map(available, func(c entity.Contribution) string {
		return fmt.Sprintf("%s (contributes %.2f)", c.Attribute, c.Contribution)
	})
}

func writeRunnerUp(b *strings.Builder, result *entity.ComparisonResult) {
	runnerUp := result.Ranked[1]

	fmt.Fprintf(b, " The runner-up is %s (quote %q, score %.3f)",
		runnerUp.Provider, runnerUp.ID, runnerUp.Score)

	var biggest *entity.AttributeDelta

	for i := range result.Deltas {
		d := &result.Deltas[i]
		if d.QuoteID != runnerUp.ID {
			continue
		}
		if biggest == nil || abs(d.Percent) > abs(biggest.Percent) {
			biggest = d
		}
	}

	switch {
	case biggest == nil:
		b.WriteString(".")
	case biggest.Percent >= 0:
		fmt.Fprintf(b, ", %.1f%% worse on %s.", biggest.Percent, biggest.Attribute)
	default:
		fmt.Fprintf(b, ", %.1f%% better on %s but weaker overall.", -biggest.Percent, biggest.Attribute)
	}
}

func incompleteCount(ranked []entity.ScoredQuote) int {
	count := 0
	for _, sq := range ranked {
		if !sq.Complete {
			count++
		}
	}

	return count
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
