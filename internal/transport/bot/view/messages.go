package view

import (
	"fmt"
	"strings"

	"quotewise/internal/domain/entity"
)

const StartMessage = `👋 <b>Помощник по котировкам</b>

Я сравниваю предложения и объясняю, чем они отличаются.

/use &lt;id набора&gt; — выбрать набор котировок
/best — лучшее предложение в активном наборе
/explain &lt;термин&gt; — что значит термин
/clear — забыть активный набор

Любой другой текст — вопрос по активному набору.`

const (
	UseMissingArgument     = "Укажите идентификатор набора: /use <id>"
	NoActiveQuoteSet       = "Сначала выберите набор котировок: /use <id>"
	ExplainMissingArgument = "Укажите термин: /explain <термин>"
	TermUnknown            = "Не нашёл такого термина в глоссарии."
	SessionCleared         = "Активный набор сброшен."
)

func QuoteSetBound(setID string, quoteCount int) string {
	return fmt.Sprintf("✅ Активный набор: <code>%s</code> (%d котировок)", setID, quoteCount)
}

// ComparisonMessage рендерит итог сравнения для чата.
func ComparisonMessage(result *entity.ComparisonResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🏆 <b>%s</b> — %.3f\n\n", result.Best.Provider, result.Best.Score)

	for _, quote := range result.Ranked {
		fmt.Fprintf(&b, "%d. %s — %.3f", quote.Rank, quote.Provider, quote.Score)

		if !quote.Complete {
			b.WriteString(" (неполные данные)")
		}

		b.WriteByte('\n')
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(&b, "\n⚠️ %s", strings.Join(result.Warnings, "; "))
	}

	return b.String()
}
