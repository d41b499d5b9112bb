package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/lmittmann/tint"

	"quotewise/internal/domain/entity"
	"quotewise/internal/domain/service/advisor"
	"quotewise/internal/domain/service/compare"
	"quotewise/internal/domain/value"
	"quotewise/internal/infrastructure/loader"
	"quotewise/pkg/logx"
)

// go run cmd/compare/main.go <quotes.csv|quotes.json> [weights]
//
// Например:
//
// go run cmd/compare/main.go quotes.csv "price:-1.0,rating:1.0"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(log)

	if err := run(ctx, os.Args[1:]); err != nil {
		log.Error("compare failed", logx.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: compare <quotes-file> [weights]")
	}

	weights := value.Weights{"price": -1.0, "coverage_months": 0.5, "rating": 1.0}

	if len(args) > 1 { //nolint:mnd
		parsed, err := value.ParseWeights(args[1])
		if err != nil {
			return fmt.Errorf("parse weights: %w", err)
		}

		weights = parsed
	}

	aliases := value.DefaultAliasTable()

	quotes, err := loader.New(aliases).LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("load quotes: %w", err)
	}

	engine := compare.NewEngine(aliases, weights)

	answer, err := advisor.NewAdvisor(engine).Ask(ctx, advisor.Ask{
		Quotes:   quotes,
		Question: "which quote is the best value?",
		Weights:  weights,
	})
	if err != nil {
		return fmt.Errorf("advisor.Ask: %w", err)
	}

	printResult(answer.Result)

	fmt.Println()
	fmt.Println(answer.Text)

	return nil
}

func printResult(result *entity.ComparisonResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0) //nolint:mnd

	fmt.Fprintln(w, "RANK\tPROVIDER\tID\tSCORE\tCOMPLETE")

	for _, quote := range result.Ranked {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.3f\t%t\n",
			quote.Rank, quote.Provider, quote.ID, quote.Score, quote.Complete)
	}

	_ = w.Flush()

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
}
