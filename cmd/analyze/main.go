package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gobalance/adapters/excel"
	"gobalance/adapters/jsonfile"
	"gobalance/adapters/postgres"
	"gobalance/app"
	"gobalance/domain/balance"
	"gobalance/domain/core"
	"gobalance/domain/session"
	"gobalance/internal/aggregate"
	"gobalance/internal/distribution"
	"gobalance/internal/render"
)

func main() {
	dir := flag.String("dir", "selfplay_results", "directory containing selfplay_results_*.json files")
	xlsxOut := flag.String("xlsx", "", "optional path to export the report workbook")
	archiveFlag := flag.Bool("archive", false, "archive the report to Postgres (DATABASE_URL)")
	history := flag.Int("history", 0, "show the last N archived runs per configuration (requires DATABASE_URL)")
	parallel := flag.Bool("parallel", false, "aggregate per-file batches concurrently")
	dist := flag.Bool("dist", false, "print per-game move/time distributions")
	flag.Parse()

	_ = godotenv.Load()

	loader := jsonfile.NewLoader(*dir)
	records, skippedFiles, err := loader.Load()
	if err != nil {
		log.Fatalf("failed to load results from %s: %v", *dir, err)
	}
	for _, skip := range skippedFiles {
		log.Printf("skipping results file %s: %s", skip.Path, skip.Reason)
	}
	if len(records) == 0 {
		log.Fatalf("no loadable results files in %s", *dir)
	}

	service := app.NewReportService()

	report := assemble(service, records, *parallel)
	fmt.Print(render.Markdown(report))

	if *dist {
		printDistributions(loader)
	}

	if *xlsxOut != "" {
		if err := excel.NewWriter().Write(report, *xlsxOut); err != nil {
			log.Fatalf("failed to export workbook: %v", err)
		}
		log.Printf("exported report workbook to %s", *xlsxOut)
	}

	if *archiveFlag || *history > 0 {
		runArchive(report, *archiveFlag, *history)
	}
}

func assemble(service *app.ReportService, records []session.Record, parallel bool) balance.Report {
	if !parallel {
		return service.Assemble(records)
	}

	// One batch per record keeps batches trivially independent; the
	// merge produces the same groups as a sequential pass.
	batches := make([][]session.Record, len(records))
	for i, r := range records {
		batches[i] = []session.Record{r}
	}
	groups, skipped, err := aggregate.AggregateBatches(context.Background(), batches)
	if err != nil {
		log.Fatalf("parallel aggregation failed: %v", err)
	}
	return service.AssembleGroups(groups, skipped)
}

func printDistributions(loader *jsonfile.Loader) {
	games, err := loader.LoadGames()
	if err != nil {
		log.Fatalf("failed to load per-game results: %v", err)
	}
	if len(games) == 0 {
		fmt.Println("\nNo results files carry per-game data.")
		return
	}

	sources := make([]string, 0, len(games))
	for source := range games {
		sources = append(sources, source.String())
	}
	sort.Strings(sources)

	fmt.Println("\n## Per-Game Distributions")
	for _, source := range sources {
		d := distribution.FromGames(games[core.SourceID(source)])
		fmt.Printf("\n%s (%d games, %d decisive)\n", source, d.Moves.Count, d.DecisiveCount)
		fmt.Printf("  moves: mean %.1f, median %.1f, range %.0f-%.0f, sd %.1f\n",
			d.Moves.Mean, d.Moves.Median, d.Moves.Min, d.Moves.Max, d.Moves.StdDev)
		fmt.Printf("  time:  mean %.0fms, median %.0fms, q25 %.0fms, q75 %.0fms\n",
			d.TimeMs.Mean, d.TimeMs.Median, d.TimeMs.Q25, d.TimeMs.Q75)
		fmt.Printf("  win length: P1 %.1f, P2 %.1f, draws %.1f\n",
			d.P1WinLength, d.P2WinLength, d.DrawLength)
	}
}

func runArchive(rep balance.Report, save bool, history int) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		log.Fatal("DATABASE_URL is required for -archive/-history")
	}

	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := postgres.NewReportRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		log.Fatalf("failed to migrate report archive: %v", err)
	}

	if save {
		id, err := repo.Save(ctx, rep)
		if err != nil {
			log.Fatalf("failed to archive report: %v", err)
		}
		log.Printf("archived report %s", id)
	}

	if history > 0 {
		for key := range rep.Records {
			runs, err := repo.RecentRuns(ctx, key, history)
			if err != nil {
				log.Printf("history lookup failed for %s: %v", key, err)
				continue
			}
			fmt.Printf("\nHistory for %s (last %d runs):\n", key, history)
			for _, run := range runs {
				fmt.Printf("  %s  n=%-5d P1 %5.1f%%  P2 %5.1f%%  avg moves %.1f\n",
					run.CreatedAt.Format("2006-01-02 15:04"), run.TotalGames,
					run.P1Rate, run.P2Rate, run.AvgMoves)
			}
		}
	}
}
