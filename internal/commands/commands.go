package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/gettickets/gettickets/internal/bing"
)

var (
	profileFlag = &cli.BoolFlag{
		Name:  "profile",
		Usage: "Enable pprof profiling for this run",
		Value: false,
	}

	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Set the verbosity of the logger",
		Value: "info",
	}

	outputFormatFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Set the output format",
		Value:   "json",
	}

	genreFlag = &cli.StringFlag{
		Name:  "genre",
		Usage: "Scope the search to a movie genre (e.g. comedy)",
	}

	cityFlag = &cli.StringFlag{
		Name:  "city",
		Usage: "Scope the search to a city",
	}

	dateFlag = &cli.StringFlag{
		Name:  "date",
		Usage: "Scope showtimes to a date (yyyy-MM-dd)",
	}

	timeFlag = &cli.StringFlag{
		Name:  "time",
		Usage: "Earliest acceptable showtime (HH:mm, or morning/afternoon/evening/night)",
	}

	indexFlag = &cli.IntFlag{
		Name:  "index",
		Usage: "Which search result to look up showtimes for",
		Value: 0,
	}

	capFlag = &cli.IntFlag{
		Name:  "cap",
		Usage: "Maximum showtimes returned per format row",
		Value: 3,
	}

	concurrencyFlag = &cli.IntFlag{
		Name:  "max-concurrent",
		Usage: "Maximum concurrent per-date sub-page fetches",
		Value: 4,
	}
)

func setup(ctx *cli.Context) []func() {
	zapCfg := zap.NewDevelopmentConfig()
	level, err := zap.ParseAtomicLevel(ctx.String(verbosityFlag.Name))
	if err != nil {
		log.Fatalf("failed to parse log level: %v", err)
	}
	zapCfg.Level = level
	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
	maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		zap.L().Debug(fmt.Sprintf(format, args...))
	}))

	var out []func()

	if ctx.Bool(profileFlag.Name) {
		cpuProfile, err := os.Create("/tmp/cpu_profile.prof")
		if err != nil {
			log.Fatal(err)
		}

		if err := pprof.StartCPUProfile(cpuProfile); err != nil {
			log.Fatal(err)
		}

		out = append(out, func() {
			pprof.StopCPUProfile()
		})

		memProfile, err := os.Create("/tmp/memory_profile.prof")
		if err != nil {
			log.Fatal(err)
		}

		out = append(out, func() {
			memProfile.Close()
			runtime.GC()
			if err := pprof.WriteHeapProfile(memProfile); err != nil {
				zap.L().Error("Failed to write heap profile", zap.Error(err))
			}
		})
	}

	return out
}

func cleanup(ctx *cli.Context, steps ...func()) {
	for _, step := range steps {
		step()
	}
}

func results(ctx *cli.Context, payload any) error {
	switch ctx.String(outputFormatFlag.Name) {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(payload)
	default:
		return fmt.Errorf("unsupported output format %s", ctx.String(outputFormatFlag.Name))
	}
}

func newService(c *cli.Context) *bing.Service {
	svc := bing.NewService()
	svc.Scraper.TimeZone = time.Local
	svc.Scraper.MaxShowtimesPerFormat = c.Int(capFlag.Name)
	svc.Scraper.MaxConcurrentFetches = c.Int(concurrencyFlag.Name)
	return svc
}

var Movies = []*cli.Command{
	{
		Name:     "search",
		Usage:    "Find movies playing in theaters, optionally scoped to a genre and city",
		Category: "theatrical",
		Flags: []cli.Flag{
			verbosityFlag,
			profileFlag,
			outputFormatFlag,
			genreFlag,
			cityFlag,
		},
		Action: func(c *cli.Context) error {
			cleanupSteps := setup(c)
			defer cleanup(c, cleanupSteps...)

			svc := bing.NewService()
			movies := svc.Search(context.Background(), c.String(genreFlag.Name), c.String(cityFlag.Name))
			return results(c, movies)
		},
	},
	{
		Name:     "showtimes",
		Usage:    "Find showtimes and ticket links for a movie playing in theaters",
		Category: "theatrical",
		Flags: []cli.Flag{
			verbosityFlag,
			profileFlag,
			outputFormatFlag,
			genreFlag,
			cityFlag,
			dateFlag,
			timeFlag,
			indexFlag,
			capFlag,
			concurrencyFlag,
		},
		Action: func(c *cli.Context) error {
			cleanupSteps := setup(c)
			defer cleanup(c, cleanupSteps...)

			svc := newService(c)
			movies := svc.Search(context.Background(), c.String(genreFlag.Name), c.String(cityFlag.Name))
			if len(movies) == 0 {
				return fmt.Errorf("no movies found")
			}
			index := c.Int(indexFlag.Name)
			if index < 0 || index >= len(movies) {
				return fmt.Errorf("index %d out of range for %d movies", index, len(movies))
			}

			details := svc.Details(context.Background(), movies[index], c.String(dateFlag.Name), c.String(timeFlag.Name))
			if details == nil {
				return fmt.Errorf("no details found for %s", movies[index].Name)
			}
			return results(c, details)
		},
	},
}
