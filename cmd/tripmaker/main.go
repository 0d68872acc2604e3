// Command tripmaker finds random highly rated places near a point
//
//	TRIPADVISOR_API_KEY=... tripmaker -lat 48.8584 -lon 2.2945 -distance 3 -unit km -count 3 -rating 4
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"tripmaker/internal/adapters/directory/tripadvisor"
	"tripmaker/internal/core/sampler"
	"tripmaker/internal/core/version"
	"tripmaker/internal/platform/config"
	perr "tripmaker/internal/platform/errors"
	"tripmaker/internal/platform/logger"
	"tripmaker/internal/platform/net/http/bind"
	"tripmaker/internal/services/discover/domain"
	"tripmaker/internal/services/discover/service"

	json "github.com/goccy/go-json"
)

// exit codes
const (
	exitOK        = 0
	exitFailed    = 1
	exitUsage     = 2
	exitExhausted = 3
)

// directoryFor builds the place directory from config, replaced in tests
var directoryFor = func(c config.Conf) domain.Directory {
	o, d := tripadvisor.FromConfig(c.Prefix("TRIPADVISOR_"), nil)
	return tripadvisor.NewDirectory(tripadvisor.NewClient(o), d)
}

func main() {
	lo := logger.FromEnv()
	lo.Writer = os.Stderr
	if os.Getenv("LOG_LEVEL") == "" {
		lo.Level = "warn"
	}
	if os.Getenv("LOG_FORMAT") == "" {
		lo.Format = "console"
	}
	logger.Init(lo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type flags struct {
	lat, lon, distance, rating, bias float64
	unit                             string
	count, attempts, concurrency     int
	seed                             uint64
	timeout                          time.Duration
	asJSON, showVersion              bool
}

func parse(args []string, stderr io.Writer) (flags, *flag.FlagSet, error) {
	var f flags
	fs := flag.NewFlagSet("tripmaker", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&f.lat, "lat", domain.DefaultLatitude, "center latitude in decimal degrees")
	fs.Float64Var(&f.lon, "lon", domain.DefaultLongitude, "center longitude in decimal degrees")
	fs.Float64Var(&f.distance, "distance", domain.DefaultMaxDistance, "maximum distance from the center")
	fs.StringVar(&f.unit, "unit", domain.DefaultUnit.String(), "distance unit: km, cm, m, in, ft, yd or mi")
	fs.IntVar(&f.count, "count", domain.DefaultCount, "number of places to find")
	fs.Float64Var(&f.rating, "rating", domain.DefaultMinRating, "minimum rating, 0 to 5")
	fs.Float64Var(&f.bias, "bias", domain.DefaultBias, "closeness bias, above 1 favors points near the center")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed, 0 draws one from the OS")
	fs.IntVar(&f.attempts, "attempts", service.DefaultConfig().MaxAttempts, "sampled points in a row without a match before giving up, 0 = unbounded")
	fs.IntVar(&f.concurrency, "concurrency", service.DefaultConfig().DetailConcurrency, "detail lookups in flight per search")
	fs.DurationVar(&f.timeout, "timeout", service.DefaultConfig().TimeBudget, "overall time budget, 0 = none")
	fs.BoolVar(&f.asJSON, "json", false, "print JSON instead of a table")
	fs.BoolVar(&f.showVersion, "version", false, "print the build version and exit")
	return f, fs, fs.Parse(args)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f, _, err := parse(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if f.showVersion {
		_ = json.NewEncoder(stdout).Encode(version.Info("tripmaker"))
		return exitOK
	}

	in := domain.DiscoverInput{
		Latitude:     &f.lat,
		Longitude:    &f.lon,
		MaxDistance:  &f.distance,
		DistanceUnit: f.unit,
		Count:        &f.count,
		MinRating:    &f.rating,
		Bias:         &f.bias,
	}
	if err := bind.Validate(in); err != nil {
		return fail(stderr, err, exitUsage)
	}
	req, unit, err := in.Request()
	if err != nil {
		return fail(stderr, err, exitUsage)
	}

	cfg := service.DefaultConfig()
	cfg.MaxAttempts = f.attempts
	cfg.TimeBudget = f.timeout
	cfg.DetailConcurrency = f.concurrency
	cfg.Limits.MaxQuota = max(cfg.Limits.MaxQuota, req.Quota)

	var opts []service.Option
	if f.seed != 0 {
		seed := f.seed
		opts = append(opts, service.WithSources(func() sampler.RandomSource { return sampler.NewSource(seed) }))
	}

	var dir domain.Directory
	if err := capture(func() { dir = directoryFor(config.New()) }); err != nil {
		return fail(stderr, err, exitUsage)
	}

	log := logger.Named("tripmaker")
	res, err := service.New(dir, cfg, opts...).Run(ctx, req)
	if err != nil {
		log.Debug().Err(err).Str("run_id", res.RunID.String()).Msg("discovery failed")
		if perr.IsCode(err, perr.ErrorCodeExhausted) {
			return fail(stderr, err, exitExhausted)
		}
		if perr.IsCode(err, perr.ErrorCodeValidation) {
			return fail(stderr, err, exitUsage)
		}
		return fail(stderr, err, exitFailed)
	}

	out := domain.Present(req, unit, res)
	if f.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fail(stderr, err, exitFailed)
		}
		return exitOK
	}
	if err := table(stdout, out); err != nil {
		return fail(stderr, err, exitFailed)
	}
	return exitOK
}

// capture turns a config panic into an error
func capture(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	fn()
	return nil
}

func fail(w io.Writer, err error, code int) int {
	msg := err.Error()
	var e *perr.Error
	if errors.As(err, &e) && e.Field() != "" {
		msg = e.Field() + ": " + msg
	}
	fmt.Fprintln(w, "tripmaker:", msg)
	return code
}

func table(w io.Writer, out domain.DiscoverOutput) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tRATING\tDISTANCE\tADDRESS\tWEBSITE")
	for _, l := range out.Locations {
		site := "-"
		if l.Website != nil {
			site = *l.Website
		}
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\t%s\n",
			l.Name,
			strconv.FormatFloat(l.Rating, 'f', 1, 64),
			strconv.FormatFloat(l.Distance.Value, 'f', 2, 64), l.Distance.Unit,
			l.Address,
			site,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nrun %s: %d places within %s %s of %s\n",
		out.RunID, len(out.Locations),
		strconv.FormatFloat(math.Round(out.MaxDistance.Value*100)/100, 'f', -1, 64), out.MaxDistance.Unit, out.Center)
	return err
}
