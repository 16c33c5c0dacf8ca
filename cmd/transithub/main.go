package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nyctransithub/transit-hub/accessibility"
	"github.com/nyctransithub/transit-hub/alerts"
	"github.com/nyctransithub/transit-hub/config"
	"github.com/nyctransithub/transit-hub/favorites"
	"github.com/nyctransithub/transit-hub/feed"
	"github.com/nyctransithub/transit-hub/gtfsrt"
	"github.com/nyctransithub/transit-hub/internal/logging"
	"github.com/nyctransithub/transit-hub/notify"
	"github.com/nyctransithub/transit-hub/router"
	"github.com/nyctransithub/transit-hub/server"
	"github.com/nyctransithub/transit-hub/stations"
)

func main() {
	mode := flag.String("mode", "serve", "serve|oneshot|watch")
	call := flag.String("call", "trains", "oneshot call: trains|alerts|accessibility|stations")
	line := flag.String("line", "ACE", "line group for -call=trains, line filter for -call=stations")
	category := flag.String("category", "subway_alerts", "alert category for -call=alerts")
	feedOverride := flag.String("feed", "", "URL or local file replacing the routed feed (oneshot)")
	pretty := flag.Bool("pretty", false, "indent oneshot JSON output")
	flag.Parse()

	lineSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "line" {
			lineSet = true
		}
	})

	if err := config.LoadAppConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Config

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.FilePath = cfg.Logging.FilePath
	log := logging.New(logCfg)
	if *mode == "oneshot" {
		// keep stdout clean for the JSON payload
		log = logging.NewWithWriter(os.Stderr, cfg.Logging.Level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog := stations.LoadFile(cfg.Stations.CSVPath, log)
	client := feed.NewClient(cfg.Feeds.Timeout(), feed.WithAPIKey(cfg.Feeds.APIKey))
	r := router.FromConfig(cfg.Feeds)

	var err error
	switch *mode {
	case "serve":
		err = serve(ctx, cfg, catalog, r, client, log)
	case "watch":
		err = watch(ctx, cfg, catalog, r, client, log)
	case "oneshot":
		err = oneshot(ctx, oneshotArgs{
			call:     *call,
			line:     *line,
			lineSet:  lineSet,
			category: *category,
			feed:     *feedOverride,
			pretty:   *pretty,
		}, catalog, r, newFetcher(client), log)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil && ctx.Err() == nil {
		log.Error("exiting", "mode", *mode, "error", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg config.AppConfig, catalog *stations.Catalog, r *router.Router, client *feed.Client, log logging.Logger) error {
	deps := server.Deps{
		Catalog: catalog,
		Trains:  gtfsrt.NewService(r, client, catalog, log.With("component", "trains")),
		Alerts:  alerts.NewNormalizer(r, client, log.With("component", "alerts")),
		Outages: accessibility.NewService(r.OutagesURL(), client, log.With("component", "accessibility")),
		Log:     log.With("component", "http"),
	}
	store, err := favorites.Open(ctx, cfg.Favorites)
	if err != nil {
		// read endpoints stay available without a store
		log.Error("favorites store unavailable", "driver", cfg.Favorites.Driver, "error", err)
	} else {
		defer store.Close()
		deps.Favorites = store
	}
	return server.New(cfg.Server.Port, deps).Run(ctx)
}

func watch(ctx context.Context, cfg config.AppConfig, catalog *stations.Catalog, r *router.Router, client *feed.Client, log logging.Logger) error {
	if cfg.NATS.URL == "" {
		return fmt.Errorf("watch mode requires nats.url")
	}
	pub, err := notify.Connect(cfg.NATS.URL, cfg.NATS.SubjectPrefix, log.With("component", "notify"))
	if err != nil {
		return err
	}
	defer pub.Close()

	w := &notify.Watcher{
		Trains:     gtfsrt.NewService(r, client, catalog, log.With("component", "trains")),
		Alerts:     alerts.NewNormalizer(r, client, log.With("component", "alerts")),
		LineGroups: r.LineGroups(),
		Categories: r.AlertCategories(),
		Sink:       pub,
		Interval:   cfg.Watch.Interval(),
		Log:        log.With("component", "watch"),
	}
	log.Info("watching feeds", "line_groups", len(w.LineGroups), "categories", len(w.Categories), "interval", w.Interval.String())
	return w.Run(ctx)
}

type oneshotArgs struct {
	call     string
	line     string
	lineSet  bool
	category string
	feed     string
	pretty   bool
}

// staticRouter answers every lookup with one URL, used when -feed is set
type staticRouter struct{ url string }

func (s staticRouter) ResolveLineGroup(string) (string, bool)     { return s.url, true }
func (s staticRouter) ResolveAlertCategory(string) (string, bool) { return s.url, true }

func oneshot(ctx context.Context, args oneshotArgs, catalog *stations.Catalog, r *router.Router, f *fetcher, log logging.Logger) error {
	var (
		out any
		err error
	)
	switch args.call {
	case "trains":
		var res gtfsrt.Resolver = r
		if args.feed != "" {
			res = staticRouter{url: args.feed}
		}
		out, err = gtfsrt.NewService(res, f, catalog, log).Trains(ctx, args.line)
	case "alerts":
		var res alerts.Resolver = r
		if args.feed != "" {
			res = staticRouter{url: args.feed}
		}
		out, err = alerts.NewNormalizer(res, f, log).Fetch(ctx, args.category)
	case "accessibility":
		url := r.OutagesURL()
		if args.feed != "" {
			url = args.feed
		}
		out, err = accessibility.NewService(url, f, log).Fetch(ctx)
	case "stations":
		if args.lineSet {
			out = catalog.StationsForLine(args.line)
		} else {
			out = catalog.ExpandStations()
		}
	default:
		return fmt.Errorf("unknown call %q", args.call)
	}
	if err != nil {
		return err
	}

	var buf []byte
	if args.pretty {
		buf, err = json.MarshalIndent(out, "", "  ")
	} else {
		buf, err = json.Marshal(out)
	}
	if err != nil {
		return err
	}
	fmt.Println(string(buf))
	return nil
}
