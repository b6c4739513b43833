// Command vecfilter applies where / where_document filters to a record
// snapshot and prints the surviving records.
//
//	vecfilter --records papers.jsonl.gz \
//	    --where '{"$and": [{"year": {"$gte": 2023}}, {"category": {"$in": ["ml", "quantum"]}}]}' \
//	    --where-document '{"$contains": "learning"}'
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hupe1980/vecfilter"
	"github.com/hupe1980/vecfilter/filter"
	"github.com/hupe1980/vecfilter/recordio"
	"github.com/hupe1980/vecfilter/source"
	"github.com/hupe1980/vecfilter/source/minio"
	"github.com/hupe1980/vecfilter/source/s3"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "vecfilter:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	conf, err := parseArgs(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(conf, stderr)
	if err != nil {
		return err
	}

	schema, err := conf.schema()
	if err != nil {
		return err
	}
	jsonSchema, err := conf.jsonSchema()
	if err != nil {
		return err
	}

	q, err := buildQuery(conf)
	if err != nil {
		return err
	}

	router, err := newRouter(conf)
	if err != nil {
		return err
	}

	r, err := recordio.OpenURI(ctx, router, conf.Records,
		recordio.WithSchema(schema),
		recordio.WithJSONSchema(jsonSchema),
	)
	if err != nil {
		logger.LogLoad(ctx, conf.Records, 0, err)
		return err
	}
	records, err := recordio.ReadAll(r)
	if cerr := r.Close(); err == nil {
		err = cerr
	}
	logger.LogLoad(ctx, conf.Records, len(records), err)
	if err != nil {
		return err
	}

	metrics := &vecfilter.BasicMetricsCollector{}
	engOpts := []vecfilter.Option{
		vecfilter.WithLogger(logger),
		vecfilter.WithMetricsCollector(metrics),
		vecfilter.WithParallelism(conf.Parallelism),
		vecfilter.WithSchema(schema),
		vecfilter.WithFilterCacheTTL(-1),
	}
	if conf.CaseInsensitive {
		engOpts = append(engOpts, vecfilter.WithCaseInsensitive())
	}
	eng := vecfilter.New(engOpts...)

	out, err := eng.Select(ctx, records, q)
	if err != nil {
		return err
	}

	stats := metrics.GetStats()
	logger.InfoContext(ctx, "filter applied",
		"candidates", stats.Candidates,
		"selected", stats.Selected,
		"select_avg_nanos", stats.SelectAvgNanos,
	)

	switch conf.Output {
	case "jsonl":
		w, err := recordio.NewWriter(stdout, recordio.CompressionNone)
		if err != nil {
			return err
		}
		for _, rec := range out {
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return w.Close()
	default:
		for _, rec := range out {
			if _, err := fmt.Fprintln(stdout, rec.ID); err != nil {
				return err
			}
		}
		return nil
	}
}

func newLogger(conf Config, w io.Writer) (*vecfilter.Logger, error) {
	level, err := conf.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if conf.LogFormat == "json" {
		return vecfilter.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return vecfilter.NewLogger(slog.NewTextHandler(w, opts)), nil
}

// decodeFilter turns a JSON filter argument into its configuration map.
// An empty argument or null means no filter.
func decodeFilter(flag, text string) (map[string]any, error) {
	cfg, err := filter.DecodeJSON([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", flag, err)
	}
	return cfg, nil
}

func buildQuery(conf Config) (vecfilter.Query, error) {
	where, err := decodeFilter("--where", conf.Where)
	if err != nil {
		return vecfilter.Query{}, err
	}
	whereDocument, err := decodeFilter("--where-document", conf.WhereDocument)
	if err != nil {
		return vecfilter.Query{}, err
	}
	return vecfilter.Query{
		Where:         where,
		WhereDocument: whereDocument,
		IDs:           conf.IDs,
		Limit:         conf.Limit,
		Offset:        conf.Offset,
	}, nil
}

func newRouter(conf Config) (*source.Router, error) {
	router := source.NewRouter()
	router.Handle("s3", s3.DefaultResolver())

	if conf.MinIO.Endpoint != "" {
		client, err := minio.Dial(minio.Config{
			Endpoint:  conf.MinIO.Endpoint,
			AccessKey: conf.MinIO.AccessKey,
			SecretKey: conf.MinIO.SecretKey,
			Secure:    conf.MinIO.Secure,
		})
		if err != nil {
			return nil, err
		}
		router.Handle("minio", minio.Resolver(client))
	}
	return router, nil
}
