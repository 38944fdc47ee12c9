// Command convert unifies a saved provider response offline:
//
//	convert -provider alibaba -in raw.json -out unified.json
//
// Only records that pass the validity filter are written.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"flight-unifier-service/internal/domain/entity"
	"flight-unifier-service/internal/infrastructure/config"
	"flight-unifier-service/pkg/converter"
	"flight-unifier-service/pkg/flightid"
	"flight-unifier-service/pkg/logger"
)

func main() {
	log := logger.NewLogger(os.Getenv("LOG_LEVEL"))
	defer log.Sync()

	if err := run(os.Args[1:], os.Stdout, log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, log logger.Logger) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	providerName := fs.String("provider", "", "provider name (alibaba, mrbilit, safarmarket, safar366, flytoday, pateh)")
	in := fs.String("in", "", "raw provider response JSON file")
	out := fs.String("out", "", "unified output file; stdout when empty")
	tablesFile := fs.String("tables", "", "optional normalization tables YAML")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *providerName == "" || *in == "" {
		fs.Usage()
		return fmt.Errorf("-provider and -in are required")
	}

	provider, ok := entity.ParseProvider(*providerName)
	if !ok {
		return fmt.Errorf("%w: %q", converter.ErrUnknownProvider, *providerName)
	}

	tables, err := config.LoadTables(*tablesFile)
	if err != nil {
		return err
	}
	conv, err := converter.New(provider, flightid.NewGenerator(flightid.NewNormalizer(tables)), converter.Options{})
	if err != nil {
		return err
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}

	batch := converter.ConvertBatch(conv, payload)
	for _, skip := range batch.Skips {
		log.Warn("Skipped raw flight", "index", skip.Index, "reason", skip.Reason)
	}
	valid, dropped := converter.FilterValid(batch.Records)

	encoded, err := json.MarshalIndent(valid, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	if *out == "" {
		if _, err := fmt.Fprintln(stdout, string(encoded)); err != nil {
			return err
		}
	} else if err := os.WriteFile(*out, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Fprintf(stdout, "%s: %d raw, %d converted, %d skipped, %d dropped, %d written\n",
		provider, batch.RawCount, len(batch.Records), len(batch.Skips), dropped, len(valid))
	return nil
}
