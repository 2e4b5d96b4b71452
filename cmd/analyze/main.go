// Package main is the offline metagame analyzer: it reads a decks JSON
// file, runs the full report and writes it as JSON, optionally with
// HTML charts.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pdelgado/mtg-metagame/internal/analyzer"
	"github.com/pdelgado/mtg-metagame/internal/charts"
	"github.com/pdelgado/mtg-metagame/internal/deck"
	"github.com/pdelgado/mtg-metagame/internal/settings"
)

var (
	decksFile         = flag.String("decks", "", "Decks JSON file (required)")
	outPath           = flag.String("out", "", "Write the report JSON here instead of stdout")
	chartsDir         = flag.String("charts", "", "Render HTML charts into this directory")
	placementWeighted = flag.Bool("placement-weighted", false, "Weight decks by tournament placement")
	ignoreLands       = flag.Bool("ignore-lands", false, "Exclude common lands from top cards and synergy")
	dateFrom          = flag.String("date-from", "", "Only decks on or after this date (DD/MM/YY)")
	dateTo            = flag.String("date-to", "", "Only decks on or before this date (DD/MM/YY)")
	eventIDs          = flag.String("event-ids", "", "Only decks from these events (comma-separated IDs)")
)

func main() {
	flag.Parse()

	if *decksFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	decks, err := deck.LoadFile(*decksFile)
	if err != nil {
		log.Fatalf("Failed to load decks: %v", err)
	}

	corpus := deck.NewCorpus()
	loaded, skipped := corpus.Replace(decks)
	if skipped > 0 {
		log.Printf("Loaded %d decks (%d skipped as invalid)", loaded, skipped)
	}

	filter, err := buildFilter()
	if err != nil {
		log.Fatalf("Invalid selection: %v", err)
	}
	selected := filter.Apply(corpus.Decks())

	store := settings.NewStore()
	opts := analyzer.Options{
		PlacementWeighted: *placementWeighted,
		IgnoreLands:       *ignoreLands,
	}
	report := analyzer.Analyze(selected, opts, store.RankWeights(), store.IgnoreLands())

	if err := writeReport(&report); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	if *chartsDir != "" {
		written, err := charts.RenderReport(&report, *chartsDir)
		if err != nil {
			log.Fatalf("Failed to render charts: %v", err)
		}
		for _, path := range written {
			fmt.Fprintf(os.Stderr, "Chart written: %s\n", path)
		}
	}
}

func buildFilter() (deck.Filter, error) {
	var f deck.Filter
	f.DateFrom = *dateFrom
	f.DateTo = *dateTo
	if *eventIDs != "" {
		for _, part := range strings.Split(*eventIDs, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return f, fmt.Errorf("invalid event ID %q", part)
			}
			f.EventIDs = append(f.EventIDs, id)
		}
	}
	return f, nil
}

func writeReport(report *analyzer.Report) error {
	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
