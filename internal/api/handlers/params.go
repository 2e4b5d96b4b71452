// Package handlers implements the HTTP handlers for the metagame API.
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pdelgado/mtg-metagame/internal/deck"
)

// parseIDList parses a comma-separated list of integer IDs.
func parseIDList(raw string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid ID %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// intQuery returns a query parameter as int, or the fallback when
// absent or malformed.
func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// boolQuery treats "true" and "1" as true.
func boolQuery(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "true" || v == "1"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// selectionFilter builds a deck filter from the shared query
// parameters: event_ids (comma-separated), event_id (single, kept for
// older clients) and date_from/date_to. Event selection takes
// precedence over dates, matching Filter.Apply.
func selectionFilter(r *http.Request) (deck.Filter, error) {
	var f deck.Filter
	q := r.URL.Query()
	if raw := q.Get("event_ids"); raw != "" {
		ids, err := parseIDList(raw)
		if err != nil {
			return f, err
		}
		f.EventIDs = ids
	} else if raw := q.Get("event_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return f, fmt.Errorf("invalid event_id %q", raw)
		}
		f.EventIDs = []int{id}
	}
	f.DateFrom = q.Get("date_from")
	f.DateTo = q.Get("date_to")
	return f, nil
}
