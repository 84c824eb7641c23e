// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// PredictionRow is one prediction in a report.
type PredictionRow struct {
	TargetGame  int    `json:"target_game" yaml:"target_game"`
	SourceGame  int    `json:"source_game" yaml:"source_game"`
	Combination string `json:"combination" yaml:"combination"`
	Status      string `json:"status" yaml:"status"`
	Offset      *int   `json:"verification_offset,omitempty" yaml:"verification_offset,omitempty"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
	ResolvedAt  string `json:"resolved_at,omitempty" yaml:"resolved_at,omitempty"`
}

// Report summarises the bookkeeping database.
type Report struct {
	GeneratedAt  string          `json:"generated_at" yaml:"generated_at"`
	Messages     int             `json:"messages" yaml:"messages"`
	PendingEdits int             `json:"pending_edits" yaml:"pending_edits"`
	Pending      int             `json:"pending" yaml:"pending"`
	Correct      int             `json:"correct" yaml:"correct"`
	Failed       int             `json:"failed" yaml:"failed"`
	Predictions  []PredictionRow `json:"predictions" yaml:"predictions"`
}

// Report builds a summary of everything recorded so far. Predictions are
// listed newest target first.
func (s *Store) Report(ctx context.Context) (Report, error) {
	r := Report{GeneratedAt: s.timestamp()}

	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM messages`).Scan(&r.Messages); err != nil {
		return Report{}, fmt.Errorf("counting messages: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM pending_edits`).Scan(&r.PendingEdits); err != nil {
		return Report{}, fmt.Errorf("counting pending edits: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT target_game, source_game, combination, status, verification_offset, created_at, resolved_at
		 FROM predictions ORDER BY target_game DESC`)
	if err != nil {
		return Report{}, fmt.Errorf("querying predictions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row PredictionRow
		var offset *int
		var resolvedAt *string
		if err := rows.Scan(&row.TargetGame, &row.SourceGame, &row.Combination, &row.Status, &offset, &row.CreatedAt, &resolvedAt); err != nil {
			return Report{}, fmt.Errorf("scanning prediction row: %w", err)
		}
		row.Offset = offset
		if resolvedAt != nil {
			row.ResolvedAt = *resolvedAt
		}
		switch row.Status {
		case "pending":
			r.Pending++
		case "correct":
			r.Correct++
		case "failed":
			r.Failed++
		}
		r.Predictions = append(r.Predictions, row)
	}
	if err := rows.Err(); err != nil {
		return Report{}, fmt.Errorf("reading prediction rows: %w", err)
	}
	return r, nil
}

// WriteYAML writes the report as YAML to w.
func (r Report) WriteYAML(w io.Writer) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteJSON writes the report as indented JSON to w.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteTable writes the report as a human-readable table to w.
func (r Report) WriteTable(w io.Writer) {
	fmt.Fprintf(w, "Generated: %s\n", r.GeneratedAt)
	fmt.Fprintf(w, "Messages: %d   Pending edits: %d\n", r.Messages, r.PendingEdits)
	fmt.Fprintf(w, "Predictions: %d pending, %d correct, %d failed\n\n", r.Pending, r.Correct, r.Failed)

	if len(r.Predictions) == 0 {
		fmt.Fprintln(w, "No predictions recorded.")
		return
	}

	fmt.Fprintf(w, "%-8s  %-8s  %-8s  %-6s  %-20s\n", "Target", "Source", "Status", "Offset", "Created")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, p := range r.Predictions {
		offset := ""
		if p.Offset != nil {
			offset = fmt.Sprintf("%d", *p.Offset)
		}
		created := p.CreatedAt
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			created = t.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%-8d  %-8d  %-8s  %-6s  %-20s\n", p.TargetGame, p.SourceGame, p.Status, offset, created)
	}
}
