package app

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"sentimentpulse/internal/domain"
)

// ErrMissingContentColumn is the single actionable message for a CSV
// whose header lacks the one required column. It is distinct from
// per-row failures.
var ErrMissingContentColumn = errors.New("csv must contain at least a 'content' column")

// ImportRow is one validated CSV row. Content is required; source
// defaults to "csv" and author stays nil when the column is absent or
// empty.
type ImportRow struct {
	Source  string
	Author  *string
	Content string
}

// ParseRows reads the whole CSV and validates every row before any
// annotation work begins, so a bad batch fails fast and clean.
func ParseRows(r io.Reader) ([]ImportRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingContentColumn
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	contentIdx, sourceIdx, authorIdx := -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.TrimPrefix(col, "\uFEFF")) {
		case "content":
			contentIdx = i
		case "source":
			sourceIdx = i
		case "author":
			authorIdx = i
		}
	}
	if contentIdx < 0 {
		return nil, ErrMissingContentColumn
	}

	var rows []ImportRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		row := ImportRow{Source: domain.SourceCSV, Content: rec[contentIdx]}
		if strings.TrimSpace(row.Content) == "" {
			return nil, fmt.Errorf("csv line %d: empty content", line)
		}
		if sourceIdx >= 0 && rec[sourceIdx] != "" {
			row.Source = rec[sourceIdx]
		}
		if authorIdx >= 0 && rec[authorIdx] != "" {
			a := rec[authorIdx]
			row.Author = &a
		}
		rows = append(rows, row)
	}
	return rows, nil
}
