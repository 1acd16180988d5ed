package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/svanhoutte/stuiver/internal/common"
	"github.com/svanhoutte/stuiver/internal/model"
	"github.com/svanhoutte/stuiver/internal/money"
)

// csvColumns are the header names we recognize, matched
// case-insensitively after trimming.
var csvColumns = []string{"date", "type", "category", "amount", "note"}

// ParseCSV reads transactions from delimiter-tolerant CSV: comma,
// semicolon, or tab. The header row determines column order by name.
// Dates are accepted as DD/MM/YYYY or YYYY-MM-DD and normalized; the
// type column matches "income" case-insensitively and everything else
// is an expense. Rows with fewer than 4 columns are skipped silently.
func ParseCSV(r io.Reader) ([]model.Transaction, error) {
	buffered := bufio.NewReader(r)
	headerLine, err := buffered.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	delimiter := sniffDelimiter(headerLine)
	columns, err := mapColumns(headerLine, delimiter)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(buffered)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var transactions []model.Transaction
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", readErr)
		}
		if len(record) < 4 {
			continue
		}

		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		date, ok := normalizeDate(field("date"))
		if !ok {
			slog.Debug("skipping CSV row with unparseable date", "date", field("date"))
			continue
		}

		transactions = append(transactions, model.Transaction{
			Kind:     model.ParseKind(field("type")),
			Date:     date,
			Category: field("category"),
			Amount:   money.ParseToMinorUnits(field("amount")),
			Note:     field("note"),
		})
	}
	return transactions, nil
}

// sniffDelimiter picks the separator that splits the header into the
// most fields.
func sniffDelimiter(header string) rune {
	best, bestCount := ',', strings.Count(header, ",")
	if n := strings.Count(header, ";"); n > bestCount {
		best, bestCount = ';', n
	}
	if n := strings.Count(header, "\t"); n > bestCount {
		best = '\t'
	}
	return best
}

// mapColumns resolves header names to field positions.
func mapColumns(header string, delimiter rune) (map[string]int, error) {
	fields := strings.Split(strings.TrimRight(header, "\r\n"), string(delimiter))
	columns := make(map[string]int, len(fields))
	for i, raw := range fields {
		name := strings.ToLower(strings.TrimSpace(raw))
		for _, known := range csvColumns {
			if name == known {
				columns[known] = i
			}
		}
	}
	for _, required := range []string{"date", "amount"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: CSV header is missing the %q column", common.ErrInvalidImport, required)
		}
	}
	return columns, nil
}

// normalizeDate accepts DD/MM/YYYY or YYYY-MM-DD and returns the
// canonical form.
func normalizeDate(s string) (string, bool) {
	for _, layout := range []string{model.DateLayout, "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(model.DateLayout), true
		}
	}
	return "", false
}
