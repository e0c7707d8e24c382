package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/Bloodwingv2/gamecrawl/internal/domain"
)

// ReadCSV reads a canonical catalog CSV back into records. The header must
// match the canonical column set; this is the inverse of WriteCSV.
func ReadCSV(path string) ([]domain.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}

	index := make(map[string]int, len(rows[0]))
	for i, column := range rows[0] {
		index[column] = i
	}
	for _, field := range domain.CanonicalFields {
		if _, ok := index[field]; !ok {
			return nil, fmt.Errorf("catalog %s lacks column %q", path, field)
		}
	}

	records := make([]domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(field string) string { return row[index[field]] }

		records = append(records, domain.Record{
			DataSource:         domain.Source(cell(domain.FieldDataSource)),
			GameTitle:          cell(domain.FieldGameTitle),
			ReleaseDate:        cell(domain.FieldReleaseDate),
			Rating:             parseRating(cell(domain.FieldRating)),
			ReviewCount:        parseIntCell(cell(domain.FieldReviewCount)),
			OriginalPrice:      parseFloatCell(cell(domain.FieldOriginalPrice)),
			DiscountedPrice:    parseFloatCell(cell(domain.FieldDiscountedPrice)),
			DiscountPercentage: parseFloatCell(cell(domain.FieldDiscountPercentage)),
			Genres:             cell(domain.FieldGenres),
			Platform:           cell(domain.FieldPlatform),
			Developer:          cell(domain.FieldDeveloper),
			Publisher:          cell(domain.FieldPublisher),
			Description:        cell(domain.FieldDescription),
			GameURL:            cell(domain.FieldGameURL),
			ReleaseStatus:      domain.ReleaseStatus(cell(domain.FieldReleaseStatus)),
		})
	}
	return records, nil
}

func parseRating(cell string) domain.Rating {
	switch cell {
	case "":
		return domain.MissingRating()
	case domain.UnratedSentinel:
		return domain.UnratedRating()
	}
	score, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return domain.MissingRating()
	}
	return domain.NumericRating(score)
}

func parseIntCell(cell string) *int {
	if cell == "" {
		return nil
	}
	v, err := strconv.Atoi(cell)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloatCell(cell string) *float64 {
	if cell == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	return &v
}
