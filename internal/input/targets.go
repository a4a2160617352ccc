// Package input loads the batch target list from a CSV file.
package input

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/user/audit-service/internal/entity"
)

// DefaultLabel is used for rows without a description.
const DefaultLabel = "No description"

// LoadTargets reads targets from a CSV file with a header row. The "url"
// column is required; rows with an empty url are silently skipped. The
// "description" column is optional and defaults to DefaultLabel.
func LoadTargets(path string) ([]entity.PageTarget, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return parseTargets(file)
}

func parseTargets(r io.Reader) ([]entity.PageTarget, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	urlCol, descCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "url":
			urlCol = i
		case "description":
			descCol = i
		}
	}
	if urlCol < 0 {
		return nil, fmt.Errorf("input file has no \"url\" column")
	}

	var targets []entity.PageTarget
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		if urlCol >= len(record) {
			continue
		}
		url := strings.TrimSpace(record[urlCol])
		if url == "" {
			continue
		}

		label := DefaultLabel
		if descCol >= 0 && descCol < len(record) {
			if desc := strings.TrimSpace(record[descCol]); desc != "" {
				label = desc
			}
		}

		targets = append(targets, entity.PageTarget{URL: url, Label: label})
	}

	return targets, nil
}
