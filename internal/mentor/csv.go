// Package mentor provides mentor intake helpers on top of the store.
package mentor

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zulandar/teamforge/internal/models"
	"github.com/zulandar/teamforge/internal/store"
	"gorm.io/gorm"
)

// defaultCapacity is used when the CSV capacity column is missing or not
// a positive integer.
const defaultCapacity = 3

// csvColumns are the expected header names, case-insensitive.
var csvColumns = []string{"Full Name", "Tech Stack", "GitHub Username", "LinkedIn URL", "Max Team Capacity"}

// ImportCSV reads mentor rows and creates one mentor per record. Rows that
// fail to insert (for example a duplicate GitHub username) are skipped;
// the added count reflects only successful inserts.
func ImportCSV(db *gorm.DB, r io.Reader) (added int, err error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("mentor: read CSV header: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return 0, err
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return added, fmt.Errorf("mentor: read CSV record: %w", err)
		}

		m := models.Mentor{
			FullName:        field(record, cols, "Full Name"),
			TechStack:       field(record, cols, "Tech Stack"),
			GitHubUsername:  field(record, cols, "GitHub Username"),
			LinkedInURL:     field(record, cols, "LinkedIn URL"),
			MaxTeamCapacity: capacity(field(record, cols, "Max Team Capacity")),
		}
		if m.FullName == "" || m.TechStack == "" || m.GitHubUsername == "" {
			continue
		}
		if err := store.CreateMentor(db, &m); err != nil {
			continue
		}
		added++
	}
	return added, nil
}

// columnIndex maps expected column names to their positions in the header.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(csvColumns))
	for i, name := range header {
		for _, want := range csvColumns {
			if strings.EqualFold(strings.TrimSpace(name), want) {
				idx[want] = i
			}
		}
	}
	for _, want := range []string{"Full Name", "Tech Stack", "GitHub Username"} {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("mentor: CSV is missing required column %q", want)
		}
	}
	return idx, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func capacity(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultCapacity
	}
	return n
}
