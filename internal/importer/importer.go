package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"flamegold-ordering/internal/domain"
	"flamegold-ordering/internal/repository/menu"
)

// CSVImporter reads menu CSV exports and inserts/updates menu items with
// their customization groups.
type CSVImporter struct {
	reader   *csv.Reader
	menuRepo menu.Writer
}

func NewCSVImporter(r io.Reader, repo menu.Writer) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		menuRepo: repo,
	}
}

type csvRow struct {
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	Available   bool
	Groups      []domain.CustomizationGroup
}

// Run parses CSV rows and upserts menu items. An item row carries the item
// columns; subsequent rows with a blank name attach customization groups to
// the item above them.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current  *csvRow
		imported int
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row, group := parseRow(record, index)
		if row == nil && group == nil {
			continue
		}

		if row != nil {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			if group != nil {
				current.Groups = append(current.Groups, *group)
			}
			continue
		}

		// Continuation rows (customization groups) belong to the item above.
		if current != nil {
			current.Groups = append(current.Groups, *group)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.Name == "" || row.Price <= 0 || row.Category == "" {
		return fmt.Errorf("invalid menu row (missing required fields) for item %q", row.Name)
	}

	saved, err := i.menuRepo.UpsertItem(ctx, domain.MenuItem{
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		Category:    row.Category,
		ImageURL:    row.ImageURL,
		Available:   row.Available,
	})
	if err != nil {
		return fmt.Errorf("upsert item %q: %w", row.Name, err)
	}

	for pos, g := range row.Groups {
		if !g.Kind.Valid() {
			return fmt.Errorf("invalid group kind %q for item %q", g.Kind, row.Name)
		}
		g.MenuItemID = saved.ID
		g.Position = pos
		if err := i.menuRepo.UpsertGroup(ctx, g); err != nil {
			return fmt.Errorf("upsert group %q for item %q: %w", g.Name, row.Name, err)
		}
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[h] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (*csvRow, *domain.CustomizationGroup) {
	name := pick(record, index, "name")
	groupName := pick(record, index, "group.name")

	var group *domain.CustomizationGroup
	if groupName != "" {
		group = &domain.CustomizationGroup{
			Name:     groupName,
			Kind:     domain.GroupKind(pick(record, index, "group.kind")),
			Options:  splitOptions(pick(record, index, "group.options")),
			Required: pick(record, index, "group.required") == "true",
		}
	}

	if name == "" {
		return nil, group
	}

	var price float64
	if s := pick(record, index, "price"); s != "" {
		price, _ = strconv.ParseFloat(s, 64)
	}

	row := &csvRow{
		Name:        name,
		Description: pick(record, index, "description"),
		Price:       price,
		Category:    pick(record, index, "category"),
		ImageURL:    pick(record, index, "image_url"),
		Available:   pick(record, index, "available") != "false",
	}
	return row, group
}

// splitOptions splits the pipe-separated option list. Commas stay inside
// option labels so surcharge suffixes like "Hot (+£1.00)" survive intact.
func splitOptions(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	options := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			options = append(options, p)
		}
	}
	return options
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
