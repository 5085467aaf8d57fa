package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// importTaxesCmd regenerates the taxrates data table from a CSV export.
// The CSV columns are zip, city, county, county_rate; county_rate may be
// blank on all but one row per county. The output is a Go source file
// replacing internal/taxrates/data.go so the tables stay compiled in.
func importTaxesCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "import-taxes <file.csv>",
		Short: "Regenerate the ZIP/county tax table from a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			src, err := generateTaxTable(f)
			if err != nil {
				return err
			}

			if out == "" {
				_, err = os.Stdout.Write(src)
				return err
			}
			if err := os.WriteFile(out, src, 0o644); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output path (default stdout), e.g. internal/taxrates/data.go")
	return cmd
}

type taxRow struct {
	zip    string
	city   string
	county string
}

// generateTaxTable reads the CSV and emits Go source in the data.go layout.
// Row order from the CSV is preserved: it becomes the Search prefix-match
// order.
func generateTaxTable(r io.Reader) ([]byte, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows []taxRow
	rates := make(map[string]float64)
	seenZip := make(map[string]bool)

	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++

		// Skip a header row.
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "zip") {
			continue
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("line %d: expected at least zip, city, county", line)
		}

		zip := strings.TrimSpace(rec[0])
		city := strings.TrimSpace(rec[1])
		county := strings.TrimSpace(rec[2])
		if len(zip) != 5 {
			return nil, fmt.Errorf("line %d: bad zip %q", line, zip)
		}
		if seenZip[zip] {
			return nil, fmt.Errorf("line %d: duplicate zip %q", line, zip)
		}
		seenZip[zip] = true
		rows = append(rows, taxRow{zip: zip, city: city, county: county})

		if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
			rate, err := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad rate %q", line, rec[3])
			}
			rates[county] = rate
		}
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data rows")
	}

	// Every county in the table needs a rate or Lookup would report the ZIP
	// as unavailable.
	for _, row := range rows {
		if _, ok := rates[row.county]; !ok {
			return nil, fmt.Errorf("county %q has no rate in the CSV", row.county)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("package taxrates\n\n")
	buf.WriteString("// zipTable lists Arkansas ZIP codes served by the brokerage. Table order is\n")
	buf.WriteString("// significant: Search returns prefix matches in this order.\n")
	buf.WriteString("var zipTable = []ZipCountyRecord{\n")
	for _, row := range rows {
		fmt.Fprintf(&buf, "\t{%q, %q, %q},\n", row.zip, row.city, row.county)
	}
	buf.WriteString("}\n\n")

	counties := make([]string, 0, len(rates))
	for county := range rates {
		counties = append(counties, county)
	}
	sort.Strings(counties)

	buf.WriteString("// countyRates maps county name to effective property-tax rate (percent).\n")
	buf.WriteString("var countyRates = map[string]float64{\n")
	for _, county := range counties {
		fmt.Fprintf(&buf, "\t%q: %s,\n", county, strconv.FormatFloat(rates[county], 'f', -1, 64))
	}
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}
