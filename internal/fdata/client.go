// Package fdata downloads and decodes football-data.co.uk season CSVs,
// the pipeline's required primary source.
package fdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client fetches season CSVs from football-data.co.uk.
type Client struct {
	http *resty.Client
}

// NewClient returns a download client with a fixed 30s timeout.
func NewClient() *Client {
	return &Client{
		http: resty.New().SetTimeout(30 * time.Second),
	}
}

// DownloadSeason fetches url into path. When force is false and the file
// already exists the cached copy is used (historical seasons are static);
// the live season passes force=true since its CSV grows weekly.
// Returns true when the cached copy was used.
func (c *Client) DownloadSeason(url, path string, force bool) (cached bool, err error) {
	if !force {
		if _, statErr := os.Stat(path); statErr == nil {
			return true, nil
		}
	}
	resp, err := c.http.R().Get(url)
	if err != nil {
		return false, fmt.Errorf("GET %s: %w", url, err)
	}
	if resp.StatusCode() != 200 {
		return false, fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode())
	}
	if err := os.WriteFile(path, resp.Body(), 0644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return false, nil
}

// Table is one raw season CSV, header plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadCSV reads a raw season file, stripping the UTF-8 BOM that
// football-data.co.uk prepends to its headers.
func ReadCSV(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("parse %s: empty file", path)
	}
	return Table{Header: records[0], Rows: records[1:]}, nil
}
