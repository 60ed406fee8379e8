// Package sheets fetches raw rows from the source Google Spreadsheet using a
// service account. Fetching degrades per range: a range that fails to load
// comes back empty and the run continues with whatever data arrived.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/mentorhub/data-importer/internal/model"
)

// Ranges names the A1 range per entity sheet.
type Ranges struct {
	Students         string
	Mentors          string
	Projects         string
	Reviews          string
	SponsoredReviews string
}

// Client reads spreadsheet values through the Sheets API.
type Client struct {
	log           *slog.Logger
	srv           *sheetsv4.Service
	spreadsheetID string
	ranges        Ranges
	fetchTimeout  time.Duration
}

// New creates a Client authenticated with the service account JSON file.
// fetchTimeout bounds each individual range read; zero means no bound.
func New(ctx context.Context, log *slog.Logger, credentialsPath, spreadsheetID string, ranges Ranges, fetchTimeout time.Duration) (*Client, error) {
	if _, err := os.Stat(credentialsPath); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}

	srv, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheetsv4.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		log:           log,
		srv:           srv,
		spreadsheetID: spreadsheetID,
		ranges:        ranges,
		fetchTimeout:  fetchTimeout,
	}, nil
}

// FetchAll reads every configured range concurrently. A range that fails is
// logged and left empty; only a fully failed fetch set is worth aborting on,
// and that shows up downstream as zero rows everywhere.
func (c *Client) FetchAll(ctx context.Context) (model.RawData, error) {
	var (
		raw model.RawData
		wg  sync.WaitGroup
	)

	fetch := func(name, a1 string, dst *[][]string) {
		defer wg.Done()
		rows, err := c.fetchRange(ctx, a1)
		if err != nil {
			c.log.Warn("failed to fetch range, continuing without it", "range", name, "error", err)
			return
		}
		c.log.Info("fetched range", "range", name, "rows", len(rows))
		*dst = rows
	}

	wg.Add(5)
	go fetch("students", c.ranges.Students, &raw.Students)
	go fetch("mentors", c.ranges.Mentors, &raw.Mentors)
	go fetch("projects", c.ranges.Projects, &raw.Projects)
	go fetch("reviews", c.ranges.Reviews, &raw.Reviews)
	go fetch("sponsored_reviews", c.ranges.SponsoredReviews, &raw.SponsoredReviews)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return model.RawData{}, err
	}
	return raw, nil
}

// fetchRange reads one A1 range and converts its cells to strings.
func (c *Client) fetchRange(ctx context.Context, a1 string) ([][]string, error) {
	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}

	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, a1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get values %q: %w", a1, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, r := range resp.Values {
		row := make([]string, len(r))
		for i, cell := range r {
			row[i] = cellString(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cellString renders one API cell value. The API returns interface{} values;
// everything the pipeline needs survives fmt.Sprint.
func cellString(cell any) string {
	if cell == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(cell))
}
