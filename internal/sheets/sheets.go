// Package sheets backs the grid store with the Google Sheets API.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"fill-ledger-bot/internal/interfaces"
	"fill-ledger-bot/internal/types"
)

// Client implements the grid store on the Google Sheets API. Layout
// scanning reads formatted values, the strings a human sees in the cell;
// numeric reads ask for unformatted computed values instead.
type Client struct {
	svc *sheetsapi.Service

	mu         sync.Mutex
	firstSheet map[string]string // spreadsheet id -> first worksheet title
}

var _ interfaces.GridStore = (*Client)(nil)

// New builds a client from a service-account credentials file.
func New(ctx context.Context, credentialsFile string) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, firstSheet: make(map[string]string)}, nil
}

func (c *Client) Title(ctx context.Context, ref types.SheetRef) (string, error) {
	meta, err := c.svc.Spreadsheets.Get(ref.SpreadsheetID).
		Fields("properties.title").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("spreadsheet title: %w", err)
	}
	return meta.Properties.Title, nil
}

func (c *Client) AllValues(ctx context.Context, ref types.SheetRef) (types.Grid, error) {
	name, err := c.worksheet(ctx, ref)
	if err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Values.Get(ref.SpreadsheetID, quoteSheet(name)).
		ValueRenderOption("FORMATTED_VALUE").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read worksheet values: %w", err)
	}

	grid := make(types.Grid, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		grid[i] = cells
	}
	return grid, nil
}

func (c *Client) CellValue(ctx context.Context, ref types.SheetRef, cell types.Coord) (string, error) {
	v, err := c.readCell(ctx, ref, cell, "FORMATTED_VALUE")
	if err != nil {
		return "", err
	}
	return cellString(v), nil
}

func (c *Client) RawCellValue(ctx context.Context, ref types.SheetRef, cell types.Coord) (any, error) {
	return c.readCell(ctx, ref, cell, "UNFORMATTED_VALUE")
}

func (c *Client) UpdateCell(ctx context.Context, ref types.SheetRef, cell types.Coord, value any) error {
	rng, err := c.cellRange(ctx, ref, cell)
	if err != nil {
		return err
	}
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{{value}}}
	_, err = c.svc.Spreadsheets.Values.Update(ref.SpreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update cell %s: %w", rng, err)
	}
	return nil
}

func (c *Client) readCell(ctx context.Context, ref types.SheetRef, cell types.Coord, render string) (any, error) {
	rng, err := c.cellRange(ctx, ref, cell)
	if err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Values.Get(ref.SpreadsheetID, rng).
		ValueRenderOption(render).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read cell %s: %w", rng, err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return nil, nil
	}
	return resp.Values[0][0], nil
}

// worksheet resolves the target worksheet title; an empty ref means the
// spreadsheet's first worksheet, looked up once and cached.
func (c *Client) worksheet(ctx context.Context, ref types.SheetRef) (string, error) {
	if ref.Worksheet != "" {
		return ref.Worksheet, nil
	}

	c.mu.Lock()
	name, ok := c.firstSheet[ref.SpreadsheetID]
	c.mu.Unlock()
	if ok {
		return name, nil
	}

	meta, err := c.svc.Spreadsheets.Get(ref.SpreadsheetID).
		Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("list worksheets: %w", err)
	}
	if len(meta.Sheets) == 0 {
		return "", fmt.Errorf("spreadsheet %s has no worksheets", ref.SpreadsheetID)
	}
	name = meta.Sheets[0].Properties.Title

	c.mu.Lock()
	c.firstSheet[ref.SpreadsheetID] = name
	c.mu.Unlock()
	return name, nil
}

func (c *Client) cellRange(ctx context.Context, ref types.SheetRef, cell types.Coord) (string, error) {
	name, err := c.worksheet(ctx, ref)
	if err != nil {
		return "", err
	}
	a1, err := excelize.CoordinatesToCellName(cell.Col, cell.Row)
	if err != nil {
		return "", fmt.Errorf("cell coordinates (%d,%d): %w", cell.Row, cell.Col, err)
	}
	return quoteSheet(name) + "!" + a1, nil
}

// quoteSheet wraps a worksheet title for use in an A1 range.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
