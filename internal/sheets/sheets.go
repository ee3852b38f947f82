// Package sheets stores tasks and tags in a Google spreadsheet: one worksheet
// of task rows under a header, and one single-column worksheet of tag names.
package sheets

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"eisen/internal/model"
	"eisen/internal/store"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const (
	DefaultTasksSheet = "Tasks"
	DefaultTagsSheet  = "Tags"
)

type Config struct {
	// Spreadsheet is an id or a full spreadsheet URL.
	Spreadsheet string
	TasksSheet  string
	TagsSheet   string

	// Service-account JSON, either as a file path or base64 encoded.
	CredentialsFile string
	CredentialsB64  string
}

// Sheets is a store.Backend over the Sheets v4 API.
type Sheets struct {
	srv           *gsheets.Service
	spreadsheetID string
	tasksSheet    string
	tagsSheet     string

	mu        sync.Mutex
	tagsID    int64
	tagsReady bool
}

var _ store.Backend = (*Sheets)(nil)

// Open authenticates with service-account credentials and connects.
func Open(ctx context.Context, cfg Config) (*Sheets, error) {
	creds, err := credentials(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg, option.WithCredentials(creds))
}

func credentials(ctx context.Context, cfg Config) (*google.Credentials, error) {
	var data []byte
	switch {
	case strings.TrimSpace(cfg.CredentialsB64) != "":
		b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(cfg.CredentialsB64))
		if err != nil {
			return nil, fmt.Errorf("sheets: decode credentials: %w", err)
		}
		data = b
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		b, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("sheets: read credentials: %w", err)
		}
		data = b
	default:
		creds, err := google.FindDefaultCredentials(ctx, gsheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("sheets: no credentials configured: %w", err)
		}
		return creds, nil
	}
	creds, err := google.CredentialsFromJSON(ctx, data, gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("sheets: parse credentials: %w", err)
	}
	return creds, nil
}

// New connects with explicit client options and makes sure the tags
// worksheet exists.
func New(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Sheets, error) {
	id, err := SpreadsheetIDFromURL(cfg.Spreadsheet)
	if err != nil {
		return nil, err
	}
	srv, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: new service: %w", err)
	}
	s := &Sheets{
		srv:           srv,
		spreadsheetID: id,
		tasksSheet:    orDefault(cfg.TasksSheet, DefaultTasksSheet),
		tagsSheet:     orDefault(cfg.TagsSheet, DefaultTagsSheet),
	}
	if err := s.ensureTagsSheet(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func (s *Sheets) Close() error { return nil }

func (s *Sheets) ensureTagsSheet(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tagsReady {
		return nil
	}
	ss, err := s.srv.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: get spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == s.tagsSheet {
			s.tagsID = sh.Properties.SheetId
			s.tagsReady = true
			return nil
		}
	}

	resp, err := s.srv.Spreadsheets.BatchUpdate(s.spreadsheetID, &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{
					Title:          s.tagsSheet,
					GridProperties: &gsheets.GridProperties{RowCount: 100, ColumnCount: 1},
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: add %s worksheet: %w", s.tagsSheet, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return errors.New("sheets: add worksheet: empty reply")
	}
	s.tagsID = resp.Replies[0].AddSheet.Properties.SheetId
	if err := s.writeRow(ctx, s.tagsSheet, 1, []string{store.TagColumn}); err != nil {
		return err
	}
	s.tagsReady = true
	return nil
}

func (s *Sheets) readAll(ctx context.Context, title string) ([][]string, error) {
	vr, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, quoteSheet(title)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read %s: %w", title, err)
	}
	out := make([][]string, len(vr.Values))
	for i, row := range vr.Values {
		out[i] = cellStrings(row)
	}
	return out, nil
}

func (s *Sheets) writeRow(ctx context.Context, title string, row int, cells []string) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{cellValues(cells)}}
	_, err := s.srv.Spreadsheets.Values.Update(s.spreadsheetID, rowRange(title, row), vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: write %s row %d: %w", title, row, err)
	}
	return nil
}

func (s *Sheets) appendRow(ctx context.Context, title string, cells []string) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{cellValues(cells)}}
	_, err := s.srv.Spreadsheets.Values.Append(s.spreadsheetID, rowRange(title, 1), vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: append to %s: %w", title, err)
	}
	return nil
}

// taskHeader returns the worksheet header, writing the canonical one (or
// appending missing columns) when needed.
func (s *Sheets) taskHeader(ctx context.Context, rows [][]string) ([]string, error) {
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}
	merged, changed := mergeHeader(header, store.TaskColumns)
	if changed {
		if err := s.writeRow(ctx, s.tasksSheet, 1, merged); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

func taskValues(t model.Task) map[string]string {
	row := store.TaskToRow(t)
	out := make(map[string]string, len(row))
	for i, col := range store.TaskColumns {
		out[col] = row[i]
	}
	return out
}

func (s *Sheets) LoadTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.readAll(ctx, s.tasksSheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}
	header := rows[0]
	out := make([]model.Task, 0, len(rows)-1)
	for _, row := range rows[1:] {
		t := store.TaskFromRecord(store.RecordFromRow(header, row))
		if t.ID == "" && t.Title == "" {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Sheets) InsertTask(ctx context.Context, t model.Task) error {
	rows, err := s.readAll(ctx, s.tasksSheet)
	if err != nil {
		return err
	}
	header, err := s.taskHeader(ctx, rows)
	if err != nil {
		return err
	}
	return s.appendRow(ctx, s.tasksSheet, rowForHeader(header, taskValues(t), nil))
}

// UpdateTask rewrites only the row whose id column matches.
func (s *Sheets) UpdateTask(ctx context.Context, t model.Task) error {
	rows, err := s.readAll(ctx, s.tasksSheet)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return store.ErrNotFound
	}
	idCol := columnIndex(rows[0], "id")
	if idCol < 0 {
		return store.ErrNotFound
	}
	for i := 1; i < len(rows); i++ {
		if idCol < len(rows[i]) && strings.TrimSpace(rows[i][idCol]) == t.ID {
			header, err := s.taskHeader(ctx, rows)
			if err != nil {
				return err
			}
			return s.writeRow(ctx, s.tasksSheet, i+1, rowForHeader(header, taskValues(t), rows[i]))
		}
	}
	return store.ErrNotFound
}

// ClearTasks empties every row below the header and rewrites the header.
func (s *Sheets) ClearTasks(ctx context.Context) error {
	_, err := s.srv.Spreadsheets.Values.Clear(s.spreadsheetID, bodyRange(s.tasksSheet), &gsheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: clear %s: %w", s.tasksSheet, err)
	}
	return s.writeRow(ctx, s.tasksSheet, 1, store.TaskColumns)
}

func (s *Sheets) LoadTags(ctx context.Context) ([]string, error) {
	rows, err := s.readAll(ctx, s.tagsSheet)
	if err != nil {
		return nil, err
	}
	var out []string
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		if name := strings.TrimSpace(row[0]); name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}

func (s *Sheets) AppendTag(ctx context.Context, name string) error {
	if err := s.ensureTagsSheet(ctx); err != nil {
		return err
	}
	return s.appendRow(ctx, s.tagsSheet, []string{name})
}

// DeleteTag removes the first row (below the header) holding exactly name.
func (s *Sheets) DeleteTag(ctx context.Context, name string) (bool, error) {
	if err := s.ensureTagsSheet(ctx); err != nil {
		return false, err
	}
	rows, err := s.readAll(ctx, s.tagsSheet)
	if err != nil {
		return false, err
	}
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) == 0 || strings.TrimSpace(rows[i][0]) != name {
			continue
		}
		req := &gsheets.BatchUpdateSpreadsheetRequest{
			Requests: []*gsheets.Request{{
				DeleteDimension: &gsheets.DeleteDimensionRequest{
					Range: &gsheets.DimensionRange{
						SheetId:         s.tagsID,
						Dimension:       "ROWS",
						StartIndex:      int64(i),
						EndIndex:        int64(i + 1),
						ForceSendFields: []string{"SheetId", "StartIndex"},
					},
				},
			}},
		}
		if _, err := s.srv.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
			return false, fmt.Errorf("sheets: delete tag row %d: %w", i+1, err)
		}
		return true, nil
	}
	return false, nil
}
