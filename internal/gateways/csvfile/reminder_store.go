package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/hearth/internal/domain/reminder"
)

const (
	snapshotTimeout = 30 * time.Second
	flushTimeout    = 5 * time.Second
)

// Header is the fixed column layout of the reminders file.
var Header = []string{"id", "user_id", "name", "remind_utc", "tz", "details", "freq"}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Snapshotter receives a copy of the file after rewrites. Uploads run outside
// the store lock and only the newest pending copy is kept.
type Snapshotter interface {
	Snapshot(ctx context.Context, name string, data []byte) error
}

type Option func(*ReminderStore)

func WithSnapshotter(s Snapshotter) Option {
	return func(rs *ReminderStore) {
		rs.snapshotter = s
		rs.pending = make(chan []byte, 1)
	}
}

// ReminderStore keeps reminders in a CSV file. The whole file is read and rewritten on
// every operation; mu serialises those read-modify-write cycles within the process.
type ReminderStore struct {
	path        string
	mu          sync.Mutex
	snapshotter Snapshotter
	pending     chan []byte
}

// NewReminderStore opens the file at path, creating it with a header when missing and
// upgrading the legacy layout when found.
func NewReminderStore(path string, opts ...Option) (*ReminderStore, error) {
	s := &ReminderStore{path: path}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create reminders directory: %w", err)
			}
		}
		data, err := encodeRecords([][]string{Header})
		if err != nil {
			return nil, err
		}
		if err := replaceFile(path, data); err != nil {
			return nil, err
		}
		return s, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat reminders file: %w", err)
	}

	if _, err := MigrateLegacy(path); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ReminderStore) Path() string {
	return s.path
}

func (s *ReminderStore) GetAll(_ context.Context) ([]reminder.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

func (s *ReminderStore) Create(_ context.Context, r *reminder.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readAll()
	if err != nil {
		return err
	}
	r.ID = reminder.NextID(rows)
	r.FireAt = r.FireAt.UTC()
	return s.writeAll(append(rows, *r))
}

func (s *ReminderStore) DeleteOwned(_ context.Context, ownerID snowflake.ID, id int64) (reminder.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readAll()
	if err != nil {
		return reminder.Reminder{}, err
	}

	for i, r := range rows {
		if r.ID != id || r.OwnerID != ownerID {
			continue
		}
		rows = append(rows[:i], rows[i+1:]...)
		if err := s.writeAll(rows); err != nil {
			return reminder.Reminder{}, err
		}
		return r, nil
	}
	return reminder.Reminder{}, reminder.ErrNotFound
}

func (s *ReminderStore) Update(_ context.Context, fn reminder.UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readAll()
	if err != nil {
		return err
	}
	next, changed := fn(rows)
	if !changed {
		return nil
	}
	return s.writeAll(next)
}

func (s *ReminderStore) readAll() ([]reminder.Reminder, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reminders file: %w", err)
	}
	defer file.Close()

	records, err := readRecords(file)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := columnIndex(records[0])
	rows := make([]reminder.Reminder, 0, len(records)-1)
	for line, record := range records[1:] {
		r, err := decodeRow(cols, record)
		if err != nil {
			slog.Warn("Skipping unreadable reminder row",
				slog.String("type", "db"),
				slog.String("path", s.path),
				slog.Int("line", line+2),
				slog.Any("error", err))
			continue
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// writeAll replaces the file atomically through a temp file in the same directory.
func (s *ReminderStore) writeAll(rows []reminder.Reminder) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, Header)
	for _, r := range rows {
		records = append(records, encodeRow(r))
	}

	data, err := encodeRecords(records)
	if err != nil {
		return err
	}
	if err := replaceFile(s.path, data); err != nil {
		return err
	}

	s.queueSnapshot(data)
	return nil
}

// queueSnapshot replaces any upload still waiting with data. Callers hold mu.
func (s *ReminderStore) queueSnapshot(data []byte) {
	if s.pending == nil {
		return
	}
	select {
	case <-s.pending:
	default:
	}
	select {
	case s.pending <- data:
	default:
	}
}

// RunSnapshots uploads queued copies until ctx is done, then flushes the last
// pending one. It returns immediately when no snapshotter is configured.
func (s *ReminderStore) RunSnapshots(ctx context.Context) {
	if s.pending == nil {
		return
	}
	for {
		select {
		case data := <-s.pending:
			s.upload(ctx, data)
		case <-ctx.Done():
			select {
			case data := <-s.pending:
				flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
				s.upload(flushCtx, data)
				cancel()
			default:
			}
			return
		}
	}
}

func (s *ReminderStore) upload(ctx context.Context, data []byte) {
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()
	if err := s.snapshotter.Snapshot(ctx, filepath.Base(s.path), data); err != nil {
		slog.Error("Failed to upload reminders snapshot",
			slog.String("type", "error"),
			slog.String("path", s.path),
			slog.Any("error", err))
	}
}

func readRecords(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse reminders file: %w", err)
	}
	return records, nil
}

func encodeRecords(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to encode reminders: %w", err)
	}
	return buf.Bytes(), nil
}

func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".reminders-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write reminders: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync reminders: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close reminders: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace reminders file: %w", err)
	}
	return nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	return cols
}

func field(cols map[string]int, record []string, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func decodeRow(cols map[string]int, record []string) (reminder.Reminder, error) {
	id, err := strconv.ParseInt(field(cols, record, "id"), 10, 64)
	if err != nil {
		return reminder.Reminder{}, fmt.Errorf("invalid id: %w", err)
	}
	owner, err := snowflake.Parse(field(cols, record, "user_id"))
	if err != nil {
		return reminder.Reminder{}, fmt.Errorf("invalid user_id: %w", err)
	}
	fireAt, err := parseTime(field(cols, record, "remind_utc"))
	if err != nil {
		return reminder.Reminder{}, err
	}
	recurrence, err := reminder.ParseRecurrence(field(cols, record, "freq"))
	if err != nil {
		return reminder.Reminder{}, err
	}

	tz := field(cols, record, "tz")
	if tz == "" {
		tz = "UTC"
	}

	return reminder.Reminder{
		ID:         id,
		OwnerID:    owner,
		Name:       field(cols, record, "name"),
		FireAt:     fireAt,
		Timezone:   tz,
		Details:    field(cols, record, "details"),
		Recurrence: recurrence,
	}, nil
}

func encodeRow(r reminder.Reminder) []string {
	recurrence := r.Recurrence
	if recurrence == "" {
		recurrence = reminder.RecurrenceNone
	}
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.OwnerID.String(),
		r.Name,
		r.FireAt.UTC().Format(time.RFC3339),
		r.Timezone,
		r.Details,
		string(recurrence),
	}
}

func parseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid remind_utc %q", value)
}
