package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cinema-booking-cli/model"
)

// BookingStore persists bookings. Implementations must keep the order in
// which bookings were appended.
type BookingStore interface {
	Load(ctx context.Context) ([]model.Booking, error)
	Append(ctx context.Context, b model.Booking) error
	SaveAll(ctx context.Context, bookings []model.Booking) error
}

const DefaultBookingsFileName = "cinema_bookings.csv"

// maxLineLength bounds a single booking line. Longer lines are skipped.
const maxLineLength = 1024 * 1024

// FileStore keeps one encoded booking per line in a flat text file.
type FileStore struct {
	Path string
	log  *slog.Logger
}

func NewFileStore(path string, log *slog.Logger) *FileStore {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FileStore{Path: path, log: log}
}

// DefaultBookingsPath returns ~/cinema_bookings.csv.
func DefaultBookingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultBookingsFileName), nil
}

// Load reads every well-formed booking. A missing file yields no bookings;
// malformed lines are logged and skipped.
func (f *FileStore) Load(ctx context.Context) ([]model.Booking, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open bookings file: %w", err)
	}
	defer file.Close()

	var bookings []model.Booking
	r := bufio.NewReaderSize(file, 64*1024)
	lineNo := 0
	for {
		line, tooLong, err := readLine(r, maxLineLength)
		if err == io.EOF && line == "" && !tooLong {
			break
		}
		if err != nil && err != io.EOF {
			return bookings, fmt.Errorf("read bookings file: %w", err)
		}
		lineNo++
		switch {
		case tooLong:
			f.log.Warn("skipping booking line", slog.String("path", f.Path), slog.Int("line", lineNo), slog.String("error", "line too long"))
		case strings.TrimSpace(line) == "":
		default:
			b, derr := Decode(line)
			if derr != nil {
				f.log.Warn("skipping booking line", slog.String("path", f.Path), slog.Int("line", lineNo), slog.String("error", derr.Error()))
				break
			}
			bookings = append(bookings, b)
		}
		if err == io.EOF {
			break
		}
	}
	f.log.Debug("bookings loaded", slog.String("path", f.Path), slog.Int("count", len(bookings)))
	return bookings, nil
}

// Append adds one booking to the end of the file, creating it and its
// directory when needed.
func (f *FileStore) Append(ctx context.Context, b model.Booking) error {
	line, err := Encode(b)
	if err != nil {
		return err
	}
	return f.write(os.O_APPEND|os.O_CREATE|os.O_WRONLY, []string{line})
}

// SaveAll replaces the file content with the given bookings.
func (f *FileStore) SaveAll(ctx context.Context, bookings []model.Booking) error {
	lines := make([]string, 0, len(bookings))
	for _, b := range bookings {
		line, err := Encode(b)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}
	return f.write(os.O_TRUNC|os.O_CREATE|os.O_WRONLY, lines)
}

func (f *FileStore) write(flag int, lines []string) (err error) {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("create bookings directory: %w", err)
	}
	file, err := os.OpenFile(f.Path, flag, 0o644)
	if err != nil {
		return fmt.Errorf("open bookings file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close bookings file: %w", cerr)
		}
	}()

	w := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("write bookings file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write bookings file: %w", err)
	}
	if err := file.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return fmt.Errorf("sync bookings file: %w", err)
	}
	return nil
}

// readLine returns the next line without its terminator. A line longer than
// limit is consumed to its end and reported as tooLong with no content.
func readLine(r *bufio.Reader, limit int) (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, rerr := r.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > limit+1 {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if rerr == bufio.ErrBufferFull {
			continue
		}
		if tooLong {
			return "", true, rerr
		}
		return strings.TrimRight(string(buf), "\r\n"), false, rerr
	}
}
