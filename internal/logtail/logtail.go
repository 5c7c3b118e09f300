package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"time"
)

// Entry is one parsed line of the cohort log.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   map[string]any
	Raw     string
}

// ParseLine decodes a JSON slog record. Lines that are not JSON are kept as
// INFO entries with the whole line as the message.
func ParseLine(line string) Entry {
	entry := Entry{Level: slog.LevelInfo, Message: line, Raw: line}
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return entry
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(trimmed), &record); err != nil {
		return entry
	}
	if v, ok := record[slog.TimeKey].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			entry.Time = t
		}
	}
	if v, ok := record[slog.LevelKey].(string); ok {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			entry.Level = lvl
		}
	}
	if v, ok := record[slog.MessageKey].(string); ok {
		entry.Message = v
	}
	delete(record, slog.TimeKey)
	delete(record, slog.LevelKey)
	delete(record, slog.MessageKey)
	if len(record) > 0 {
		entry.Attrs = record
	}
	return entry
}

// Format renders an entry as a single human-readable line.
func Format(e Entry) string {
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("2006-01-02 15:04:05"))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%-5s %s", e.Level.String(), e.Message)
	for _, key := range slices.Sorted(maps.Keys(e.Attrs)) {
		fmt.Fprintf(&b, " %s=%v", key, e.Attrs[key])
	}
	return b.String()
}

// Read returns at most maxLines entries at or above minLevel from the end of
// the file at path. A non-positive maxLines returns every matching entry. A
// missing file yields no entries.
func Read(path string, maxLines int, minLevel slog.Level) ([]Entry, error) {
	entries, _, err := readFile(path, maxLines, minLevel, true)
	return entries, err
}

// Tail is Read for callers that go on to Follow: it skips an unterminated
// last line and returns the offset just past the last complete one.
func Tail(path string, maxLines int, minLevel slog.Level) ([]Entry, int64, error) {
	return readFile(path, maxLines, minLevel, false)
}

func readFile(path string, maxLines int, minLevel slog.Level, partial bool) ([]Entry, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	return scan(file, maxLines, minLevel, partial)
}

// scan reads r to EOF and returns the matching tail plus the number of bytes
// up to and including the last newline. With partial set, an unterminated
// last line is parsed as well.
func scan(r io.Reader, maxLines int, minLevel slog.Level, partial bool) ([]Entry, int64, error) {
	reader := bufio.NewReaderSize(r, 64*1024)

	var all []Entry
	var ring []Entry
	if maxLines > 0 {
		ring = make([]Entry, maxLines)
	}
	count, idx := 0, 0
	add := func(line string) {
		if strings.TrimSpace(line) == "" {
			return
		}
		entry := ParseLine(line)
		if entry.Level < minLevel {
			return
		}
		if maxLines <= 0 {
			all = append(all, entry)
			return
		}
		ring[idx] = entry
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}

	var consumed int64
	for {
		line, err := reader.ReadString('\n')
		if strings.HasSuffix(line, "\n") {
			consumed += int64(len(line))
			add(strings.TrimRight(line, "\r\n"))
		} else if partial {
			add(line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, consumed, fmt.Errorf("read log: %w", err)
		}
	}
	if maxLines <= 0 {
		return all, consumed, nil
	}

	entries := make([]Entry, count)
	if count == maxLines {
		for i := range count {
			entries[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(entries, ring[:count])
	}
	return entries, consumed, nil
}
