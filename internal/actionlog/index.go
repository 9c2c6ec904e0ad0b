// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/actionlog/index.go
// Summary: SQLite FTS5 search index over the Action stream. There is no
// screen model in this module, so indexing works directly on the
// parser's output: printed-line text plus OSC window/icon-title and
// hyperlink text.

package actionlog

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/texelwiz/escape"
)

// Kind distinguishes what an indexed Entry came from.
type Kind int

const (
	KindLine Kind = iota
	KindTitle
	KindHyperlink
)

// Entry is one indexed unit of text.
type Entry struct {
	Timestamp time.Time
	Kind      Kind
	Text      string
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY,
	timestamp INTEGER NOT NULL,
	kind INTEGER NOT NULL,
	content TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_timestamp ON entries(timestamp);

CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
	content,
	content='entries',
	content_rowid='id',
	tokenize='trigram'
);

CREATE TRIGGER IF NOT EXISTS entries_ai AFTER INSERT ON entries BEGIN
	INSERT INTO entries_fts(rowid, content) VALUES (new.id, new.content);
END;
`

// Index is a SQLite FTS5-backed search index over recognized Print runs
// and OSC title/hyperlink text. No async batching: the action stream
// this module feeds from is expected to be modest (a tapped PTY
// session, not a full terminal's scrollback), so every IndexAction call
// writes synchronously.
type Index struct {
	db      *sql.DB
	lineBuf strings.Builder
	lineAt  time.Time
}

// Open creates or opens a search index database at path, creating its
// parent directory and schema if necessary.
func Open(path string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create action log directory: %w", err)
	}
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open action log database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to action log database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create action log schema: %w", err)
	}
	return &Index{db: db}, nil
}

// IndexAction folds a parsed Action into the index at the given time.
// Print runs accumulate until a line-feed or carriage-return control
// code flushes them as a KindLine entry; OSC title/hyperlink actions
// index immediately.
func (idx *Index) IndexAction(at time.Time, a escape.Action) error {
	switch v := a.(type) {
	case escape.ActionPrint:
		if idx.lineBuf.Len() == 0 {
			idx.lineAt = at
		}
		idx.lineBuf.WriteRune(rune(v))
		return nil
	case escape.ActionControl:
		if escape.ControlCode(v) == escape.ControlLF || escape.ControlCode(v) == escape.ControlCR {
			return idx.flushLine()
		}
		return nil
	case escape.ActionOSC:
		return idx.indexOSC(at, v.OSC)
	default:
		return nil
	}
}

func (idx *Index) indexOSC(at time.Time, osc escape.OperatingSystemCommand) error {
	switch v := osc.(type) {
	case escape.OSCSetWindowTitle:
		return idx.insert(at, KindTitle, v.Title)
	case escape.OSCSetIconNameAndWindowTitle:
		return idx.insert(at, KindTitle, v.Title)
	case escape.OSCSetHyperlink:
		if v.URI == "" {
			return nil
		}
		return idx.insert(at, KindHyperlink, v.URI)
	default:
		return nil
	}
}

func (idx *Index) flushLine() error {
	if idx.lineBuf.Len() == 0 {
		return nil
	}
	text := idx.lineBuf.String()
	at := idx.lineAt
	idx.lineBuf.Reset()
	return idx.insert(at, KindLine, text)
}

func (idx *Index) insert(at time.Time, kind Kind, text string) error {
	if text == "" {
		return nil
	}
	_, err := idx.db.Exec(
		"INSERT INTO entries (timestamp, kind, content) VALUES (?, ?, ?)",
		at.UnixNano(), int(kind), text,
	)
	if err != nil {
		log.Printf("actionlog: failed to index entry: %v", err)
		return fmt.Errorf("failed to index entry: %w", err)
	}
	return nil
}

// Search runs a substring search over indexed content, newest first.
// Queries under 3 bytes fall back to LIKE since the trigram tokenizer
// needs at least 3 characters to produce a trigram.
func (idx *Index) Search(query string, limit int) ([]Entry, error) {
	if query == "" {
		return nil, nil
	}
	var rows *sql.Rows
	var err error
	if len(query) < 3 {
		like := "%" + strings.ReplaceAll(strings.ReplaceAll(query, "%", "\\%"), "_", "\\_") + "%"
		rows, err = idx.db.Query(`
			SELECT timestamp, kind, content FROM entries
			WHERE content LIKE ? ESCAPE '\'
			ORDER BY timestamp DESC LIMIT ?`, like, limit)
	} else {
		quoted := `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
		rows, err = idx.db.Query(`
			SELECT e.timestamp, e.kind, e.content FROM entries_fts
			JOIN entries e ON e.id = entries_fts.rowid
			WHERE entries_fts MATCH ?
			ORDER BY e.timestamp DESC LIMIT ?`, quoted, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("action log search failed: %w", err)
	}
	defer rows.Close()

	var results []Entry
	for rows.Next() {
		var e Entry
		var tsNano int64
		var kind int
		if err := rows.Scan(&tsNano, &kind, &e.Text); err != nil {
			continue
		}
		e.Timestamp = time.Unix(0, tsNano)
		e.Kind = Kind(kind)
		results = append(results, e)
	}
	return results, rows.Err()
}

// Flush finishes any pending line accumulation, writing a partial line
// (one with no trailing newline yet) as a KindLine entry.
func (idx *Index) Flush() error {
	return idx.flushLine()
}

// Close flushes and releases the underlying database handle.
func (idx *Index) Close() error {
	if err := idx.Flush(); err != nil {
		return err
	}
	return idx.db.Close()
}
