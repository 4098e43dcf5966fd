package sink

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/mtfield/batch"
)

// ErrNoBatch indicates a destination with no committed batch.
var ErrNoBatch = errors.New("sink: no batch at destination")

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS mtf_batches (
		id          TEXT PRIMARY KEY,
		dest        TEXT NOT NULL UNIQUE,
		rows        INTEGER NOT NULL,
		size        INTEGER NOT NULL,
		created_at  INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS mtf_images (
		batch_id    TEXT NOT NULL REFERENCES mtf_batches(id) ON DELETE CASCADE,
		row         INTEGER NOT NULL,
		data        BLOB NOT NULL,
		PRIMARY KEY (batch_id, row)
	);
`

// SQLiteSink stores each batch under a destination name. Writing to an
// existing name replaces the previous batch in the same transaction.
type SQLiteSink struct {
	db *sql.DB
}

var (
	_ batch.ArraySink  = (*SQLiteSink)(nil)
	_ batch.StreamSink = (*SQLiteSink)(nil)
)

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLiteSink, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sink: open SQLite database: %w", err)
	}
	db.SetMaxOpenConns(4)
	if _, err = db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sink: initialize schema: %w", err)
	}

	return &SQLiteSink{db: db}, nil
}

// Close closes the database.
func (s *SQLiteSink) Close() error { return s.db.Close() }

// WriteBatch stores every image of b under dest in one transaction.
func (s *SQLiteSink) WriteBatch(ctx context.Context, dest string, b *batch.ImageBatch) error {
	w, err := s.OpenStream(ctx, dest, b.Rows, b.Size)
	if err != nil {
		return err
	}
	for k := 0; k < b.Rows; k++ {
		if err = w.WriteRow(b.Image(k)); err != nil {
			_ = w.Abort()
			return err
		}
	}

	return w.Commit(ctx)
}

// OpenStream begins the batch transaction.
func (s *SQLiteSink) OpenStream(ctx context.Context, dest string, rows, size int) (batch.RowWriter, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sink: begin transaction: %w", err)
	}
	id := uuid.NewString()
	if _, err = tx.ExecContext(ctx, `DELETE FROM mtf_batches WHERE dest = ?`, dest); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("sink: replace batch: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO mtf_batches (id, dest, rows, size, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, dest, rows, size, time.Now().UnixNano()); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("sink: insert batch: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO mtf_images (batch_id, row, data) VALUES (?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("sink: prepare insert: %w", err)
	}

	return &sqliteWriter{ctx: ctx, tx: tx, stmt: stmt, id: id, rows: rows, size: size}, nil
}

type sqliteWriter struct {
	ctx  context.Context
	tx   *sql.Tx
	stmt *sql.Stmt
	id   string
	rows int
	size int
	next int
}

func (w *sqliteWriter) WriteRow(img []float64) error {
	if len(img) != w.size*w.size {
		return fmt.Errorf("sink: image %d has %d values, want %d", w.next, len(img), w.size*w.size)
	}
	if _, err := w.stmt.ExecContext(w.ctx, w.id, w.next, encodeImage(img)); err != nil {
		return fmt.Errorf("sink: insert image %d: %w", w.next, err)
	}
	w.next++

	return nil
}

func (w *sqliteWriter) Commit(context.Context) error {
	if w.next != w.rows {
		return fmt.Errorf("sink: wrote %d of %d images", w.next, w.rows)
	}
	_ = w.stmt.Close()

	return w.tx.Commit()
}

func (w *sqliteWriter) Abort() error {
	_ = w.stmt.Close()
	if err := w.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}

	return nil
}

// ReadBatch loads the batch stored under dest.
func (s *SQLiteSink) ReadBatch(ctx context.Context, dest string) (*batch.ImageBatch, error) {
	var (
		id         string
		rows, size int
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, rows, size FROM mtf_batches WHERE dest = ?`, dest).Scan(&id, &rows, &size)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sink: %q: %w", dest, ErrNoBatch)
	}
	if err != nil {
		return nil, err
	}

	out := batch.NewImageBatch(rows, size)
	rs, err := s.db.QueryContext(ctx, `SELECT row, data FROM mtf_images WHERE batch_id = ? ORDER BY row`, id)
	if err != nil {
		return nil, err
	}
	defer rs.Close()
	var (
		k    int
		blob []byte
	)
	for rs.Next() {
		if err = rs.Scan(&k, &blob); err != nil {
			return nil, err
		}
		if k < 0 || k >= rows || len(blob) != 8*size*size {
			return nil, fmt.Errorf("sink: corrupt image %d in %q", k, dest)
		}
		decodeImage(out.Image(k), blob)
	}

	return out, rs.Err()
}

// Dests lists the stored destinations.
func (s *SQLiteSink) Dests(ctx context.Context) ([]string, error) {
	rs, err := s.db.QueryContext(ctx, `SELECT dest FROM mtf_batches ORDER BY dest`)
	if err != nil {
		return nil, err
	}
	defer rs.Close()
	var out []string
	for rs.Next() {
		var d string
		if err = rs.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, rs.Err()
}

// encodeImage packs values as little-endian float64, the .npy '<f8' layout.
func encodeImage(img []float64) []byte {
	out := make([]byte, 8*len(img))
	for i, v := range img {
		binary.LittleEndian.PutUint64(out[8*i:], math.Float64bits(v))
	}
	return out
}

func decodeImage(dst []float64, blob []byte) {
	for i := range dst {
		dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[8*i:]))
	}
}
