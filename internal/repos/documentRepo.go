package repos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/glasshouse/internal/models"
)

const initSchema = `
  CREATE TABLE IF NOT EXISTS document (
    path TEXT PRIMARY KEY,
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    fields TEXT NOT NULL,       -- json object
    created_time TIMESTAMP,
    updated_time TIMESTAMP
  );

  CREATE INDEX IF NOT EXISTS document_collection ON document (collection);
`

// DocumentRepo stores documents addressed by slash separated paths that
// alternate collection and document ids, e.g. "Lighting/led1/Data/3"
type DocumentRepo struct {
	logger *log.Logger
	db     *sql.DB
}

func NewDocumentRepo(logger *log.Logger, db *sql.DB) (*DocumentRepo, error) {

	_, err := db.Exec(initSchema)
	if err != nil {
		return nil, fmt.Errorf("Error initialising document schema: %w", err)
	}

	return &DocumentRepo{logger: logger, db: db}, nil
}

// splitDocPath returns the parent collection path and document id
func splitDocPath(docPath string) (string, string, error) {
	segments := strings.Split(strings.Trim(docPath, "/"), "/")
	if len(segments)%2 != 0 || lo.Contains(segments, "") {
		return "", "", fmt.Errorf("Invalid document path (%s)", docPath)
	}
	return strings.Join(segments[:len(segments)-1], "/"), segments[len(segments)-1], nil
}

func (r *DocumentRepo) List(ctx context.Context, collectionPath string) ([]models.Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, fields FROM document WHERE collection = $1 ORDER BY rowid`,
		strings.Trim(collectionPath, "/"))
	if err != nil {
		return nil, fmt.Errorf("Error listing documents in (%s): %w", collectionPath, err)
	}
	defer rows.Close()

	docs := []models.Document{}

	for rows.Next() {
		var (
			id     string
			fields string
		)
		if err := rows.Scan(&id, &fields); err != nil {
			return nil, fmt.Errorf("Error reading document in (%s): %w", collectionPath, err)
		}
		doc, err := decodeDocument(id, fields)
		if err != nil {
			r.logger.Warn("Skipping undecodable document", "collection", collectionPath, "id", id, "err", err)
			continue
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

func (r *DocumentRepo) Get(ctx context.Context, docPath string) (models.Document, error) {
	row := r.db.QueryRowContext(ctx, "SELECT id, fields FROM document WHERE path = $1", strings.Trim(docPath, "/"))
	var (
		id     string
		fields string
	)
	err := row.Scan(&id, &fields)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Document{}, fmt.Errorf("document (%s): %w", docPath, models.ErrNotFound)
		}
		return models.Document{}, fmt.Errorf("Error reading document (%s): %w", docPath, err)
	}
	return decodeDocument(id, fields)
}

// Put replaces all fields of the document, creating it when absent
func (r *DocumentRepo) Put(ctx context.Context, docPath string, fields map[string]any) error {
	return r.put(ctx, r.db, docPath, fields)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *DocumentRepo) put(ctx context.Context, db execer, docPath string, fields map[string]any) error {
	collection, id, err := splitDocPath(docPath)
	if err != nil {
		return err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("Error encoding document (%s): %w", docPath, err)
	}

	now := time.Now()
	_, err = db.ExecContext(ctx,
		`INSERT INTO document (path, collection, id, fields, created_time, updated_time)
     VALUES ($1, $2, $3, $4, $5, $5)
     ON CONFLICT (path) DO UPDATE SET fields = excluded.fields, updated_time = excluded.updated_time`,
		strings.Join([]string{collection, id}, "/"), collection, id, string(encoded), now)
	if err != nil {
		return fmt.Errorf("Error writing document (%s): %w", docPath, err)
	}
	return nil
}

// Merge sets the given fields, keeping any others already on the document
func (r *DocumentRepo) Merge(ctx context.Context, docPath string, fields map[string]any) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Error starting merge of (%s): %w", docPath, err)
	}
	defer func() { _ = tx.Rollback() }()

	merged := map[string]any{}
	var existing string
	err = tx.QueryRowContext(ctx, "SELECT fields FROM document WHERE path = $1", strings.Trim(docPath, "/")).Scan(&existing)
	switch {
	case err == nil:
		if err := json.Unmarshal([]byte(existing), &merged); err != nil {
			return fmt.Errorf("Error decoding document (%s): %w", docPath, err)
		}
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("Error reading document (%s): %w", docPath, err)
	}

	for k, v := range fields {
		merged[k] = v
	}
	if err := r.put(ctx, tx, docPath, merged); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *DocumentRepo) Delete(ctx context.Context, docPath string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM document WHERE path = $1", strings.Trim(docPath, "/"))
	if err != nil {
		return fmt.Errorf("Error deleting document (%s): %w", docPath, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("document (%s): %w", docPath, models.ErrNotFound)
	}
	return nil
}

func decodeDocument(id string, fields string) (models.Document, error) {
	doc := models.Document{ID: id, Fields: map[string]any{}}
	if err := json.Unmarshal([]byte(fields), &doc.Fields); err != nil {
		return models.Document{}, fmt.Errorf("Error decoding document (%s): %w", id, err)
	}
	return doc, nil
}
