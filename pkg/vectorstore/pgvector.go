package vectorstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const undefinedTable = "42P01"

// vectorRow is the storage shape shared by every index table.
type vectorRow struct {
	ID        string          `gorm:"primaryKey;type:text"`
	Embedding pgvector.Vector `gorm:"type:vector"`
	Metadata  datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt time.Time
}

type scoredRow struct {
	ID       string
	Metadata datatypes.JSON
	Score    float64
}

// PgvectorStore keeps one named index in its own PostgreSQL table.
// Similarity is 1 - cosine distance (pgvector's <=> operator).
type PgvectorStore struct {
	db        *gorm.DB
	index     string
	table     string
	dimension int
}

var _ Store = (*PgvectorStore)(nil)

func NewPgvectorStore(db *gorm.DB, index string, dimension int) *PgvectorStore {
	return &PgvectorStore{
		db:        db,
		index:     index,
		table:     TableName(index),
		dimension: dimension,
	}
}

// TableName maps an index name such as "guide-index" to "guide_index".
func TableName(index string) string {
	return strings.ReplaceAll(strings.ToLower(index), "-", "_")
}

func (s *PgvectorStore) Index() string { return s.index }

// IndexExists reports whether the backing table is present.
func (s *PgvectorStore) IndexExists(ctx context.Context) bool {
	return s.db.WithContext(ctx).Migrator().HasTable(s.table)
}

// EnsureIndex creates the vector extension and the index table. It returns
// false when the index already existed.
func (s *PgvectorStore) EnsureIndex(ctx context.Context) (bool, error) {
	db := s.db.WithContext(ctx)
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return false, fmt.Errorf("%w: create extension: %v", ErrVectorStore, err)
	}
	if s.IndexExists(ctx) {
		return false, nil
	}

	// pgvector indexes cap at 2000 dimensions, so 3072-dim tables rely on exact scans.
	ddl := fmt.Sprintf(`CREATE TABLE %s (
		id TEXT PRIMARY KEY,
		embedding vector(%d) NOT NULL,
		metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, s.quotedTable(), s.dimension)
	if err := db.Exec(ddl).Error; err != nil {
		return false, fmt.Errorf("%w: create index %s: %v", ErrVectorStore, s.index, err)
	}
	return true, nil
}

func (s *PgvectorStore) Upsert(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]vectorRow, len(records))
	for i, r := range records {
		if len(r.Vector) != s.dimension {
			return fmt.Errorf("record %s: %w: expected %d, got %d", r.ID, ErrDimensionMismatch, s.dimension, len(r.Vector))
		}
		meta, err := json.Marshal(r.Metadata)
		if err != nil {
			return fmt.Errorf("record %s: marshal metadata: %w", r.ID, err)
		}
		rows[i] = vectorRow{
			ID:        r.ID,
			Embedding: pgvector.NewVector(r.Vector),
			Metadata:  datatypes.JSON(meta),
			CreatedAt: time.Now(),
		}
	}

	err := s.db.WithContext(ctx).
		Table(s.table).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"embedding", "metadata"}),
		}).
		Create(&rows).Error
	if err != nil {
		return s.wrap("upsert", err)
	}
	return nil
}

func (s *PgvectorStore) Query(ctx context.Context, vector []float32, topK int) ([]Match, error) {
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, s.dimension, len(vector))
	}
	if topK <= 0 {
		return []Match{}, nil
	}

	queryVector := pgvector.NewVector(vector)

	var rows []scoredRow
	err := s.db.WithContext(ctx).
		Table(s.table).
		Select("id, metadata, 1 - (embedding <=> ?) as score", queryVector).
		Order(gorm.Expr("embedding <=> ?", queryVector)).
		Limit(topK).
		Scan(&rows).Error
	if err != nil {
		return nil, s.wrap("query", err)
	}

	matches := make([]Match, 0, len(rows))
	for _, row := range rows {
		meta := map[string]any{}
		if len(row.Metadata) > 0 {
			if err := json.Unmarshal(row.Metadata, &meta); err != nil {
				// Unreadable metadata degrades to an empty map
				meta = map[string]any{}
			}
		}
		matches = append(matches, Match{ID: row.ID, Score: row.Score, Metadata: meta})
	}
	return matches, nil
}

func (s *PgvectorStore) quotedTable() string {
	return `"` + s.table + `"`
}

func (s *PgvectorStore) wrap(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
		return fmt.Errorf("%w: %s (%s): %v", ErrIndexNotFound, s.index, op, err)
	}
	return fmt.Errorf("%w: %s %s: %v", ErrVectorStore, op, s.index, err)
}
