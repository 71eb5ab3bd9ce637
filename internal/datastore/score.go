package datastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"scoreservice/internal/models"

	"github.com/cespare/xxhash/v2"
	"github.com/uptrace/bun"
)

// ScoreCollection is the read-only set of scores loaded at startup. Every
// accessor hands out copies, so the records held here never change.
type ScoreCollection struct {
	records     []models.ScoreRecord
	fingerprint string
}

func NewScoreCollection(records []models.ScoreRecord) *ScoreCollection {
	return newScoreCollection(cloneRecords(records))
}

// newScoreCollection takes ownership of records.
func newScoreCollection(records []models.ScoreRecord) *ScoreCollection {
	digest := xxhash.New()
	for i := range records {
		b, err := records[i].MarshalJSON()
		if err != nil {
			// unreachable for decoded records; keep the index so order still counts
			b = []byte(fmt.Sprintf("#%d", i))
		}
		//nolint:errcheck
		digest.Write(b)
		//nolint:errcheck
		digest.Write([]byte{'\n'})
	}

	return &ScoreCollection{
		records:     records,
		fingerprint: fmt.Sprintf("%d-%016x", len(records), digest.Sum64()),
	}
}

func (collection *ScoreCollection) Len() int {
	return len(collection.records)
}

// Fingerprint identifies the content of the collection. Collections holding
// the same records in the same order share a fingerprint.
func (collection *ScoreCollection) Fingerprint() string {
	return collection.fingerprint
}

func (collection *ScoreCollection) All() []models.ScoreRecord {
	return cloneRecords(collection.records)
}

// Filter returns copies of the records matching keep, in collection order.
// The result is never nil.
func (collection *ScoreCollection) Filter(keep func(record *models.ScoreRecord) bool) []models.ScoreRecord {
	result := make([]models.ScoreRecord, 0)
	for i := range collection.records {
		if keep(&collection.records[i]) {
			result = append(result, collection.records[i].Clone())
		}
	}
	return result
}

// WithNormalizedModes returns a new collection where every stored mode that
// NormalizeMode recognizes is replaced by its canonical value.
func (collection *ScoreCollection) WithNormalizedModes() *ScoreCollection {
	records := cloneRecords(collection.records)
	for i := range records {
		if mode, ok := models.NormalizeMode(records[i].Mode); ok {
			records[i].Mode = mode.String()
		}
	}
	return newScoreCollection(records)
}

func cloneRecords(records []models.ScoreRecord) []models.ScoreRecord {
	clone := make([]models.ScoreRecord, len(records))
	for i := range records {
		clone[i] = records[i].Clone()
	}
	return clone
}

// LoadScoresFile reads a JSON array of scores. A missing or unreadable file
// yields an empty collection.
func LoadScoresFile(path string) *ScoreCollection {
	records, err := readScoresFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("[scores] %s not found, starting with no scores\n", path)
		} else {
			log.Printf("[scores] failed to load %s: %v (starting with no scores)\n", path, err)
		}
		return NewScoreCollection(nil)
	}

	log.Printf("[scores] loaded %d scores from %s\n", len(records), path)
	return newScoreCollection(records)
}

func readScoresFile(path string) ([]models.ScoreRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []*models.ScoreRecord
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	// null entries carry no record
	records := make([]models.ScoreRecord, 0, len(items))
	for _, item := range items {
		if item != nil {
			records = append(records, *item)
		}
	}
	return records, nil
}

func CreateTableScore(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.ScoreRow)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.ScoreRow)(nil)).Index("index_scores_username_mode").IfNotExists().Column("username", "mode").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.ScoreRow)(nil)).Index("index_scores_mode").IfNotExists().Column("mode").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetScoreRows(ctx context.Context, db bun.IDB) ([]models.ScoreRow, error) {
	var rows []models.ScoreRow
	err := db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LoadScoresPostgres reads the scores table once. Query failures yield an
// empty collection.
func LoadScoresPostgres(ctx context.Context, db bun.IDB) *ScoreCollection {
	rows, err := GetScoreRows(ctx, db)
	if err != nil {
		log.Printf("[scores] failed to load scores from postgres: %v (starting with no scores)\n", err)
		return NewScoreCollection(nil)
	}

	records := make([]models.ScoreRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToRecord()
	}

	log.Printf("[scores] loaded %d scores from postgres\n", len(records))
	return newScoreCollection(records)
}
