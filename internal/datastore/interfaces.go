// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"context"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/geosemantic/skosload/internal/conf"
	"github.com/geosemantic/skosload/internal/skos"
)

// Interface abstracts the underlying database implementation and defines
// the operations the importer needs.
type Interface interface {
	Open() error
	Close() error
	ImportThesaurus(ctx context.Context, meta ThesaurusMeta, concepts []skos.ConceptRecord, opts ImportOptions) (ImportStats, error)
	GetThesaurus(identifier string) (*Thesaurus, error)
	GetKeywords(thesaurusID uint) ([]ThesaurusKeyword, error)
	GetLabels(keywordID uint) ([]ThesaurusKeywordLabel, error)
	Counts() (RowCounts, error)
}

// ThesaurusMeta is the thesaurus-level input of one import run.
type ThesaurusMeta struct {
	Identifier  string // operator supplied name, the natural key
	Title       string
	Description string
	About       string // scheme URI
	Date        string
	SourceFile  string
}

// ImportOptions tune the writer's collision policy.
type ImportOptions struct {
	// Strict rejects the run before any write when a thesaurus with the
	// same identifier already exists. Without it the existing row is
	// updated in place and keywords and labels are merged by natural key.
	Strict bool
}

// ImportStats summarizes what one committed run wrote.
type ImportStats struct {
	ThesaurusID     uint
	KeywordsCreated int
	KeywordsUpdated int
	LabelsCreated   int
	LabelsUpdated   int
}

// RowCounts reports table sizes, used by dry-run verification and tests.
type RowCounts struct {
	Thesauri int64
	Keywords int64
	Labels   int64
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a store based on the configured output database.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		return nil
	}
}

// GetThesaurus retrieves a thesaurus row by its identifier.
func (ds *DataStore) GetThesaurus(identifier string) (*Thesaurus, error) {
	var t Thesaurus
	err := ds.DB.Where("identifier = ?", identifier).First(&t).Error
	if err != nil {
		if errorsIs(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("thesaurus", identifier)
		}
		return nil, dbError(err, "get-thesaurus", "identifier", identifier)
	}
	return &t, nil
}

// GetKeywords retrieves all keyword rows of one thesaurus.
func (ds *DataStore) GetKeywords(thesaurusID uint) ([]ThesaurusKeyword, error) {
	var keywords []ThesaurusKeyword
	if err := ds.DB.Where("thesaurus_id = ?", thesaurusID).Order("about").Find(&keywords).Error; err != nil {
		return nil, dbError(err, "get-keywords", "thesaurus_id", thesaurusID)
	}
	return keywords, nil
}

// GetLabels retrieves all label rows of one keyword.
func (ds *DataStore) GetLabels(keywordID uint) ([]ThesaurusKeywordLabel, error) {
	var labels []ThesaurusKeywordLabel
	if err := ds.DB.Where("keyword_id = ?", keywordID).Order("lang, kind").Find(&labels).Error; err != nil {
		return nil, dbError(err, "get-labels", "keyword_id", keywordID)
	}
	return labels, nil
}

// Counts returns the total row counts of the three thesaurus tables.
func (ds *DataStore) Counts() (RowCounts, error) {
	var counts RowCounts
	if err := ds.DB.Model(&Thesaurus{}).Count(&counts.Thesauri).Error; err != nil {
		return counts, dbError(err, "count-thesauri")
	}
	if err := ds.DB.Model(&ThesaurusKeyword{}).Count(&counts.Keywords).Error; err != nil {
		return counts, dbError(err, "count-keywords")
	}
	if err := ds.DB.Model(&ThesaurusKeywordLabel{}).Count(&counts.Labels).Error; err != nil {
		return counts, dbError(err, "count-labels")
	}
	return counts, nil
}

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger(debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gormlogger.New(
		gormLogWriter{},
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}
