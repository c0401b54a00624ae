// import.go: transactional writer for one thesaurus import run
package datastore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/geosemantic/skosload/internal/errors"
	"github.com/geosemantic/skosload/internal/skos"
)

// ImportThesaurus writes one thesaurus with all its keywords and labels
// inside a single transaction. Every row is upserted by its natural key
// (read first, then insert or update), so re-running the same import
// converges to the same final rows. Any failure rolls the whole run
// back; no partial thesaurus is left visible.
func (ds *DataStore) ImportThesaurus(ctx context.Context, meta ThesaurusMeta, concepts []skos.ConceptRecord, opts ImportOptions) (ImportStats, error) {
	var stats ImportStats

	if opts.Strict {
		var count int64
		if err := ds.DB.WithContext(ctx).Model(&Thesaurus{}).
			Where("identifier = ?", meta.Identifier).Count(&count).Error; err != nil {
			return stats, dbError(err, "check-identifier", "identifier", meta.Identifier)
		}
		if count > 0 {
			return stats, conflictError(
				fmt.Errorf("%w: %s", ErrDuplicateThesaurus, meta.Identifier),
				"import-thesaurus", meta.Identifier)
		}
	}

	processed := 0

	tx := ds.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return stats, dbError(tx.Error, "begin-transaction")
	}

	// Roll back if a panic occurs mid-import
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	fail := func(err error, operation string) (ImportStats, error) {
		tx.Rollback()
		return ImportStats{}, errors.New(fmt.Errorf("%w: %s: %v", ErrPersistence, operation, err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", operation).
			Context("identifier", meta.Identifier).
			Context("concepts_processed", processed).
			Build()
	}

	thesaurus, err := upsertThesaurus(tx, meta)
	if err != nil {
		return fail(err, "upsert-thesaurus")
	}
	stats.ThesaurusID = thesaurus.ID

	for i := range concepts {
		rec := &concepts[i]

		keyword, created, err := upsertKeyword(tx, thesaurus.ID, rec)
		if err != nil {
			return fail(err, "upsert-keyword")
		}
		if created {
			stats.KeywordsCreated++
		} else {
			stats.KeywordsUpdated++
		}

		for _, label := range rec.Labels {
			created, err := upsertLabel(tx, keyword.ID, label)
			if err != nil {
				return fail(err, "upsert-label")
			}
			if created {
				stats.LabelsCreated++
			} else {
				stats.LabelsUpdated++
			}
		}
		processed++
	}

	if err := tx.Commit().Error; err != nil {
		return fail(err, "commit")
	}

	GetLogger().Info("Thesaurus import committed",
		"identifier", meta.Identifier,
		"concepts", processed,
		"keywords_created", stats.KeywordsCreated,
		"labels_created", stats.LabelsCreated)

	return stats, nil
}

// upsertThesaurus reads the thesaurus by identifier and inserts or
// updates it in place.
func upsertThesaurus(tx *gorm.DB, meta ThesaurusMeta) (*Thesaurus, error) {
	var thesaurus Thesaurus
	err := tx.Where("identifier = ?", meta.Identifier).First(&thesaurus).Error
	switch {
	case err == nil:
		thesaurus.Title = meta.Title
		thesaurus.Description = meta.Description
		thesaurus.About = meta.About
		thesaurus.Date = meta.Date
		thesaurus.SourceFile = meta.SourceFile
		if err := tx.Save(&thesaurus).Error; err != nil {
			return nil, err
		}
		return &thesaurus, nil
	case errorsIs(err, gorm.ErrRecordNotFound):
		thesaurus = Thesaurus{
			Identifier:  meta.Identifier,
			Title:       meta.Title,
			Description: meta.Description,
			About:       meta.About,
			Date:        meta.Date,
			SourceFile:  meta.SourceFile,
		}
		if err := tx.Create(&thesaurus).Error; err != nil {
			return nil, err
		}
		return &thesaurus, nil
	default:
		return nil, err
	}
}

func upsertKeyword(tx *gorm.DB, thesaurusID uint, rec *skos.ConceptRecord) (*ThesaurusKeyword, bool, error) {
	var keyword ThesaurusKeyword
	err := tx.Where("thesaurus_id = ? AND about = ?", thesaurusID, rec.About).First(&keyword).Error
	switch {
	case err == nil:
		keyword.Code = rec.Code
		keyword.AltLabel = rec.AltLabel
		if err := tx.Save(&keyword).Error; err != nil {
			return nil, false, err
		}
		return &keyword, false, nil
	case errorsIs(err, gorm.ErrRecordNotFound):
		keyword = ThesaurusKeyword{
			ThesaurusID: thesaurusID,
			About:       rec.About,
			Code:        rec.Code,
			AltLabel:    rec.AltLabel,
		}
		if err := tx.Create(&keyword).Error; err != nil {
			return nil, false, err
		}
		return &keyword, true, nil
	default:
		return nil, false, err
	}
}

func upsertLabel(tx *gorm.DB, keywordID uint, label skos.Label) (bool, error) {
	var row ThesaurusKeywordLabel
	err := tx.Where("keyword_id = ? AND lang = ? AND kind = ?", keywordID, label.Lang, string(label.Kind)).First(&row).Error
	switch {
	case err == nil:
		row.Label = label.Text
		if err := tx.Save(&row).Error; err != nil {
			return false, err
		}
		return false, nil
	case errorsIs(err, gorm.ErrRecordNotFound):
		row = ThesaurusKeywordLabel{
			KeywordID: keywordID,
			Lang:      label.Lang,
			Kind:      string(label.Kind),
			Label:     label.Text,
		}
		if err := tx.Create(&row).Error; err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}
