// model.go this code defines the data model for the thesaurus tables
package datastore

import "time"

// Thesaurus is one imported vocabulary, identified by the operator
// supplied name. Rows are upserted by Identifier and never deleted by
// the importer.
type Thesaurus struct {
	ID          uint   `gorm:"primaryKey"`
	Identifier  string `gorm:"uniqueIndex;size:255;not null"`
	Title       string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	About       string `gorm:"size:255"` // concept scheme URI
	Date        string `gorm:"size:64"`  // dcterms issued/modified date as shipped
	SourceFile  string `gorm:"size:512"` // provenance, path of the imported file
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Keywords []ThesaurusKeyword `gorm:"foreignKey:ThesaurusID;constraint:OnDelete:CASCADE"`
}

// ThesaurusKeyword is one concept, unique per (thesaurus, concept URI).
type ThesaurusKeyword struct {
	ID          uint   `gorm:"primaryKey"`
	ThesaurusID uint   `gorm:"uniqueIndex:idx_tkeyword_thesaurus_about;not null"`
	About       string `gorm:"uniqueIndex:idx_tkeyword_thesaurus_about;size:255;not null"` // concept URI
	Code        string `gorm:"size:64;index"`                                              // final URI path segment when derivable
	AltLabel    string `gorm:"size:255"`                                                   // default-language preferred label fallback

	Labels []ThesaurusKeywordLabel `gorm:"foreignKey:KeywordID;constraint:OnDelete:CASCADE"`
}

// ThesaurusKeywordLabel is one label, unique per (keyword, language,
// kind). Lang "" is the bucket for literals without a language tag.
type ThesaurusKeywordLabel struct {
	ID        uint   `gorm:"primaryKey"`
	KeywordID uint   `gorm:"uniqueIndex:idx_tklabel_keyword_lang_kind;not null"`
	Lang      string `gorm:"uniqueIndex:idx_tklabel_keyword_lang_kind;size:16"`
	Kind      string `gorm:"uniqueIndex:idx_tklabel_keyword_lang_kind;size:16;check:chk_tklabel_kind,kind IN ('preferred','alternate')"`
	Label     string `gorm:"size:512;not null"`
}
