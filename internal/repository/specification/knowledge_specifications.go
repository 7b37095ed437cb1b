package specification

import (
	"regexp"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActiveOnly keeps documents that are eligible for retrieval
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type BySourceTypes struct {
	SourceTypes []string
}

func (s BySourceTypes) Apply(db *gorm.DB) *gorm.DB {
	if len(s.SourceTypes) == 0 {
		return db
	}
	return db.Where("LOWER(source_type) IN ?", lowerAll(s.SourceTypes))
}

type BySensitivity struct {
	Sensitivity string
}

func (s BySensitivity) Apply(db *gorm.DB) *gorm.DB {
	if s.Sensitivity == "" {
		return db
	}
	return db.Where("LOWER(sensitivity) = ?", strings.ToLower(s.Sensitivity))
}

type ByCategories struct {
	Categories []string
}

func (s ByCategories) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Categories) == 0 {
		return db
	}
	return db.Where("LOWER(category) IN ?", lowerAll(s.Categories))
}

// ByCompany scopes to one tenant. Documents without a company are shared by all tenants.
type ByCompany struct {
	CompanyID string
}

func (s ByCompany) Apply(db *gorm.DB) *gorm.DB {
	if s.CompanyID == "" {
		return db
	}
	return db.Where("company_id = ? OR company_id = ''", s.CompanyID)
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

const documentVector = "to_tsvector('simple', title || ' ' || content)"

// FullTextQuery matches documents containing any query word as a prefix, best ranked first.
// Backed by the GIN index created in cmd/migrate.
type FullTextQuery struct {
	Query string
}

func (s FullTextQuery) Apply(db *gorm.DB) *gorm.DB {
	tsquery := ToPrefixTSQuery(s.Query)
	if tsquery == "" {
		return db.Where("1 = 0")
	}
	return db.Where(documentVector+" @@ to_tsquery('simple', ?)", tsquery).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "ts_rank(" + documentVector + ", to_tsquery('simple', ?)) DESC",
			Vars:               []interface{}{tsquery},
			WithoutParentheses: true,
		}})
}

// ToPrefixTSQuery turns free text into "w1:* | w2:*", dropping punctuation
func ToPrefixTSQuery(query string) string {
	words := strings.Fields(nonWord.ReplaceAllString(strings.ToLower(query), " "))
	terms := make([]string, 0, len(words))
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		terms = append(terms, w+":*")
	}
	return strings.Join(terms, " | ")
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}
