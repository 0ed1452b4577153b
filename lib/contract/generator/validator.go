package generator

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MinWordCount and MinArticleCount are the structural floor for an
	// acceptable collaboration contract.
	MinWordCount    = 1000
	MinArticleCount = 10
)

var articleMarkerRe = regexp.MustCompile(`(?i)\bart\.\s*\d+`)

// legalMarkers are the mandatory content checks, each satisfied when any of
// its phrases appears in the text (case-insensitive).
var legalMarkers = []struct {
	name    string
	phrases []string
}{
	{"vat_number", []string{"p.iva", "partita iva"}},
	{"fiscal_code", []string{"codice fiscale"}},
	{"payment_amount", []string{"compenso", "importo totale"}},
	{"duration", []string{"durata"}},
	{"withdrawal_clause", []string{"recesso"}},
	{"data_protection_clause", []string{"protezione dei dati", "gdpr", "regolamento (ue) 2016/679"}},
	{"intellectual_property_clause", []string{"proprietà intellettuale"}},
	{"signature_section", []string{"firma"}},
}

// ValidationReport holds the outcome of the structural/content validation.
// WordCount and ArticleCount are the authoritative document metadata: they
// are persisted as-is so stored metadata can never drift from what was
// validated.
type ValidationReport struct {
	WordCount      int
	ArticleCount   int
	MissingMarkers []string
	Failures       []string
}

func (r ValidationReport) OK() bool {
	return len(r.Failures) == 0
}

// Validate runs every mandatory check over the generated text and reports
// each failed marker and threshold by name.
func Validate(text string) ValidationReport {
	report := ValidationReport{
		WordCount:    len(strings.Fields(text)),
		ArticleCount: len(articleMarkerRe.FindAllString(text, -1)),
	}
	lower := strings.ToLower(text)
	for _, marker := range legalMarkers {
		found := false
		for _, phrase := range marker.phrases {
			if strings.Contains(lower, phrase) {
				found = true
				break
			}
		}
		if !found {
			report.MissingMarkers = append(report.MissingMarkers, marker.name)
			report.Failures = append(report.Failures, fmt.Sprintf("missing marker: %s", marker.name))
		}
	}
	if report.ArticleCount == 0 {
		report.MissingMarkers = append(report.MissingMarkers, "numbered_article")
		report.Failures = append(report.Failures, "missing marker: numbered_article")
	}
	if report.ArticleCount < MinArticleCount {
		report.Failures = append(report.Failures,
			fmt.Sprintf("article count %d below minimum %d", report.ArticleCount, MinArticleCount))
	}
	if report.WordCount < MinWordCount {
		report.Failures = append(report.Failures,
			fmt.Sprintf("word count %d below minimum %d", report.WordCount, MinWordCount))
	}
	return report
}
