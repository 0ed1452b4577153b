package generator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildContractText produces a document with the requested number of numbered
// articles, padded with filler words up to the requested length.
func buildContractText(articles, words int) string {
	var b strings.Builder
	b.WriteString("CONTRATTO DI COLLABORAZIONE PROFESSIONALE\n")
	b.WriteString("Tra Studio Tecnico Rossi, P.IVA 01234567890, ")
	b.WriteString("e Laura Bianchi, Codice Fiscale BNCLRA80A41F205X.\n")
	for n := 1; n <= articles; n++ {
		b.WriteString(fmt.Sprintf("Art. %d - Clausola contrattuale numero %d.\n", n, n))
	}
	b.WriteString("Il compenso pattuito e la durata della collaborazione sono definiti sopra. ")
	b.WriteString("Le parti concordano il diritto di recesso, la protezione dei dati personali ai sensi del GDPR ")
	b.WriteString("e la titolarità della proprietà intellettuale degli elaborati. ")
	b.WriteString("Luogo, data e firma delle parti.\n")
	for len(strings.Fields(b.String())) < words {
		b.WriteString("clausola aggiuntiva di dettaglio operativo e tecnico della collaborazione professionale ")
	}
	return b.String()
}

func TestValidate(t *testing.T) {
	t.Run(`complete document passes`, func(t *testing.T) {
		report := Validate(buildContractText(12, 1200))
		require.True(t, report.OK(), "failures: %v", report.Failures)
		require.Empty(t, report.MissingMarkers)
		require.GreaterOrEqual(t, report.WordCount, MinWordCount)
		require.Equal(t, 12, report.ArticleCount)
	})

	t.Run(`metadata always matches a recount`, func(t *testing.T) {
		for _, text := range []string{
			buildContractText(12, 1200),
			buildContractText(3, 50),
			"",
		} {
			report := Validate(text)
			require.Equal(t, len(strings.Fields(text)), report.WordCount)
			require.Equal(t, len(articleMarkerRe.FindAllString(text, -1)), report.ArticleCount)
		}
	})

	t.Run(`too few articles fails the threshold`, func(t *testing.T) {
		report := Validate(buildContractText(9, 1200))
		require.False(t, report.OK())
		require.Contains(t, report.Failures,
			fmt.Sprintf("article count 9 below minimum %d", MinArticleCount))
		// the marker itself is present, only the count is short
		require.NotContains(t, report.MissingMarkers, "numbered_article")
	})

	t.Run(`short document fails the word floor`, func(t *testing.T) {
		report := Validate(buildContractText(12, 200))
		require.False(t, report.OK())
		found := false
		for _, failure := range report.Failures {
			if strings.HasPrefix(failure, "word count") {
				found = true
			}
		}
		require.True(t, found)
	})

	t.Run(`missing clauses are reported by name`, func(t *testing.T) {
		text := strings.Repeat("testo generico senza clausole obbligatorie ", 300)
		report := Validate(text)
		require.False(t, report.OK())
		require.Contains(t, report.MissingMarkers, "vat_number")
		require.Contains(t, report.MissingMarkers, "fiscal_code")
		require.Contains(t, report.MissingMarkers, "withdrawal_clause")
		require.Contains(t, report.MissingMarkers, "data_protection_clause")
		require.Contains(t, report.MissingMarkers, "intellectual_property_clause")
		require.Contains(t, report.MissingMarkers, "signature_section")
		require.Contains(t, report.MissingMarkers, "numbered_article")
	})

	t.Run(`article marker is case-insensitive and spacing-tolerant`, func(t *testing.T) {
		report := Validate("ART. 1 bla art.2 bla Art.  3")
		require.Equal(t, 3, report.ArticleCount)
	})

	t.Run(`gdpr satisfies the data protection marker`, func(t *testing.T) {
		report := Validate("trattamento conforme al Regolamento (UE) 2016/679")
		require.NotContains(t, report.MissingMarkers, "data_protection_clause")
	})
}
