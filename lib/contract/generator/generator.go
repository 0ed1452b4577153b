package generator

import (
	"fmt"
	"strings"

	"bim-collab-backend/config"
	yagptclient "bim-collab-backend/lib/gpt/yagpt-client"
	"bim-collab-backend/models"
	dbmodels "bim-collab-backend/models/db"

	log "github.com/sirupsen/logrus"
)

const (
	ModelName     = "yandexgpt-lite"
	PromptVersion = "v1.2"
)

type Result struct {
	Text   string
	Report ValidationReport
}

type Provider interface {
	// Generate produces contract prose from a complete draft and validates
	// it before it is handed back for persistence.
	Generate(data dbmodels.ContractData) (Result, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		client: yagptclient.NewClient(
			config.Conf.YandexGPT.IAMToken,
			config.Conf.YandexGPT.CatalogID,
			yagptclient.CompletionOptions{
				Temperature: 0.2,
				MaxTokens:   8000,
			}),
	}
}

type impl struct {
	client yagptclient.Provider
}

func (i impl) Generate(data dbmodels.ContractData) (Result, error) {
	text, err := i.client.GenerateByPromtAndText(systemPrompt, buildUserPrompt(data))
	if err != nil {
		log.WithError(err).Error("contract text generation failed")
		return Result{}, err
	}
	report := Validate(text)
	if !report.OK() {
		log.WithField("failures", report.Failures).Warn("generated contract failed content validation")
		return Result{}, models.NewIncompleteDocumentError(report.Failures)
	}
	return Result{Text: text, Report: report}, nil
}

// systemPrompt fixes the structural template: numbered articles and a
// closing signature block, in formal Italian legal register.
const systemPrompt = `Sei un consulente legale specializzato in contratti di collaborazione professionale nel settore BIM (Building Information Modeling).
Redigi un contratto di collaborazione completo in italiano, strutturato in almeno 12 articoli numerati ("Art. 1", "Art. 2", ...).
Il contratto deve includere: identificazione delle parti con Partita IVA e Codice Fiscale, oggetto e deliverable, durata, compenso e termini di pagamento, clausola di recesso, clausola sulla protezione dei dati personali (GDPR), clausola sulla proprietà intellettuale, foro competente, e una sezione finale per data e firma di entrambe le parti.
Non usare segnaposto: utilizza esclusivamente i dati forniti.`

func buildUserPrompt(data dbmodels.ContractData) string {
	var b strings.Builder
	b.WriteString("Genera il contratto di collaborazione con questi dati:\n\n")
	b.WriteString("PROFESSIONISTA:\n")
	fmt.Fprintf(&b, "- Nome: %s\n", data.Professional.FullName)
	fmt.Fprintf(&b, "- Partita IVA: %s\n", data.Professional.VATNumber)
	fmt.Fprintf(&b, "- Codice Fiscale: %s\n", data.Professional.FiscalCode)
	fmt.Fprintf(&b, "- Domicilio fiscale: %s\n\n", data.Professional.FiscalAddress)
	b.WriteString("COMMITTENTE:\n")
	fmt.Fprintf(&b, "- Ragione sociale: %s\n", data.Company.Name)
	fmt.Fprintf(&b, "- Partita IVA: %s\n", data.Company.VATNumber)
	fmt.Fprintf(&b, "- Legale rappresentante: %s\n", data.Company.LegalRepresentative)
	fmt.Fprintf(&b, "- Sede legale: %s\n\n", data.Company.LegalAddress)
	b.WriteString("PROGETTO:\n")
	fmt.Fprintf(&b, "- Titolo: %s\n", data.Project.Title)
	if data.Project.StartDate != nil {
		fmt.Fprintf(&b, "- Data inizio: %s\n", data.Project.StartDate.Format("02/01/2006"))
	}
	if data.Project.EndDate != nil {
		fmt.Fprintf(&b, "- Data fine: %s\n", data.Project.EndDate.Format("02/01/2006"))
	}
	fmt.Fprintf(&b, "- Deliverable: %s\n\n", strings.Join(data.Project.Deliverables, "; "))
	b.WriteString("PAGAMENTO:\n")
	fmt.Fprintf(&b, "- Importo totale: %.2f %s\n", data.Payment.TotalAmount, data.Payment.Currency)
	if data.Payment.Terms != "" {
		fmt.Fprintf(&b, "- Termini: %s\n", data.Payment.Terms)
	}
	return b.String()
}
