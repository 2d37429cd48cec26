// Package regulation lists the Indonesian regulations the compliance agent
// is grounded on. Both landing pages render this catalogue.
package regulation

// Regulation is one entry of the knowledge base.
type Regulation struct {
	ID          int
	Title       string
	Description string
}

var knowledgeBase = []Regulation{
	{ID: 1, Title: "UU ITE & Perubahannya", Description: "UU No 11/2008, 19/2016, 1/2024"},
	{ID: 2, Title: "Pelindungan Data Pribadi", Description: "UU No 27/2022 (PDP)"},
	{ID: 3, Title: "Hak Cipta Software", Description: "UU No 28/2014"},
	{ID: 4, Title: "Penyelenggaraan Sistem Elektronik", Description: "PP No 71/2019 (PSTE)"},
	{ID: 5, Title: "Perdagangan Sistem Elektronik", Description: "PP No 80/2019 (PMSE)"},
	{ID: 6, Title: "PSE Lingkup Privat", Description: "Permenkominfo No 5/2020"},
}

// KnowledgeBase returns the catalogue in display order.
func KnowledgeBase() []Regulation {
	out := make([]Regulation, len(knowledgeBase))
	copy(out, knowledgeBase)
	return out
}

// Marketing copy shared by the terminal and web landing pages.
const (
	Brand        = "LegalFlow"
	Badge        = "AI Software Compliance Agent"
	Headline     = "Ensure Your Software is Legally Compliant in Indonesia."
	Lead         = "An autonomous agent specialized in UU ITE, PDP, and PSE regulations. Validate your product features against Indonesian law before release."
	CallToAction = "Start Compliance Check"
	KnowledgeHdr = "Active Regulatory Knowledge"
	KnowledgeSub = "Verified sources scanned by the agent."
	AgentTitle   = "Compliance Agent"
	EmptyState   = "Ready to analyze your software compliance."
	AnswerLabel  = "AI Compliance Analysis"
	Disclaimer   = "Encrypted Session · Not Legal Advice"
	Placeholder  = "Describe your software feature (e.g., 'I am building a fintech app with facial recognition...')"
)
