package offer

import (
	"strconv"
	"text/template"
)

const letterTemplate = `Dear {{.PatientName}} (Patient ID: {{.PatientID}}),

After a thorough review of your recent visits and medical history, we have identified a potential health concern related to {{.Risk}}. {{.Appreciation}} With an engagement score of {{score .Score}}, we want to ensure you receive the best possible care.

In light of this, we are pleased to offer you {{.Description}} along with a **{{.Percent}}% discount** on any further treatments or diagnostic tests related to this condition. Your well-being is our top priority, and this offer is designed to support your health journey and provide you with the care you need at a reduced cost.

To take advantage of this offer, please contact our care team at your earliest convenience, and we will be happy to assist you with the next steps. We look forward to continuing to support your health and wellness journey.

Warm regards,
{{.Signature}}`

// letter is parsed once; the template is constant.
var letter = template.Must(template.New("offer").Funcs(template.FuncMap{ //nolint:gochecknoglobals // parsed once at init
	"score": formatScore,
}).Parse(letterTemplate))

// letterData holds the named placeholders of letterTemplate.
type letterData struct {
	PatientName  string
	PatientID    int
	Risk         string
	Appreciation string
	Score        float64
	Description  string
	Percent      int
	Signature    string
}

// formatScore prints the shortest representation of a score: 100, 95.5, -12.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
