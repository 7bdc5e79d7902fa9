// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt builds the proposal request sent to the language model.
// The template asks for the sections listed in types.ProposalSections; the
// renderer relies on the same prefixes to find headings.
package prompt

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

// proposalTmpl is the Romanian proposal template. The client request is
// quoted inline; the numbered sections come from types.ProposalSections.
var proposalTmpl = template.Must(template.New("proposal").Parse(`
Ești un manager de proiect și dezvoltator IT expert. Sarcina ta este să analizezi solicitarea clientului, care este "{{.Request}}" și să generezi o propunere, neaparat in limba romanaa, de proiect detaliată, demonstrând cunoștințe avansate atât în gestionarea proiectelor, cât și în dezvoltarea software, propunerea neaparat sa includa urmatoareale {{len .Sections}} sectiuni:
{{range .Sections}}
{{.Prefix}} {{.Title}}:
{{.Body}}
{{end}}
De asemenea, asigurați-vă că următoarele cerințe sunt luate în considerare:
{{- range .Requirements}}
- {{.}}
{{- end}}
`))

// requirements are the cross-cutting items every proposal must address.
var requirements = []string{
	"Secțiunea financiară: cum restaurantele solicită bani de la administratorii aplicației.",
	"Modalități de plată pentru rideri.",
	"Generarea automată a facturilor și posibilitatea clientului de a descărca factura generată.",
}

type promptData struct {
	Request      string
	Sections     []types.ProposalSection
	Requirements []string
}

// Build interpolates the client request text into the proposal template.
func Build(request string) (string, error) {
	var buf bytes.Buffer
	err := proposalTmpl.Execute(&buf, promptData{
		Request:      request,
		Sections:     types.ProposalSections,
		Requirements: requirements,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
