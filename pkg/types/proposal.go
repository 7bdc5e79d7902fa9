// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Format identifies the kind of client request document.
type Format string

const (
	// FormatDocx is a structured word-processing package (.docx).
	FormatDocx Format = "docx"
	// FormatPDF is a portable document (.pdf).
	FormatPDF Format = "pdf"
	// FormatText is a UTF-8 plain-text file (.txt).
	FormatText Format = "txt"
)

// RawDocument is a client request file and its detected format.
type RawDocument struct {
	Path   string `json:"path" yaml:"path"`
	Format Format `json:"format" yaml:"format"`
}

// ProposalSection is one of the numbered sections the prompt asks the model
// to produce. Prefix is the literal numeral the renderer matches at the
// start of a line (e.g. "II.").
type ProposalSection struct {
	Prefix string
	Title  string
	Body   string
}

// ProposalSections lists the five sections requested from the model, in order.
var ProposalSections = []ProposalSection{
	{
		Prefix: "I.",
		Title:  "Scopul documentului",
		Body: `Oferiți o prezentare generală detaliată a proiectului și definiți scopul documentului. Includeți:
- Introducerea proiectului
- Obiectivele principale
- Etapele de planificare (identificarea cerințelor, analiza riscurilor, planificarea resurselor)
- Diagramele logice și ER
- Considerațiile inițiale de design (UI/UX, arhitectură software)
- Importanța acestor etape pentru succesul proiectului`,
	},
	{
		Prefix: "II.",
		Title:  "Propunere structură",
		Body: `Conturați structura propusă și sarcinile detaliate necesare pentru dezvoltarea aplicației. Acest lucru ar trebui să acopere toate aspectele dezvoltării:
- Backend: Limbaje de programare, framework-uri, servere, arhitectura de microservicii
- Frontend: Framework-uri și librării (React, Angular), structura componentelor, responsive design
- Baza de date: Tipuri de baze de date (SQL, NoSQL), structura tabelelor, relații, diagrame ER
- Integrarea API-urilor: API-uri externe utilizate, metode de autentificare, fluxuri de date, exemple de endpoint-uri
- Alte caracteristici: Sistem de notificări, autentificare și autorizare, optimizări de performanță`,
	},
	{
		Prefix: "III.",
		Title:  "Detalii Tehnice",
		Body: `A. Backend:
- Descrierea tehnologiilor utilizate (Node.js, Python, Java)
- Arhitectura propusă (microservicii, monolit)
- Framework-uri și librării utilizate (Express.js, Django, Spring Boot)
- Gestionarea datelor și comunicarea între servicii (RabbitMQ, Kafka)
B. Frontend:
- Descrierea tehnologiilor utilizate (React, Angular, Vue.js)
- Arhitectura propusă (SPA, PWA)
- Framework-uri și librării utilizate (Redux, Vuex)
- Tehnici de optimizare a performanței (lazy loading, code splitting)
C. Baza de date:
- Modelul de date detaliat
- Tipul de baze de date (PostgreSQL, MongoDB)
- Diagrame ER detaliate
- Backup și strategii de restaurare
D. Integrarea API-urilor:
- API-uri externe utilizate (Google Maps API, Stripe)
- Metode de autentificare (OAuth2, JWT)
- Fluxuri de date detaliate și exemple de endpoint-uri
- Gestionarea rate limiting și caching`,
	},
	{
		Prefix: "IV.",
		Title:  "Sugestii suplimentare",
		Body: `Oferiți sugestii sau module suplimentare care ar putea îmbunătăți proiectul:
- Module pentru raportare și analiză
- Funcționalități avansate de căutare
- Integrarea cu alte sisteme (CRM, ERP)
- Îmbunătățiri ale securității (2FA, audit logs)
- Module pentru suport multi-limbă și localizare`,
	},
	{
		Prefix: "V.",
		Title:  "Pret și timp de implementare",
		Body: `Estimați costurile și timpul necesar pentru implementare:
- Defalcare a costurilor pe etape de dezvoltare
- Timp estimat de livrare pentru fiecare etapă
- Metodologia de calcul a estimărilor (complexitatea proiectului, resurse necesare)
- Riscuri potențiale și planuri de atenuare`,
	},
}

// boldSectionCount is how many leading sections render as bold headings.
// The pricing section ("V.") has never been bolded; kept that way until
// someone confirms whether that was intended.
const boldSectionCount = 4

// HeadingPrefixes returns the section prefixes the renderer bolds:
// "I.", "II.", "III." and "IV.".
func HeadingPrefixes() []string {
	prefixes := make([]string, 0, boldSectionCount)
	for _, s := range ProposalSections[:boldSectionCount] {
		prefixes = append(prefixes, s.Prefix)
	}
	return prefixes
}

// RenderEntry is one line of generated text mapped to a paragraph style.
type RenderEntry struct {
	// Section is the zero-based index of the blank-line delimited block
	// the line came from.
	Section int `json:"section" yaml:"section"`

	// Text is the trimmed line.
	Text string `json:"text" yaml:"text"`

	// Heading marks lines that start with one of HeadingPrefixes.
	Heading bool `json:"heading" yaml:"heading"`
}

// RenderPlan is the ordered sequence of paragraphs written to the PDF.
type RenderPlan []RenderEntry

// Headings returns the number of heading entries in the plan.
func (p RenderPlan) Headings() int {
	n := 0
	for _, e := range p {
		if e.Heading {
			n++
		}
	}
	return n
}
