package workflow

// Wire contracts for the workflow-automation webhook layer. Field names match
// what the automation flows produce and consume; they are part of the external
// contract, not of this codebase's taste.

// ResultKind is the closed set of outcomes an optimize turn can carry.
type ResultKind string

const (
	// KindReply is a conversational answer with no document change.
	KindReply ResultKind = "chat_message"
	// KindDocumentUpdate carries regenerated text and a rendered draft.
	KindDocumentUpdate ResultKind = "pdf_update"
)

func (k ResultKind) Valid() bool {
	return k == KindReply || k == KindDocumentUpdate
}

// ParseResult is the response of the parse-document webhook: the extracted
// plain text and the session identifier the workflow layer minted for this
// engagement.
type ParseResult struct {
	Text        string `json:"text"`
	SessionID   string `json:"sessionId"`
	OriginalURL string `json:"originalUrl"`
}

type OptimizeRequest struct {
	SessionID   string `json:"sessionId"`
	CurrentText string `json:"currentText"`
	Instruction string `json:"message"`
}

type OptimizeResult struct {
	Kind          ResultKind `json:"type"`
	Message       string     `json:"message"`
	OptimizedText string     `json:"optimizedText"`
	PDFBase64     string     `json:"pdfBase64"`
	DraftURL      string     `json:"draftUrl"`
	Suggestions   []string   `json:"suggestions"`
}

type FinalizeResult struct {
	DownloadURL string `json:"downloadUrl"`
	SessionID   string `json:"sessionId"`
}

type ContactPayload struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type ConsultationPayload struct {
	UserID  uint   `json:"userId"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// BusinessReport is the structured analysis of a single business profile.
type BusinessReport struct {
	Name              string   `json:"businessName"`
	Score             float64  `json:"score"`
	ReviewCount       int      `json:"reviewCount"`
	Strengths         []string `json:"strengths"`
	Weaknesses        []string `json:"weaknesses"`
	Summary           string   `json:"summary"`
	Recommendation    string   `json:"recommendation"`
	ChartURLMonthly   string   `json:"chartUrlMonthly"`
	ChartURLQuarterly string   `json:"chartUrlQuarterly"`
	ChartURLSentiment string   `json:"chartUrlSentiment"`
}

// ComparisonReport is the structured comparison of two business profiles.
type ComparisonReport struct {
	BusinessA         string   `json:"businessA"`
	BusinessAScore    float64  `json:"businessA_Score"`
	BusinessACount    int      `json:"businessA_Count"`
	StrengthsA        []string `json:"strengthsA"`
	WeaknessesA       []string `json:"weaknessesA"`
	BusinessB         string   `json:"businessB"`
	BusinessBScore    float64  `json:"businessB_Score"`
	BusinessBCount    int      `json:"businessB_Count"`
	StrengthsB        []string `json:"strengthsB"`
	WeaknessesB       []string `json:"weaknessesB"`
	Winner            string   `json:"winner"`
	Summary           string   `json:"summary"`
	Recommendation    string   `json:"recommendation"`
	ChartURLMonthly   string   `json:"chartUrlMonthly"`
	ChartURLQuarterly string   `json:"chartUrlQuarterly"`
	ChartURLSentiment string   `json:"chartUrlSentiment"`
}

// CVDocument is the structured form the CV creator submits for rendering.
type CVDocument struct {
	FullName    string `json:"fullName"`
	JobTitle    string `json:"jobTitle"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	LinkedIn    string `json:"linkedin"`
	PhotoBase64 string `json:"photoBase64"`
	Summary     string `json:"summary"`

	Experience     []ExperienceEntry    `json:"experience"`
	Education      []EducationEntry     `json:"education"`
	Skills         []SkillEntry         `json:"skills"`
	Languages      []LanguageEntry      `json:"languages"`
	Projects       []ProjectEntry       `json:"projects"`
	Certifications []CertificationEntry `json:"certifications"`
	Awards         []AwardEntry         `json:"awards"`
	Hobbies        string               `json:"hobbies"`
	References     string               `json:"references"`
	CustomSections []CustomSection      `json:"customSections"`
}

type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	GradDate    string `json:"gradDate"`
	GPA         string `json:"gpa"`
}

type SkillEntry struct {
	Name string `json:"name"`
}

type LanguageEntry struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

type ProjectEntry struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

type CertificationEntry struct {
	Name string `json:"name"`
	Org  string `json:"org"`
	Date string `json:"date"`
	Link string `json:"link"`
}

type AwardEntry struct {
	Name string `json:"name"`
	Org  string `json:"org"`
	Year string `json:"year"`
}

type CustomSection struct {
	ID    string              `json:"id"`
	Title string              `json:"title"`
	Items []CustomSectionItem `json:"items"`
}

type CustomSectionItem struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Fields      []CustomField `json:"fields"`
}

type CustomField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
