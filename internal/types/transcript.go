// Package types provides shared types used across multiple packages.
// This package has no dependencies on other registrar packages to avoid import cycles.
package types

// Scalar fields are pointers so that "absent on this page" and "present but
// empty" stay distinguishable. The consolidation engine's first-non-null-wins
// policy depends on that distinction.

// StudentInfo holds identity fields extracted from a transcript page.
type StudentInfo struct {
	Name              *string `json:"student_name,omitempty"`
	BirthDate         *string `json:"birth_date,omitempty"`
	StudentID         *string `json:"student_id,omitempty"`
	GradeLevel        *string `json:"grade,omitempty"`
	Gender            *string `json:"gender,omitempty"`
	MailingAddress    *string `json:"mailing_address,omitempty"`
	EntryDate         *string `json:"entry_date,omitempty"`
	Phone             *string `json:"student_phone,omitempty"`
	GraduationDate    *string `json:"graduation_date,omitempty"`
	Email             *string `json:"email,omitempty"`
	CitizenshipStatus *string `json:"citizenship_status,omitempty"`
	PreviousName      *string `json:"previous_name,omitempty"`
}

// InstitutionInfo holds school and registrar metadata.
type InstitutionInfo struct {
	Name               *string `json:"institution_name,omitempty"`
	Address            *string `json:"address,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	TranscriptType     *string `json:"transcript_type,omitempty"`
	ZipCode            *string `json:"zip_code,omitempty"`
	State              *string `json:"state,omitempty"`
	City               *string `json:"city,omitempty"`
	InstitutionCode    *string `json:"institution_code,omitempty"`
	RegistrarSignature *string `json:"registrar_signature,omitempty"`
	SealPresent        *bool   `json:"seal_present,omitempty"`
	IssueDate          *string `json:"transcript_issue_date,omitempty"`
	RequestDate        *string `json:"transcript_request_date,omitempty"`
}

// GPASummary holds cumulative GPA and class rank figures.
type GPASummary struct {
	UnweightedGPA       *float64 `json:"unweighted_gpa,omitempty"`
	WeightedGPA         *float64 `json:"weighted_gpa,omitempty"`
	UnweightedClassRank *string  `json:"unweighted_classrank,omitempty"`
	WeightedClassRank   *string  `json:"weighted_classrank,omitempty"`
	GPAScale            *string  `json:"gpa_scale,omitempty"`
	QualityPoints       *float64 `json:"quality_points,omitempty"`
}

// DegreeInfo holds degree and program information.
type DegreeInfo struct {
	DegreeAwarded    *string  `json:"degree_awarded,omitempty"`
	DegreeDate       *string  `json:"degree_date,omitempty"`
	Majors           []string `json:"major,omitempty"`
	Minors           []string `json:"minor,omitempty"`
	Concentrations   []string `json:"concentration,omitempty"`
	AcademicProgram  *string  `json:"academic_program,omitempty"`
	GraduationHonors *string  `json:"graduation_honors,omitempty"`
}

// Honor is one academic recognition entry.
type Honor struct {
	Name           string `json:"honor_name"`
	AwardDate      string `json:"award_date,omitempty"`
	Description    string `json:"description,omitempty"`
	GPARequirement string `json:"gpa_requirement,omitempty"`
}

// TransferCredits holds credit accepted from other institutions.
type TransferCredits struct {
	Institutions    []string `json:"transfer_institutions,omitempty"`
	CreditsAccepted *float64 `json:"transfer_credits_accepted,omitempty"`
	GPA             *float64 `json:"transfer_gpa,omitempty"`
}

// TranscriptTotals holds the declared cumulative totals printed on the
// transcript. These are what the consistency validator checks computed
// values against.
type TranscriptTotals struct {
	InstitutionEarnedHours *float64 `json:"total_institution_earned_hours,omitempty"`
	TransferEarnedHours    *float64 `json:"total_transfer_earned_hours,omitempty"`
	OverallEarnedHours     *float64 `json:"overall_earned_hours,omitempty"`
	OverallGPA             *float64 `json:"overall_gpa,omitempty"`
	AttemptedHours         *float64 `json:"total_attempted_hours,omitempty"`
	AcademicStanding       *string  `json:"academic_standing,omitempty"`
	ProbationStatus        *string  `json:"probation_status,omitempty"`
	HonorsEligibility      *bool    `json:"honors_eligibility,omitempty"`
}

// Course is one academic record row. CourseID and Term together identify an
// academic event; GradePoints, when present, is the course's grade value on
// the institution's point scale (typically 4.0) and takes precedence over
// mapping the letter grade.
type Course struct {
	CourseID         string   `json:"course_id"`
	Term             string   `json:"year_term"`
	Title            string   `json:"course_name,omitempty"`
	Credits          *float64 `json:"credits_earned,omitempty"`
	Grade            *string  `json:"grades,omitempty"`
	GradePoints      *float64 `json:"grade_points,omitempty"`
	CreditsAttempted *float64 `json:"credits_attempted,omitempty"`
	Level            string   `json:"course_level,omitempty"`
	Department       string   `json:"department,omitempty"`
	Instructor       string   `json:"instructor,omitempty"`
	RepeatIndicator  string   `json:"repeat_indicator,omitempty"`
}

// Usage tracks token consumption and approximate cost for one model call.
type Usage struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	CostUSD          float64 `json:"cost_usd"`
}

// PageExtraction is the raw extraction result for a single transcript page.
// Any section may be nil when the page carries no data for it.
type PageExtraction struct {
	PageNumber  int               `json:"page_number"`
	Student     *StudentInfo      `json:"student_information,omitempty"`
	Institution *InstitutionInfo  `json:"institution_information,omitempty"`
	GPASummary  *GPASummary       `json:"gpa_summary_info,omitempty"`
	Degree      *DegreeInfo       `json:"degree_information,omitempty"`
	Honors      []Honor           `json:"honors_and_awards,omitempty"`
	Transfer    *TransferCredits  `json:"transfer_credits,omitempty"`
	Totals      *TranscriptTotals `json:"transcript_totals_info,omitempty"`
	Courses     []Course          `json:"academic_records_info,omitempty"`

	// Extraction metadata, passed through for logging only.
	Model string `json:"model,omitempty"`
	Usage *Usage `json:"usage,omitempty"`
}

// FieldConflict records a losing value observed during field reconciliation.
type FieldConflict struct {
	Field  string `json:"field"`
	Winner string `json:"winner"`
	Loser  string `json:"loser"`
	Page   int    `json:"page"`
}

// CheckStatus is the outcome of one consistency check.
type CheckStatus string

const (
	// CheckOK means computed and declared values agree within tolerance.
	CheckOK CheckStatus = "ok"
	// CheckMismatch means both values were present but disagree.
	CheckMismatch CheckStatus = "mismatch"
	// CheckUnverifiable means a value needed for the check was absent.
	CheckUnverifiable CheckStatus = "unverifiable"
)

// CreditCheck compares summed course credits against the declared total.
type CreditCheck struct {
	Status   CheckStatus `json:"status"`
	Computed float64     `json:"computed"`
	Declared *float64    `json:"declared,omitempty"`
}

// GPACheck compares a recomputed weighted GPA against the declared one.
type GPACheck struct {
	Status   CheckStatus `json:"status"`
	Computed *float64    `json:"computed,omitempty"`
	Declared *float64    `json:"declared,omitempty"`
}

// Verification is the advisory quality block attached to a consolidated
// record. It never causes consolidation to fail.
type Verification struct {
	CreditCheck        CreditCheck    `json:"credit_check"`
	GPACheck           GPACheck       `json:"gpa_check"`
	CompletenessScore  float64        `json:"completeness_score"`
	FieldsPresent      int            `json:"fields_present"`
	FieldsExpected     int            `json:"fields_expected"`
	TotalCourses       int            `json:"total_courses"`
	UniqueTerms        int            `json:"unique_terms"`
	CourseDistribution map[string]int `json:"course_distribution,omitempty"`
	DuplicatesRemoved  int            `json:"duplicates_removed"`
	RetakesKept        int            `json:"retakes_kept"`
}

// TranscriptRecord is the consolidated output for one transcript. It is
// constructed once by the consolidator and not mutated afterwards; it holds
// no references back to the source page extractions.
type TranscriptRecord struct {
	Student     *StudentInfo      `json:"student_information,omitempty"`
	Institution *InstitutionInfo  `json:"institution_information,omitempty"`
	GPASummary  *GPASummary       `json:"gpa_summary_info,omitempty"`
	Degree      *DegreeInfo       `json:"degree_information,omitempty"`
	Honors      []Honor           `json:"honors_and_awards,omitempty"`
	Transfer    *TransferCredits  `json:"transfer_credits,omitempty"`
	Totals      *TranscriptTotals `json:"transcript_totals_info,omitempty"`
	Courses     []Course          `json:"academic_records_info"`

	Conflicts    []FieldConflict `json:"field_conflicts,omitempty"`
	Verification Verification    `json:"verification"`
	PageCount    int             `json:"page_count"`
}
