package consolidate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jackzampolin/registrar/internal/types"
)

// mergedSections holds the reconciled single-value sections of a transcript.
type mergedSections struct {
	Student     *types.StudentInfo
	Institution *types.InstitutionInfo
	GPASummary  *types.GPASummary
	Degree      *types.DegreeInfo
	Transfer    *types.TransferCredits
	Totals      *types.TranscriptTotals
}

// reconciler accumulates the conflict log while sections are merged.
type reconciler struct {
	conflicts []types.FieldConflict
}

// reconcileFields merges scalar sections across pages. For every field the
// first non-null value (in ascending page order) wins; later pages that
// disagree are recorded as conflicts but never overwrite the winner. Fields
// absent on every page stay absent. Pure function of its input.
func reconcileFields(pages []types.PageExtraction) (mergedSections, []types.FieldConflict) {
	r := &reconciler{}
	var m mergedSections

	for _, p := range pages {
		if p.Student != nil {
			if m.Student == nil {
				m.Student = &types.StudentInfo{}
			}
			r.mergeStudent(m.Student, p.Student, p.PageNumber)
		}
		if p.Institution != nil {
			if m.Institution == nil {
				m.Institution = &types.InstitutionInfo{}
			}
			r.mergeInstitution(m.Institution, p.Institution, p.PageNumber)
		}
		if p.GPASummary != nil {
			if m.GPASummary == nil {
				m.GPASummary = &types.GPASummary{}
			}
			r.mergeGPASummary(m.GPASummary, p.GPASummary, p.PageNumber)
		}
		if p.Degree != nil {
			if m.Degree == nil {
				m.Degree = &types.DegreeInfo{}
			}
			r.mergeDegree(m.Degree, p.Degree, p.PageNumber)
		}
		if p.Transfer != nil {
			if m.Transfer == nil {
				m.Transfer = &types.TransferCredits{}
			}
			r.mergeTransfer(m.Transfer, p.Transfer, p.PageNumber)
		}
		if p.Totals != nil {
			if m.Totals == nil {
				m.Totals = &types.TranscriptTotals{}
			}
			r.mergeTotals(m.Totals, p.Totals, p.PageNumber)
		}
	}

	return m, r.conflicts
}

// takeFirst applies the first-non-null-wins policy to one optional field.
// A later page supplying a different non-null value is logged as a conflict
// with that page as the loser.
func takeFirst[T comparable](r *reconciler, dst **T, src *T, field string, page int) {
	if src == nil {
		return
	}
	if *dst == nil {
		v := *src
		*dst = &v
		return
	}
	if **dst != *src {
		r.conflicts = append(r.conflicts, types.FieldConflict{
			Field:  field,
			Winner: fmt.Sprint(**dst),
			Loser:  fmt.Sprint(*src),
			Page:   page,
		})
	}
}

// takeFirstList is takeFirst for list-valued fields (majors, minors, ...).
// The first non-empty list wins; a later differing non-empty list is one
// conflict entry with the lists joined for readability.
func takeFirstList(r *reconciler, dst *[]string, src []string, field string, page int) {
	if len(src) == 0 {
		return
	}
	if len(*dst) == 0 {
		*dst = slices.Clone(src)
		return
	}
	if !slices.Equal(*dst, src) {
		r.conflicts = append(r.conflicts, types.FieldConflict{
			Field:  field,
			Winner: strings.Join(*dst, "; "),
			Loser:  strings.Join(src, "; "),
			Page:   page,
		})
	}
}

func (r *reconciler) mergeStudent(dst, src *types.StudentInfo, page int) {
	takeFirst(r, &dst.Name, src.Name, "student_name", page)
	takeFirst(r, &dst.BirthDate, src.BirthDate, "birth_date", page)
	takeFirst(r, &dst.StudentID, src.StudentID, "student_id", page)
	takeFirst(r, &dst.GradeLevel, src.GradeLevel, "grade", page)
	takeFirst(r, &dst.Gender, src.Gender, "gender", page)
	takeFirst(r, &dst.MailingAddress, src.MailingAddress, "mailing_address", page)
	takeFirst(r, &dst.EntryDate, src.EntryDate, "entry_date", page)
	takeFirst(r, &dst.Phone, src.Phone, "student_phone", page)
	takeFirst(r, &dst.GraduationDate, src.GraduationDate, "graduation_date", page)
	takeFirst(r, &dst.Email, src.Email, "email", page)
	takeFirst(r, &dst.CitizenshipStatus, src.CitizenshipStatus, "citizenship_status", page)
	takeFirst(r, &dst.PreviousName, src.PreviousName, "previous_name", page)
}

func (r *reconciler) mergeInstitution(dst, src *types.InstitutionInfo, page int) {
	takeFirst(r, &dst.Name, src.Name, "institution_name", page)
	takeFirst(r, &dst.Address, src.Address, "address", page)
	takeFirst(r, &dst.Phone, src.Phone, "phone", page)
	takeFirst(r, &dst.TranscriptType, src.TranscriptType, "transcript_type", page)
	takeFirst(r, &dst.ZipCode, src.ZipCode, "zip_code", page)
	takeFirst(r, &dst.State, src.State, "state", page)
	takeFirst(r, &dst.City, src.City, "city", page)
	takeFirst(r, &dst.InstitutionCode, src.InstitutionCode, "institution_code", page)
	takeFirst(r, &dst.RegistrarSignature, src.RegistrarSignature, "registrar_signature", page)
	takeFirst(r, &dst.SealPresent, src.SealPresent, "seal_present", page)
	takeFirst(r, &dst.IssueDate, src.IssueDate, "transcript_issue_date", page)
	takeFirst(r, &dst.RequestDate, src.RequestDate, "transcript_request_date", page)
}

func (r *reconciler) mergeGPASummary(dst, src *types.GPASummary, page int) {
	takeFirst(r, &dst.UnweightedGPA, src.UnweightedGPA, "unweighted_gpa", page)
	takeFirst(r, &dst.WeightedGPA, src.WeightedGPA, "weighted_gpa", page)
	takeFirst(r, &dst.UnweightedClassRank, src.UnweightedClassRank, "unweighted_classrank", page)
	takeFirst(r, &dst.WeightedClassRank, src.WeightedClassRank, "weighted_classrank", page)
	takeFirst(r, &dst.GPAScale, src.GPAScale, "gpa_scale", page)
	takeFirst(r, &dst.QualityPoints, src.QualityPoints, "quality_points", page)
}

func (r *reconciler) mergeDegree(dst, src *types.DegreeInfo, page int) {
	takeFirst(r, &dst.DegreeAwarded, src.DegreeAwarded, "degree_awarded", page)
	takeFirst(r, &dst.DegreeDate, src.DegreeDate, "degree_date", page)
	takeFirstList(r, &dst.Majors, src.Majors, "major", page)
	takeFirstList(r, &dst.Minors, src.Minors, "minor", page)
	takeFirstList(r, &dst.Concentrations, src.Concentrations, "concentration", page)
	takeFirst(r, &dst.AcademicProgram, src.AcademicProgram, "academic_program", page)
	takeFirst(r, &dst.GraduationHonors, src.GraduationHonors, "graduation_honors", page)
}

func (r *reconciler) mergeTransfer(dst, src *types.TransferCredits, page int) {
	takeFirstList(r, &dst.Institutions, src.Institutions, "transfer_institutions", page)
	takeFirst(r, &dst.CreditsAccepted, src.CreditsAccepted, "transfer_credits_accepted", page)
	takeFirst(r, &dst.GPA, src.GPA, "transfer_gpa", page)
}

func (r *reconciler) mergeTotals(dst, src *types.TranscriptTotals, page int) {
	takeFirst(r, &dst.InstitutionEarnedHours, src.InstitutionEarnedHours, "total_institution_earned_hours", page)
	takeFirst(r, &dst.TransferEarnedHours, src.TransferEarnedHours, "total_transfer_earned_hours", page)
	takeFirst(r, &dst.OverallEarnedHours, src.OverallEarnedHours, "overall_earned_hours", page)
	takeFirst(r, &dst.OverallGPA, src.OverallGPA, "overall_gpa", page)
	takeFirst(r, &dst.AttemptedHours, src.AttemptedHours, "total_attempted_hours", page)
	takeFirst(r, &dst.AcademicStanding, src.AcademicStanding, "academic_standing", page)
	takeFirst(r, &dst.ProbationStatus, src.ProbationStatus, "probation_status", page)
	takeFirst(r, &dst.HonorsEligibility, src.HonorsEligibility, "honors_eligibility", page)
}
