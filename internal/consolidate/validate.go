package consolidate

import (
	"math"

	"github.com/jackzampolin/registrar/internal/types"
)

// gradeScale maps letter grades to points on the standard US 4.0 scale.
// Non-letter marks (P, W, I, AU, transfer codes) carry no grade points and
// are excluded from the recomputed GPA, matching how registrars compute
// GPA hours.
var gradeScale = map[string]float64{
	"A+": 4.0, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0, "D-": 0.7,
	"F": 0.0,
}

// gradePointsFor returns the GPA points for a course and whether the course
// bears grade points at all. An explicit GradePoints value on the course
// takes precedence over the letter-grade mapping.
func gradePointsFor(c types.Course) (float64, bool) {
	if c.GradePoints != nil {
		return *c.GradePoints, true
	}
	if c.Grade == nil {
		return 0, false
	}
	points, ok := gradeScale[normalizeToken(*c.Grade)]
	return points, ok
}

// validate computes the advisory verification block for a consolidated
// record. Every check degrades to unverifiable when an input it needs is
// missing; nothing here ever fails the consolidation.
func validate(record *types.TranscriptRecord, opts Options) types.Verification {
	v := types.Verification{
		TotalCourses: len(record.Courses),
	}

	v.CreditCheck = checkCredits(record, opts)
	v.GPACheck = checkGPA(record, opts)
	v.CompletenessScore, v.FieldsPresent, v.FieldsExpected = completeness(record)

	terms := make(map[string]struct{})
	for _, c := range record.Courses {
		terms[normalizeToken(c.Term)] = struct{}{}
	}
	v.UniqueTerms = len(terms)
	v.CourseDistribution = courseDistribution(record.Courses)

	return v
}

// courseDistribution counts retained courses per course level. Courses with
// no level are grouped under "Unknown".
func courseDistribution(courses []types.Course) map[string]int {
	if len(courses) == 0 {
		return nil
	}
	dist := make(map[string]int, len(courses))
	for _, c := range courses {
		level := c.Level
		if level == "" {
			level = "Unknown"
		}
		dist[level]++
	}
	return dist
}

// checkCredits sums numeric credits across retained courses and compares
// against the declared overall earned hours.
func checkCredits(record *types.TranscriptRecord, opts Options) types.CreditCheck {
	check := types.CreditCheck{Status: types.CheckUnverifiable}
	for _, c := range record.Courses {
		if c.Credits != nil {
			check.Computed += *c.Credits
		}
	}

	if record.Totals == nil || record.Totals.OverallEarnedHours == nil {
		return check
	}
	check.Declared = record.Totals.OverallEarnedHours

	if math.Abs(check.Computed-*check.Declared) > opts.CreditTolerance {
		check.Status = types.CheckMismatch
	} else {
		check.Status = types.CheckOK
	}
	return check
}

// checkGPA recomputes a credit-weighted GPA from retained grade-bearing
// courses and compares against the declared cumulative GPA.
func checkGPA(record *types.TranscriptRecord, opts Options) types.GPACheck {
	check := types.GPACheck{Status: types.CheckUnverifiable}

	var qualityPoints, gpaHours float64
	for _, c := range record.Courses {
		points, ok := gradePointsFor(c)
		if !ok || c.Credits == nil {
			continue
		}
		qualityPoints += points * *c.Credits
		gpaHours += *c.Credits
	}
	if gpaHours > 0 {
		computed := qualityPoints / gpaHours
		check.Computed = &computed
	}

	check.Declared = declaredGPA(record)
	if check.Computed == nil || check.Declared == nil {
		return check
	}

	if math.Abs(*check.Computed-*check.Declared) > opts.GPATolerance {
		check.Status = types.CheckMismatch
	} else {
		check.Status = types.CheckOK
	}
	return check
}

// declaredGPA returns the cumulative GPA printed on the transcript,
// preferring the totals section over the GPA summary.
func declaredGPA(record *types.TranscriptRecord) *float64 {
	if record.Totals != nil && record.Totals.OverallGPA != nil {
		return record.Totals.OverallGPA
	}
	if record.GPASummary != nil && record.GPASummary.UnweightedGPA != nil {
		return record.GPASummary.UnweightedGPA
	}
	return nil
}

// completeness scores the presence of the core signals a usable transcript
// record needs: student name, student ID, institution name, at least one
// course, and at least one term.
func completeness(record *types.TranscriptRecord) (score float64, present, expected int) {
	expected = 5

	if record.Student != nil && record.Student.Name != nil {
		present++
	}
	if record.Student != nil && record.Student.StudentID != nil {
		present++
	}
	if record.Institution != nil && record.Institution.Name != nil {
		present++
	}
	if len(record.Courses) > 0 {
		present++
	}
	for _, c := range record.Courses {
		if normalizeToken(c.Term) != "" {
			present++
			break
		}
	}

	return float64(present) / float64(expected), present, expected
}
