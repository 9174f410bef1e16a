package consolidate

import (
	"log/slog"
	"math"
	"strings"

	"github.com/jackzampolin/registrar/internal/types"
)

// courseKey identifies an academic event: one course taken in one term.
type courseKey struct {
	id   string
	term string
}

func keyFor(c types.Course) courseKey {
	return courseKey{
		id:   normalizeToken(c.CourseID),
		term: normalizeToken(c.Term),
	}
}

// normalizeToken case-folds and collapses whitespace so that "math101" and
// "MATH 101" hash to the same key.
func normalizeToken(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

type dedupeStats struct {
	duplicatesRemoved int
	retakesKept       int
}

// dedupeCourses flattens per-page course lists into one list in
// first-appearance order. Entries sharing an identity key with equivalent
// grade and credits are the same occurrence (page overlap from scanning) and
// only the first is kept. Entries sharing a key with a different outcome are
// retakes and all variants are kept. Title or metadata differences alone
// never split an occurrence; the first-seen entry's metadata wins.
func dedupeCourses(pages []types.PageExtraction, opts Options, log *slog.Logger) ([]types.Course, dedupeStats) {
	var (
		kept  []types.Course
		stats dedupeStats
	)
	variants := make(map[courseKey][]types.Course)

	for _, p := range pages {
		for _, c := range p.Courses {
			key := keyFor(c)
			if existing, ok := variants[key]; ok {
				if hasEquivalent(existing, c, opts) {
					stats.duplicatesRemoved++
					log.Debug("duplicate course removed",
						"course_id", c.CourseID, "term", c.Term, "page", p.PageNumber)
					continue
				}
				stats.retakesKept++
				log.Debug("retake preserved",
					"course_id", c.CourseID, "term", c.Term, "page", p.PageNumber)
			}
			variants[key] = append(variants[key], c)
			kept = append(kept, cloneCourse(c))
		}
	}

	return kept, stats
}

// cloneCourse deep-copies a course's pointer fields. The record owns its
// course list outright; retained entries must not alias the source pages.
func cloneCourse(c types.Course) types.Course {
	if c.Credits != nil {
		v := *c.Credits
		c.Credits = &v
	}
	if c.Grade != nil {
		v := *c.Grade
		c.Grade = &v
	}
	if c.GradePoints != nil {
		v := *c.GradePoints
		c.GradePoints = &v
	}
	if c.CreditsAttempted != nil {
		v := *c.CreditsAttempted
		c.CreditsAttempted = &v
	}
	return c
}

// hasEquivalent reports whether an already-kept variant matches the incoming
// course's outcome (grade and credits).
func hasEquivalent(existing []types.Course, c types.Course, opts Options) bool {
	for _, e := range existing {
		if gradesEqual(e.Grade, c.Grade) && creditsEqual(e.Credits, c.Credits, opts.CreditEquivalence) {
			return true
		}
	}
	return false
}

// gradesEqual compares grades after trimming and case-folding; two absent
// grades are equal.
func gradesEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return normalizeToken(*a) == normalizeToken(*b)
}

// creditsEqual compares credit values within tolerance; two absent values
// are equal.
func creditsEqual(a, b *float64, tolerance float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return math.Abs(*a-*b) <= tolerance
}
