package consolidate

import (
	"log/slog"
	"testing"

	"github.com/jackzampolin/registrar/internal/types"
)

func dedupe(t *testing.T, pages []types.PageExtraction, opts Options) ([]types.Course, dedupeStats) {
	t.Helper()
	return dedupeCourses(pages, opts, slog.Default())
}

func TestDedupeRemovesExactDuplicates(t *testing.T) {
	pages := []types.PageExtraction{
		{PageNumber: 1, Courses: []types.Course{course("MATH101", "Fall2020", "B", 3.0)}},
		{PageNumber: 2, Courses: []types.Course{course("MATH101", "Fall2020", "B", 3.0)}},
	}

	courses, stats := dedupe(t, pages, DefaultOptions())
	if len(courses) != 1 {
		t.Fatalf("expected 1 course, got %d", len(courses))
	}
	if stats.duplicatesRemoved != 1 {
		t.Errorf("expected 1 duplicate removed, got %d", stats.duplicatesRemoved)
	}
}

func TestDedupePreservesRetakes(t *testing.T) {
	pages := []types.PageExtraction{
		{PageNumber: 1, Courses: []types.Course{course("MATH101", "Fall2020", "D", 3.0)}},
		{PageNumber: 2, Courses: []types.Course{course("MATH101", "Fall2020", "B", 3.0)}},
	}

	courses, stats := dedupe(t, pages, DefaultOptions())
	if len(courses) != 2 {
		t.Fatalf("expected both retake variants kept, got %d", len(courses))
	}
	if *courses[0].Grade != "D" || *courses[1].Grade != "B" {
		t.Errorf("retakes out of order: %s then %s", *courses[0].Grade, *courses[1].Grade)
	}
	if stats.retakesKept != 1 {
		t.Errorf("expected 1 retake counted, got %d", stats.retakesKept)
	}
}

func TestDedupeKeepsAllGradeVariants(t *testing.T) {
	pages := []types.PageExtraction{
		{PageNumber: 1, Courses: []types.Course{
			course("MATH101", "Fall2020", "F", 3.0),
			course("MATH101", "Fall2020", "D", 3.0),
		}},
		{PageNumber: 2, Courses: []types.Course{
			course("MATH101", "Fall2020", "B", 3.0),
			course("MATH101", "Fall2020", "D", 3.0), // repeat of the D variant
		}},
	}

	courses, _ := dedupe(t, pages, DefaultOptions())
	if len(courses) != 3 {
		t.Fatalf("expected 3 distinct variants, got %d", len(courses))
	}
}

func TestDedupeKeyNormalization(t *testing.T) {
	a := course("math 101", " Fall2020 ", "B", 3.0)
	b := course("MATH 101", "fall2020", "B", 3.0)
	pages := []types.PageExtraction{
		{PageNumber: 1, Courses: []types.Course{a}},
		{PageNumber: 2, Courses: []types.Course{b}},
	}

	courses, _ := dedupe(t, pages, DefaultOptions())
	if len(courses) != 1 {
		t.Fatalf("case/whitespace variants must share a key, got %d courses", len(courses))
	}
}

func TestDedupeTitleDifferenceDoesNotSplit(t *testing.T) {
	a := course("MATH101", "Fall2020", "B", 3.0)
	a.Title = "Calculus I"
	b := course("MATH101", "Fall2020", "B", 3.0)
	b.Title = "CALCULUS I"

	pages := []types.PageExtraction{
		{PageNumber: 1, Courses: []types.Course{a}},
		{PageNumber: 2, Courses: []types.Course{b}},
	}

	courses, _ := dedupe(t, pages, DefaultOptions())
	if len(courses) != 1 {
		t.Fatalf("title variants must not split an occurrence, got %d courses", len(courses))
	}
	if courses[0].Title != "Calculus I" {
		t.Errorf("first-seen title must win, got %q", courses[0].Title)
	}
}

func TestDedupeAbsentOutcomeFields(t *testing.T) {
	a := types.Course{CourseID: "SEM300", Term: "Fall2021"}
	b := types.Course{CourseID: "SEM300", Term: "Fall2021"}
	withGrade := course("SEM300", "Fall2021", "P", 1.0)

	pages := []types.PageExtraction{
		{PageNumber: 1, Courses: []types.Course{a}},
		{PageNumber: 2, Courses: []types.Course{b, withGrade}},
	}

	courses, _ := dedupe(t, pages, DefaultOptions())
	if len(courses) != 2 {
		t.Fatalf("expected absent-outcome duplicate removed and graded variant kept, got %d", len(courses))
	}
}

func TestDedupeCreditTolerance(t *testing.T) {
	a := course("PHYS210", "Spring2021", "A", 4.0)
	b := course("PHYS210", "Spring2021", "A", 4.005)
	pages := []types.PageExtraction{
		{PageNumber: 1, Courses: []types.Course{a}},
		{PageNumber: 2, Courses: []types.Course{b}},
	}

	t.Run("within tolerance is a duplicate", func(t *testing.T) {
		courses, _ := dedupe(t, pages, DefaultOptions())
		if len(courses) != 1 {
			t.Errorf("expected duplicate within tolerance, got %d courses", len(courses))
		}
	})

	t.Run("tightened tolerance keeps both", func(t *testing.T) {
		opts := DefaultOptions()
		opts.CreditEquivalence = 0.001
		courses, _ := dedupe(t, pages, opts)
		if len(courses) != 2 {
			t.Errorf("expected both variants under tight tolerance, got %d courses", len(courses))
		}
	})
}

func TestDedupeFirstAppearanceOrder(t *testing.T) {
	pages := []types.PageExtraction{
		{PageNumber: 1, Courses: []types.Course{
			course("HIST100", "Fall2019", "A", 3.0),
			course("MATH101", "Fall2019", "B", 3.0),
		}},
		{PageNumber: 2, Courses: []types.Course{
			course("HIST100", "Fall2019", "A", 3.0),
			course("CHEM201", "Spring2020", "B+", 4.0),
		}},
	}

	courses, _ := dedupe(t, pages, DefaultOptions())
	want := []string{"HIST100", "MATH101", "CHEM201"}
	if len(courses) != len(want) {
		t.Fatalf("expected %d courses, got %d", len(want), len(courses))
	}
	for i, id := range want {
		if courses[i].CourseID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, courses[i].CourseID)
		}
	}
}
