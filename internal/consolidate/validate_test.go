package consolidate

import (
	"math"
	"testing"

	"github.com/jackzampolin/registrar/internal/types"
)

func TestCheckCredits(t *testing.T) {
	t.Run("mismatch beyond tolerance", func(t *testing.T) {
		record := &types.TranscriptRecord{
			Courses: []types.Course{
				course("A", "T1", "A", 60.0),
				course("B", "T2", "B", 57.0),
			},
			Totals: &types.TranscriptTotals{OverallEarnedHours: f64Ptr(120.0)},
		}

		check := checkCredits(record, DefaultOptions())
		if check.Status != types.CheckMismatch {
			t.Errorf("expected mismatch, got %s", check.Status)
		}
		if check.Computed != 117.0 {
			t.Errorf("expected computed 117, got %f", check.Computed)
		}
	})

	t.Run("agreement within tolerance", func(t *testing.T) {
		record := &types.TranscriptRecord{
			Courses: []types.Course{course("A", "T1", "A", 120.0)},
			Totals:  &types.TranscriptTotals{OverallEarnedHours: f64Ptr(120.005)},
		}

		check := checkCredits(record, DefaultOptions())
		if check.Status != types.CheckOK {
			t.Errorf("expected ok, got %s", check.Status)
		}
	})

	t.Run("unverifiable without declared total", func(t *testing.T) {
		record := &types.TranscriptRecord{
			Courses: []types.Course{course("A", "T1", "A", 3.0)},
		}

		check := checkCredits(record, DefaultOptions())
		if check.Status != types.CheckUnverifiable {
			t.Errorf("expected unverifiable, got %s", check.Status)
		}
	})
}

func TestCheckGPA(t *testing.T) {
	t.Run("recomputed weighted GPA matches declared", func(t *testing.T) {
		record := &types.TranscriptRecord{
			Courses: []types.Course{
				course("A", "T1", "A", 3.0), // 4.0 * 3
				course("B", "T1", "B", 3.0), // 3.0 * 3
			},
			Totals: &types.TranscriptTotals{OverallGPA: f64Ptr(3.5)},
		}

		check := checkGPA(record, DefaultOptions())
		if check.Status != types.CheckOK {
			t.Fatalf("expected ok, got %s", check.Status)
		}
		if math.Abs(*check.Computed-3.5) > 1e-9 {
			t.Errorf("expected computed 3.5, got %f", *check.Computed)
		}
	})

	t.Run("mismatch beyond tolerance", func(t *testing.T) {
		record := &types.TranscriptRecord{
			Courses: []types.Course{course("A", "T1", "C", 3.0)},
			Totals:  &types.TranscriptTotals{OverallGPA: f64Ptr(3.9)},
		}

		check := checkGPA(record, DefaultOptions())
		if check.Status != types.CheckMismatch {
			t.Errorf("expected mismatch, got %s", check.Status)
		}
	})

	t.Run("unverifiable without grade-bearing courses", func(t *testing.T) {
		pass := course("A", "T1", "P", 3.0) // pass/fail carries no points
		record := &types.TranscriptRecord{
			Courses: []types.Course{pass},
			Totals:  &types.TranscriptTotals{OverallGPA: f64Ptr(4.0)},
		}

		check := checkGPA(record, DefaultOptions())
		if check.Status != types.CheckUnverifiable {
			t.Errorf("expected unverifiable, got %s", check.Status)
		}
	})

	t.Run("unverifiable without declared GPA", func(t *testing.T) {
		record := &types.TranscriptRecord{
			Courses: []types.Course{course("A", "T1", "A", 3.0)},
		}

		check := checkGPA(record, DefaultOptions())
		if check.Status != types.CheckUnverifiable {
			t.Errorf("expected unverifiable, got %s", check.Status)
		}
	})

	t.Run("falls back to GPA summary when totals absent", func(t *testing.T) {
		record := &types.TranscriptRecord{
			Courses:    []types.Course{course("A", "T1", "A", 3.0)},
			GPASummary: &types.GPASummary{UnweightedGPA: f64Ptr(4.0)},
		}

		check := checkGPA(record, DefaultOptions())
		if check.Status != types.CheckOK {
			t.Errorf("expected ok via GPA summary fallback, got %s", check.Status)
		}
	})
}

func TestGradePointsFor(t *testing.T) {
	t.Run("letter scale with modifiers", func(t *testing.T) {
		cases := map[string]float64{
			"A": 4.0, "a-": 3.7, "B+": 3.3, " b ": 3.0, "F": 0.0,
		}
		for grade, want := range cases {
			c := course("X", "T", grade, 3.0)
			got, ok := gradePointsFor(c)
			if !ok {
				t.Errorf("grade %q should bear points", grade)
				continue
			}
			if got != want {
				t.Errorf("grade %q: expected %f, got %f", grade, want, got)
			}
		}
	})

	t.Run("explicit grade points take precedence", func(t *testing.T) {
		c := course("X", "T", "A", 3.0)
		c.GradePoints = f64Ptr(4.3) // institution with an A+ = 4.3 scale
		got, ok := gradePointsFor(c)
		if !ok || got != 4.3 {
			t.Errorf("expected explicit 4.3, got %f (ok=%v)", got, ok)
		}
	})

	t.Run("non-letter marks bear no points", func(t *testing.T) {
		for _, grade := range []string{"P", "W", "I", "AU", "TR"} {
			c := course("X", "T", grade, 3.0)
			if _, ok := gradePointsFor(c); ok {
				t.Errorf("grade %q must not bear points", grade)
			}
		}
	})
}

func TestCourseDistribution(t *testing.T) {
	lower := course("MATH101", "Fall2020", "B", 3.0)
	lower.Level = "Lower Division"
	upper := course("MATH401", "Spring2022", "A", 3.0)
	upper.Level = "Upper Division"
	unleveled := course("PE100", "Fall2020", "P", 1.0)

	dist := courseDistribution([]types.Course{lower, upper, unleveled, upper})
	if dist["Lower Division"] != 1 || dist["Upper Division"] != 2 {
		t.Errorf("unexpected level counts: %v", dist)
	}
	if dist["Unknown"] != 1 {
		t.Errorf("expected unleveled course under Unknown, got %v", dist)
	}

	if courseDistribution(nil) != nil {
		t.Error("expected nil distribution for empty course list")
	}
}

func TestCompleteness(t *testing.T) {
	t.Run("all core signals present", func(t *testing.T) {
		record := &types.TranscriptRecord{
			Student:     &types.StudentInfo{Name: strPtr("Jane Doe"), StudentID: strPtr("123")},
			Institution: &types.InstitutionInfo{Name: strPtr("State University")},
			Courses:     []types.Course{course("A", "Fall2020", "A", 3.0)},
		}

		score, present, expected := completeness(record)
		if score != 1.0 {
			t.Errorf("expected score 1.0, got %f", score)
		}
		if present != 5 || expected != 5 {
			t.Errorf("expected 5/5, got %d/%d", present, expected)
		}
	})

	t.Run("empty record scores zero", func(t *testing.T) {
		score, present, _ := completeness(&types.TranscriptRecord{})
		if score != 0 || present != 0 {
			t.Errorf("expected 0 score, got %f (%d present)", score, present)
		}
	})

	t.Run("course without term counts once", func(t *testing.T) {
		record := &types.TranscriptRecord{
			Courses: []types.Course{{CourseID: "A"}},
		}
		score, present, _ := completeness(record)
		if present != 1 {
			t.Errorf("expected only the course signal, got %d", present)
		}
		if math.Abs(score-0.2) > 1e-9 {
			t.Errorf("expected score 0.2, got %f", score)
		}
	})
}
