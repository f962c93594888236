package testreport

import (
	"math"
	"sort"
	"sync"
	"testing"
)

func newFailure(t *testing.T, className, testName string, time float64) *TestFailure {
	t.Helper()
	failure, err := NewTestFailure(testName, "", className, "failure", DefaultMessage, "", time)
	if err != nil {
		t.Fatalf("Failed to build failure: %v", err)
	}
	return failure
}

func TestClassFailures_AddNilFails(t *testing.T) {
	group := NewClassFailures("com.example.Tests")
	if err := group.AddFailure(nil); err != ErrNilFailure {
		t.Errorf("Expected ErrNilFailure, got %v", err)
	}
	if group.TotalFailures() != 0 {
		t.Error("Expected a rejected add to leave the group untouched")
	}
}

func TestClassFailures_TotalsTrackAdds(t *testing.T) {
	group := NewClassFailures("com.example.Tests")

	times := []float64{0.5, 0.25, 1.0}
	for i, tm := range times {
		if err := group.AddFailure(newFailure(t, "com.example.Tests", "test", tm)); err != nil {
			t.Fatalf("Add %d failed: %v", i, err)
		}
	}

	if group.TotalFailures() != len(times) {
		t.Errorf("Expected %d failures, got %d", len(times), group.TotalFailures())
	}
	if group.TotalTime() != 1.75 {
		t.Errorf("Expected total time 1.75, got %v", group.TotalTime())
	}
	if len(group.Failures()) != len(times) {
		t.Errorf("Expected %d stored failures, got %d", len(times), len(group.Failures()))
	}
}

func TestClassFailures_FailuresSortedRegardlessOfInsertionOrder(t *testing.T) {
	group := NewClassFailures("com.example.Tests")
	for _, name := range []string{"zebra", "alpha", "beta"} {
		if err := group.AddFailure(newFailure(t, "com.example.Tests", name, 0)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	failures := group.Failures()
	want := []string{"alpha", "beta", "zebra"}
	for i, name := range want {
		if failures[i].TestName != name {
			t.Errorf("Expected failure %d to be %q, got %q", i, name, failures[i].TestName)
		}
	}
}

func TestClassFailures_FailuresReturnsSnapshot(t *testing.T) {
	group := NewClassFailures("com.example.Tests")
	if err := group.AddFailure(newFailure(t, "com.example.Tests", "beta", 0)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	snapshot := group.Failures()
	if err := group.AddFailure(newFailure(t, "com.example.Tests", "alpha", 0)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if len(snapshot) != 1 {
		t.Error("Expected earlier snapshot to be independent of later adds")
	}
}

func TestClassFailures_SortIsIdempotent(t *testing.T) {
	group := NewClassFailures("com.example.Tests")
	for _, name := range []string{"c", "a", "b"} {
		if err := group.AddFailure(newFailure(t, "com.example.Tests", name, 0)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	group.SortFailures()
	first := group.Failures()
	group.SortFailures()
	second := group.Failures()

	if len(first) != len(second) {
		t.Fatalf("Expected identical lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].TestName != second[i].TestName {
			t.Errorf("Expected index %d to be %q after resort, got %q", i, first[i].TestName, second[i].TestName)
		}
	}
}

func TestClassFailures_ConcurrentAddsKeepTotalsConsistent(t *testing.T) {
	group := NewClassFailures("com.example.Tests")

	const workers = 8
	const addsPerWorker = 250

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < addsPerWorker; i++ {
				failure, err := NewTestFailure("test", "", "com.example.Tests", "failure", DefaultMessage, "", 0.001)
				if err != nil {
					t.Errorf("Failed to build failure: %v", err)
					return
				}
				if err := group.AddFailure(failure); err != nil {
					t.Errorf("Add failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	wantCount := workers * addsPerWorker
	if group.TotalFailures() != wantCount {
		t.Errorf("Expected %d failures, got %d", wantCount, group.TotalFailures())
	}
	if len(group.Failures()) != wantCount {
		t.Errorf("Expected %d stored failures, got %d", wantCount, len(group.Failures()))
	}

	wantTime := float64(wantCount) * 0.001
	if math.Abs(group.TotalTime()-wantTime) > 1e-9 {
		t.Errorf("Expected total time ~%v, got %v", wantTime, group.TotalTime())
	}
}

func TestClassFailures_EqualityByClassNameOnly(t *testing.T) {
	a := NewClassFailures("com.example.Tests")
	b := NewClassFailures("com.example.Tests")
	if err := b.AddFailure(newFailure(t, "com.example.Tests", "test", 0)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if !a.Equal(b) {
		t.Error("Expected groups with the same class name to be equal regardless of contents")
	}
	if a.Equal(NewClassFailures("com.example.Other")) {
		t.Error("Expected groups with different class names to not be equal")
	}
	if a.Equal(nil) {
		t.Error("Expected comparison against nil to be false")
	}
}

func TestGroupedFailures_OrderedByClassName(t *testing.T) {
	grouped := NewGroupedFailures(
		NewClassFailures("zeta.Tests"),
		NewClassFailures("alpha.Tests"),
		NewClassFailures("mid.Tests"),
	)

	names := grouped.ClassNames()
	if !sort.StringsAreSorted(names) {
		t.Errorf("Expected class names in ascending order, got %v", names)
	}
	if grouped.Len() != 3 {
		t.Errorf("Expected 3 groups, got %d", grouped.Len())
	}

	groups := grouped.Groups()
	for i, name := range names {
		if groups[i].ClassName() != name {
			t.Errorf("Expected group %d to be %q, got %q", i, name, groups[i].ClassName())
		}
	}
}

func TestGroupedFailures_Lookup(t *testing.T) {
	grouped := NewGroupedFailures(NewClassFailures("com.example.Tests"))

	if _, ok := grouped.Group("com.example.Tests"); !ok {
		t.Error("Expected lookup of a known class name to succeed")
	}
	if _, ok := grouped.Group("com.example.Missing"); ok {
		t.Error("Expected lookup of an unknown class name to fail")
	}
}
