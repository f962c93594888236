package testreport

import "testing"

func TestNewTestFailure_RejectsNegativeTime(t *testing.T) {
	_, err := NewTestFailure("test", "", "com.example.Tests", "failure", "boom", "", -0.001)
	if err != ErrNegativeTime {
		t.Errorf("Expected ErrNegativeTime, got %v", err)
	}
}

func TestNewTestFailure_AcceptsZeroTimeAndEmptyStrings(t *testing.T) {
	failure, err := NewTestFailure("", "", "", "failure", DefaultMessage, "", 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if failure.ClassName != "" {
		t.Errorf("Expected empty class name to be preserved, got %q", failure.ClassName)
	}
	if failure.Time != 0 {
		t.Errorf("Expected time 0, got %v", failure.Time)
	}
}

func TestNewTestFailure_KeepsFields(t *testing.T) {
	failure, err := NewTestFailure("shouldAdd", "Should add", "com.example.MathTests",
		"AssertionError", "expected 2 but was 3", "at com.example.MathTests.shouldAdd(MathTests.java:42)", 0.125)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if failure.TestName != "shouldAdd" {
		t.Errorf("Expected test name 'shouldAdd', got %q", failure.TestName)
	}
	if failure.DisplayName != "Should add" {
		t.Errorf("Expected display name 'Should add', got %q", failure.DisplayName)
	}
	if failure.FailureType != "AssertionError" {
		t.Errorf("Expected failure type 'AssertionError', got %q", failure.FailureType)
	}
	if failure.FailureMessage != "expected 2 but was 3" {
		t.Errorf("Expected failure message to be preserved, got %q", failure.FailureMessage)
	}
	if failure.StackTrace == "" {
		t.Error("Expected stack trace to be preserved")
	}
	if failure.Time != 0.125 {
		t.Errorf("Expected time 0.125, got %v", failure.Time)
	}
}

func TestCompare_OrdersByClassNameThenTestName(t *testing.T) {
	mustFailure := func(className, testName string) *TestFailure {
		t.Helper()
		failure, err := NewTestFailure(testName, "", className, "failure", DefaultMessage, "", 0)
		if err != nil {
			t.Fatalf("Failed to build failure: %v", err)
		}
		return failure
	}

	a := mustFailure("com.example.A", "zebra")
	b := mustFailure("com.example.B", "alpha")
	if a.Compare(b) >= 0 {
		t.Error("Expected class name to be the primary sort key")
	}

	first := mustFailure("com.example.A", "alpha")
	second := mustFailure("com.example.A", "beta")
	if first.Compare(second) >= 0 {
		t.Error("Expected test name to be the secondary sort key")
	}
	if second.Compare(first) <= 0 {
		t.Error("Expected comparison to be antisymmetric")
	}
}

func TestCompare_EqualKeysIgnoreOtherFields(t *testing.T) {
	a, err := NewTestFailure("test", "Display A", "com.example.Tests", "failure", "message a", "trace a", 0.1)
	if err != nil {
		t.Fatalf("Failed to build failure: %v", err)
	}
	b, err := NewTestFailure("test", "Display B", "com.example.Tests", "error", "message b", "trace b", 9.9)
	if err != nil {
		t.Fatalf("Failed to build failure: %v", err)
	}

	if a.Compare(b) != 0 {
		t.Error("Expected failures with the same class and test name to compare equal")
	}
	if a.Less(b) || b.Less(a) {
		t.Error("Expected neither failure to sort before the other")
	}
}
