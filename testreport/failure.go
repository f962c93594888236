package testreport

import "strings"

// TestFailure represents a single failing or erroring assertion within one
// test case execution. Treat values as immutable once constructed.
type TestFailure struct {
	TestName       string
	DisplayName    string
	ClassName      string
	FailureType    string
	FailureMessage string
	StackTrace     string
	Time           float64
}

// NewTestFailure validates and builds a TestFailure. The execution time must
// be non-negative; everything else is accepted as-is, including empty strings
// (an empty class name is a legal grouping key).
func NewTestFailure(testName, displayName, className, failureType, failureMessage, stackTrace string, time float64) (*TestFailure, error) {
	if time < 0 {
		return nil, ErrNegativeTime
	}
	return &TestFailure{
		TestName:       testName,
		DisplayName:    displayName,
		ClassName:      className,
		FailureType:    failureType,
		FailureMessage: failureMessage,
		StackTrace:     stackTrace,
		Time:           time,
	}, nil
}

// Compare defines the display ordering: class name first, then test name.
// Failures with equal class and test names compare equal regardless of their
// other fields.
func (f *TestFailure) Compare(other *TestFailure) int {
	if result := strings.Compare(f.ClassName, other.ClassName); result != 0 {
		return result
	}
	return strings.Compare(f.TestName, other.TestName)
}

// Less reports whether f sorts before other in the display ordering.
func (f *TestFailure) Less(other *TestFailure) bool {
	return f.Compare(other) < 0
}
