package test

import "testing"

// ExpectEquality is used to test equality between one value and another
func ExpectEquality[T comparable](t *testing.T, v T, expectedValue T) {
	t.Helper()
	if v != expectedValue {
		t.Errorf("equality test of type %T failed: '%v' does not equal '%v'", v, v, expectedValue)
	}
}

// DemandEquality is used to test equality between one value and another. If
// the test fails it is a testing fatality
func DemandEquality[T comparable](t *testing.T, v T, expectedValue T) {
	t.Helper()
	if v != expectedValue {
		t.Fatalf("equality test of type %T failed: '%v' does not equal '%v'", v, v, expectedValue)
	}
}

// ExpectSuccess is used to test for a nil error
func ExpectSuccess(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("a success value is expected: %s", err.Error())
	}
}

// ExpectFailure is used to test for a non-nil error
func ExpectFailure(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Errorf("a failure value is expected")
	}
}

// DemandSuccess is used to test for a nil error. If the test fails it is a
// testing fatality
func DemandSuccess(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("a success value is demanded: %s", err.Error())
	}
}
