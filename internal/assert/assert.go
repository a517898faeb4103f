// Package assert contains test assertion helpers.
package assert

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Testing is an interface that includes the methods used from *testing.T.
type Testing interface {
	Helper()
	Error(args ...any)
	FailNow()
}

// Fail fails the test with a message and optional format arguments.
func Fail(t Testing, message string, msgAndArgs ...any) {
	t.Helper()
	if len(msgAndArgs) > 0 {
		var builder strings.Builder
		builder.WriteString(message)
		builder.WriteByte('\n')
		builder.WriteString(fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...))
		message = builder.String()
	}
	t.Error(message)
	t.FailNow()
}

// Equal asserts that two objects are equal.
//
// Example:
//
//	assert.Equal(t, 42, result)
//	assert.Equal(t, "hello", greeting, "greeting should be hello")
func Equal(t Testing, expected, actual any, msgAndArgs ...any) {
	t.Helper()
	if equal(expected, actual) {
		return
	}

	msg := fmt.Sprintf("Not equal: \nexpected: %v\nactual  : %v", expected, actual)
	Fail(t, msg, msgAndArgs...)
}

// NoError asserts that a function returned no error.
//
// Example:
//
//	err := processData()
//	assert.NoError(t, err)
//	assert.NoError(t, err, "data processing should succeed")
func NoError(t Testing, err error, msgAndArgs ...any) {
	t.Helper()
	if err == nil {
		return
	}

	msg := fmt.Sprintf("Unexpected error:\n%+v", err)
	Fail(t, msg, msgAndArgs...)
}

// Error asserts that a function returned an error.
//
// Example:
//
//	err := divide(1, 0)
//	assert.Error(t, err)
//	assert.Error(t, err, "division by zero should fail")
func Error(t Testing, err error, msgAndArgs ...any) {
	t.Helper()
	if err != nil {
		return
	}

	msg := "Expected an error"
	Fail(t, msg, msgAndArgs...)
}

// ErrorIs asserts that a function returned an error that matches the specified error.
// Uses errors.Is for comparison, which supports error wrapping.
//
// Example:
//
//	err := processFile("missing.txt")
//	assert.ErrorIs(t, err, os.ErrNotExist)
//	assert.ErrorIs(t, err, ErrInvalidInput, "should be input validation error")
func ErrorIs(t Testing, err, expectedError error, msgAndArgs ...any) {
	t.Helper()
	if err == nil {
		msg := fmt.Sprintf("Error not returned: \nexpected: %v\nactual  : nil", expectedError)
		Fail(t, msg, msgAndArgs...)
		return
	}

	if errors.Is(err, expectedError) {
		return
	}

	msg := fmt.Sprintf("Error not equal: \nexpected: %v\nactual  : %v", expectedError, err)
	Fail(t, msg, msgAndArgs...)
}

// True asserts that the specified value is true.
//
// Example:
//
//	assert.True(t, isValid)
//	assert.True(t, user.IsActive(), "user should be active")
func True(t Testing, value bool, msgAndArgs ...any) {
	t.Helper()
	if value {
		return
	}
	Fail(t, "Unexpected false", msgAndArgs...)
}

// False asserts that the specified value is false.
//
// Example:
//
//	assert.False(t, isEmpty)
//	assert.False(t, user.IsBlocked(), "user should not be blocked")
func False(t Testing, value bool, msgAndArgs ...any) {
	t.Helper()
	if !value {
		return
	}
	Fail(t, "Unexpected true", msgAndArgs...)
}

// Len asserts that the specified object has the expected length.
//
// Example:
//
//	assert.Len(t, items, 5)
//	assert.Len(t, "hello", 5, "string should have 5 characters")
func Len(t Testing, object any, expectedLen int, msgAndArgs ...any) {
	t.Helper()
	v := reflect.ValueOf(object)
	if !v.IsValid() {
		Fail(t, "Cannot get length of nil", msgAndArgs...)
		return
	}

	switch v.Kind() {
	case reflect.Array, reflect.Chan, reflect.Map, reflect.Slice, reflect.String:
		actualLen := v.Len()
		if actualLen == expectedLen {
			return
		}
		msg := "Length not equal: \nexpected: " + strconv.Itoa(expectedLen) + "\nactual  : " + strconv.Itoa(actualLen)
		Fail(t, msg, msgAndArgs...)
	default:
		Fail(t, fmt.Sprintf("Object of type %T does not have a length", object), msgAndArgs...)
	}
}

// NotNil asserts that the specified object is not nil.
//
// Example:
//
//	assert.NotNil(t, user)
//	assert.NotNil(t, response, "response should not be nil")
func NotNil(t Testing, object any, msgAndArgs ...any) {
	t.Helper()
	if !isNil(object) {
		return
	}

	msg := "Expected value to be not nil"
	Fail(t, msg, msgAndArgs...)
}

// Contains asserts that the string contains the substring.
func Contains(t Testing, s, substr string, msgAndArgs ...any) {
	t.Helper()
	if strings.Contains(s, substr) {
		return
	}

	msg := fmt.Sprintf("String does not contain substring:\nstring: %s\nsubstring: %s", s, substr)
	Fail(t, msg, msgAndArgs...)
}

// Empty asserts that the object is empty.
func Empty(t Testing, object any, msgAndArgs ...any) {
	t.Helper()
	if isEmpty(object) {
		return
	}

	msg := fmt.Sprintf("Expected empty, but got: %v", object)
	Fail(t, msg, msgAndArgs...)
}

// NotEmpty asserts that the object is not empty.
func NotEmpty(t Testing, object any, msgAndArgs ...any) {
	t.Helper()
	if !isEmpty(object) {
		return
	}

	msg := "Expected not empty, but got empty"
	Fail(t, msg, msgAndArgs...)
}

// equal checks if two values are equal, handling type conversions and nil values efficiently.
func equal(expected, actual any) bool {
	// Handle nil cases efficiently
	if expected == nil || actual == nil {
		return isNil(expected) == isNil(actual)
	}

	// Fast path for exact equality (but only for comparable types)
	// Check if types are comparable first to avoid panic
	if reflect.TypeOf(expected).Comparable() && reflect.TypeOf(actual).Comparable() {
		if expected == actual {
			return true
		}
	}

	// Use DeepEqual for comprehensive comparison (handles slices, maps, etc.)
	if reflect.DeepEqual(expected, actual) {
		return true
	}

	// Try type conversion as fallback
	actualType := reflect.TypeOf(actual)
	if actualType == nil {
		return false
	}
	expectedValue := reflect.ValueOf(expected)
	if expectedValue.IsValid() && expectedValue.Type().ConvertibleTo(actualType) {
		return reflect.DeepEqual(expectedValue.Convert(actualType).Interface(), actual)
	}

	return false
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	switch reflect.TypeOf(value).Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface, reflect.Func:
		return reflect.ValueOf(value).IsNil()
	default:
		return false
	}
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String, reflect.Array, reflect.Slice, reflect.Map, reflect.Chan:
		return v.Len() == 0
	default:
		return false
	}
}
