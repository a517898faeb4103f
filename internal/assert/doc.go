/*
Package assert provides the small set of testing assertion helpers used
across rvtrace's test suites.

# Overview

The assert package offers the subset of assertion functions rvtrace's tests
actually exercise: equality, boolean, nil, length, emptiness, string
containment, and error checks. It gives clear failure messages and
integrates with Go's testing package through the Testing interface.

# Basic Usage

All assertion functions follow a similar pattern: they take a Testing
interface (usually *testing.T), the values to compare or check, and
optional message formatting arguments.

	func TestExample(t *testing.T) {
		result := Calculate()
		assert.Equal(t, 42, result, "calculation should return 42")

		err := DoSomething()
		assert.NoError(t, err, "operation should succeed")
	}

# Available Assertions

Equality:
  - Equal: Asserts two values are equal

Boolean Assertions:
  - True: Asserts value is true
  - False: Asserts value is false

Nil Checks:
  - NotNil: Asserts value is not nil

Collection Assertions:
  - Len: Asserts collection has expected length
  - Empty: Asserts collection is empty
  - NotEmpty: Asserts collection is not empty

String Assertions:
  - Contains: Asserts string contains substring

Error Handling:
  - NoError: Asserts error is nil
  - Error: Asserts error is not nil
  - ErrorIs: Asserts error matches expected error using errors.Is

# Custom Testing Interface

The package uses a Testing interface that matches *testing.T, allowing for
easy mocking in tests:

	type Testing interface {
		Helper()
		Error(args ...any)
		FailNow()
	}
*/
package assert
