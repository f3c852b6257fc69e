// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect functions mark the test as failed but allow it to continue. The
// Demand functions end the test immediately. Demand is particularly useful if
// the value being tested is used in further tests and so must be correct.
package test
