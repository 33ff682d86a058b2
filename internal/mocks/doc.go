// Package mocks provides test doubles for the service and store interfaces.
//
// Most mocks expose function fields that override their behavior; with a nil
// function field they fall back to a simple in-memory default.
// TestifyMockUserStore is the exception: it is driven by testify/mock
// expectations.
package mocks
