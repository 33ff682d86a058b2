// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, so services depend only on UserStore,
// PostStore and the sentinel errors declared here.
package store
