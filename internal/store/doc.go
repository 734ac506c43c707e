// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. Every method that touches user-owned rows
// takes the acting user's ID explicitly so implementations can enforce
// ownership at the storage boundary.
package store
