// Package run stores solve results in memory so transports can fetch them
// again by ID.
//
// Run IDs are random UUIDs (lowercase, so lookups are case-insensitive).
// Runs are kept until deleted or expired. Once DefaultLimit runs are stored
// (or the WithLimit value), the oldest one is evicted. Nothing is written to
// disk.
//
// The manager is safe for concurrent use.
package run
