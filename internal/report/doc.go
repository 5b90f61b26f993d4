// Package report derives analytical views from snapshot stores:
// per-field aggregates of a resolved snapshot and day-over-day movement
// between consecutive stored dates. Results carry plain frames and
// render to records for the exporter.
package report
