// Package exporter renders panel stores to delimited text and workbook
// files.
//
// WriteSnapshotCSV and WriteSnapshotXLSX emit one resolved snapshot;
// WriteHistoryCSV emits one security across every stored date; the
// DailyExporter writes the full per-date file set plus a combined file.
// All delimited output goes through CSVWriter, which handles directory
// creation, BOM prefixes, append mode and gzip compression.
package exporter
