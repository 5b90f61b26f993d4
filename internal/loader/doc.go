// Package loader ingests snapshot files into panel stores.
//
// A snapshot file is a header plus one row per security, as delimited
// text (optionally gzip-compressed) or a workbook sheet. The first
// column carries the security identifiers and becomes the row index;
// the remaining columns are kind-detected from their cell text. Each
// file's observation date comes from a token in its name, extracted
// with Options.DatePattern and parsed with Options.DateLayout, unless
// Options.Date pins it explicitly.
//
// LoadDirectory discovers every snapshot under a directory, parses the
// files concurrently and assembles the results into a
// panel.SecurityPanel in date order.
package loader
