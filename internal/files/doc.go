// Package files discovers snapshot data files on disk and keeps the
// directories around them in order.
//
// Discovery works on plain directory listings: ListDataFiles filters by
// extension and orders by modification time, NewestFile picks the most
// recently modified name matching a pattern. ModifiedDate reports a
// file's timestamp through the date layer so it compares cleanly with
// parsed snapshot dates.
//
// Example usage:
//
//	infos, err := files.ListDataFiles("data/in", ".csv", ".csv.gz")
//
//	latest, err := files.NewestFile("data/in", `prices_\d{8}`)
package files
