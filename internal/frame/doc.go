// Package frame provides the labeled 2-D table the snapshot stores are
// built on: kinded columns (Series) over a shared row index, with
// label and positional selection, index promotion, and per-column
// category introspection.
package frame
