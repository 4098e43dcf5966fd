// Package table reads numeric tables into row sources for the batch
// driver and writes small tables back out.
//
// Sources:
//   - MemorySource: rows already in memory (tests, synth, the CLI).
//   - CSVSource: wide CSV, one series per record. Identifier columns are
//     removed by name before values reach the pipeline, and their values
//     are kept (IDs) so the output tensor can be joined back by position.
//   - ReadColumn: one numeric column of a long CSV as a single series.
//
// Missing tokens ("", "NA", "NaN", "nan" by default) decode to NaN, which
// the quantizer rejects as a missing value. Cells that are neither numbers
// nor missing tokens fail with ErrParse.
package table
