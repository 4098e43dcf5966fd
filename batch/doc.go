// Package batch drives the MTF pipeline over every row of a table.
//
// 🚀 Contract:
//   - Dims is read first and the transform configuration is resolved
//     before any row is pulled, so configuration errors never surface
//     mid-batch.
//   - Image k of the output is row k of the source, always. Parallel
//     workers write disjoint tensor slots and cannot reorder output.
//   - Any row failure aborts the batch. Run returns no tensor, RunTo does
//     not call the sink, RunStream aborts the open writer.
//   - Source and sink errors are returned unchanged; row errors are
//     wrapped in *RowError, which keeps the mtfield error class.
//
// ✨ Modes:
//   - Run:       whole tensor [R, M, M] in memory.
//   - RunTo:     Run, then exactly one ArraySink.WriteBatch.
//   - RunStream: bounded memory; rows are computed in windows and written
//     to a RowWriter in source order.
//
// ⚙️ Observability:
//   - Progress callback and an Info log line every N rows (default 200).
//   - Optional Prometheus collectors (see Metrics).
package batch
