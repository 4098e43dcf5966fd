// Package sink persists image batches produced by the batch driver.
//
//	NPYSink    → .npy over a storage.Backend (file or S3), optional snappy
//	             framing (".sz"), whole-tensor or streamed.
//	SQLiteSink → one row per image in a SQLite database, one transaction
//	             per batch.
//
// Both implement batch.ArraySink and batch.StreamSink. Nothing becomes
// visible at the destination until the batch is complete.
package sink
