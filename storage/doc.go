// Package storage persists encoded artifacts (.npy tensors, identifier
// CSVs) on the local filesystem or in S3-compatible object storage.
//
// Every backend has the same visibility rule: an object written through
// Create is invisible under its key until Commit, and Abort leaves no
// trace. A failed batch therefore never leaves a partial tensor behind.
//
//	FileBackend: temp file in the target directory, fsync, rename.
//	S3Backend:   spooled to a local temp file, one PutObject on Commit.
package storage
