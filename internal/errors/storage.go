package errors

import (
	"fmt"
)

// Kind classifies a storage failure
type Kind string

// Storage failure kinds
const (
	// KindDirectoryAccess means the storage directory could not be created, listed, or read
	KindDirectoryAccess Kind = "directory_access"
	// KindFileIO means a single record file could not be read, written, or removed
	KindFileIO Kind = "file_io"
	// KindSerialization means record content could not be decoded or encoded
	KindSerialization Kind = "serialization"
)

const (
	metaKind = "kind"
	metaPath = "path"
)

// DirectoryAccess wraps a failure on the storage directory itself
func DirectoryAccess(err error, op, path string) *Error {
	return storageError(err, CodeInternal, KindDirectoryAccess, op, path)
}

// FileIO wraps a failure reading, writing, or removing one record file
func FileIO(err error, op, path string) *Error {
	return storageError(err, CodeInternal, KindFileIO, op, path)
}

// Serialization wraps a failure encoding or decoding record content.
// It maps to DATA_LOSS.
func Serialization(err error, op, path string) *Error {
	return storageError(err, CodeDataLoss, KindSerialization, op, path)
}

func storageError(err error, code Code, kind Kind, op, path string) *Error {
	if err == nil {
		return nil
	}

	return (&Error{
		Code:    code,
		Message: fmt.Sprintf("failed to %s %s", op, path),
		Cause:   err,
	}).WithMeta(metaKind, string(kind)).WithMeta(metaPath, path)
}

// GetKind returns the storage failure kind, or "" for non-storage errors
func GetKind(err error) Kind {
	kind, _ := GetMeta(err)[metaKind].(string)
	return Kind(kind)
}

// GetPath returns the path attached to a storage error
func GetPath(err error) string {
	path, _ := GetMeta(err)[metaPath].(string)
	return path
}

