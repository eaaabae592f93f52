// Package errors provides the structured error type used across rpg-sheet-store.
//
// Every error carries a Code, a user-facing Message, an optional Cause, and
// free-form metadata. Storage failures additionally carry a Kind and the
// offending path:
//
//	return errors.FileIO(err, "read", path)
//	return errors.Serialization(err, "decode", path)
//	return errors.DirectoryAccess(err, "create directory", dir)
//
// Wrapping keeps the code and metadata of the inner error:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save character")
//	}
//
// Checking:
//
//	if errors.IsNotFound(err) { ... }
//	if errors.GetKind(err) == errors.KindSerialization { ... }
//
// Layer guidelines:
//   - Repositories return storage errors, NotFound, and InvalidArgument for bad ids
//   - Orchestrators validate input and wrap repository errors
//   - gRPC handlers convert with ToGRPCError
//
// Nothing in this module retries: failures surface on first occurrence.
package errors
