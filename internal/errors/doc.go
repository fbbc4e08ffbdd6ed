// Package errors provides the structured error type shared by every layer of showdown-player.
//
// Errors carry a Code, a user-facing Message, an optional Cause and free-form
// Meta. Codes map onto gRPC status codes so the decision service can return
// them unchanged to a remote simulator.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.InvalidArgument("request has no side")
//	err := errors.FailedPreconditionf("slot %d has no legal action", slot)
//
// Adding metadata:
//
//	err := errors.FailedPrecondition("unable to make choice").
//	    WithMeta("slot", 1).
//	    WithMeta("dynamax", false)
//
// Wrapping errors keeps the original code:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load battle session")
//	}
//
// # Codes used by the decision engine
//
//   - Unavailable: the simulator rejected a choice that is no longer legal; retry from the latest request
//   - InvalidArgument: malformed decision request or input
//   - FailedPrecondition: a slot can neither move nor switch
//   - OutOfRange: an interactive selection does not map to a legal option
//   - Aborted: a batch for the same battle side is already in flight
//   - Canceled: an interactive wait was abandoned
//   - NotFound: no session stored for a battle side
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	if cfg.Repository == nil {
//	    vb.RequiredField("Repository")
//	}
//	return vb.Build()
//
// # gRPC Integration
//
// Handlers return errors.ToGRPCError(err); clients recover the structured error
// with errors.FromGRPCError(err). Meta travels as a google.protobuf.Struct detail.
package errors
