// Package errors provides the structured error type shared by every layer of
// agent-sandbox.
//
// Errors carry a Code, a user-facing Message, an optional Cause and free-form
// metadata. The code decides how the error leaves the process: handlers map it
// to an HTTP status with Code.HTTPStatus and to a gRPC status with ToGRPCError.
//
// Creating errors:
//
//	err := errors.NotFound("npc not found").WithMeta("npc_id", id)
//	err := errors.InvalidArgumentf("unknown fallback policy %q", p)
//
// Wrapping keeps the original code:
//
//	if err := repo.Update(ctx, in); err != nil {
//	    return errors.Wrapf(err, "failed to update npc %s", id)
//	}
//
// Layer guidelines:
//   - Repositories return NotFound, InvalidArgument or wrap storage failures (Internal).
//   - Orchestrators validate input, return Aborted when a turn is already running
//     and wrap repository errors with business context.
//   - Handlers convert at the edge and log internal errors.
//
// Validation:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("npc_id", input.NPCID, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
