// Package errors provides the error handling used across the bot core.
//
// It provides:
//   - Structured errors with codes, messages, and metadata
//   - Error context preservation through wrapping
//   - Validation error helpers
//   - Type-safe error checking
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("character not found")
//	err := errors.InvalidArgumentf("invalid dice notation: %s", notation)
//
// Adding metadata:
//
//	err := errors.NotFound("character not found").
//	    WithMeta("character", name).
//	    WithMeta("guild_id", guildID)
//
// Wrapping errors:
//
//	if err := repo.GetCharacter(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to get character")
//	}
//
// # Error Checking
//
// Type checking:
//
//	if errors.IsNotFound(err) {
//	    // Handle not found case
//	}
//
// Extracting information:
//
//	code := errors.GetCode(err)
//	message := errors.GetMessage(err)
//	meta := errors.GetMeta(err)
//
// # Validation Errors
//
// Using the validation builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateRange("hp", input.HP, 1, 1000, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer-Specific Guidelines
//
// Repository layer:
//   - Return domain-specific errors (NotFound, AlreadyExists)
//   - Include relevant names and guild IDs in metadata
//   - Never let a failed operation escape as a partial update
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Check preconditions and return FailedPrecondition errors
//   - Wrap repository errors with business context
//
// The Discord adapter sitting above this core renders GetMessage(err)
// to the user and picks an embed style from GetCode(err).
package errors
