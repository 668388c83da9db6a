// README: Shared identifier type used across modules.
package types

// ID is an opaque identifier (session, product lookup batches).
type ID string
