// Package postgres provides PostgreSQL implementations of the storage
// interfaces defined in internal/store, together with the embedded schema
// migrations.
//
// User-owned tables are protected by row-level security keyed on the
// app.current_user_id setting. Stores set it per transaction through
// withUserScope, so a query can only ever see the acting user's rows.
package postgres
