// Package metadata persists small named values of the client on the local
// SQLite database: a key/value table holding, among others, the persisted
// session credential.
//
// Key Types
//
//   - type Repository: contract used by higher-level stores
//   - type SQLiteRepository: SQLite implementation over dbx.DBTX
//
// Get returns (nil, nil) for an absent key; Delete of an absent key is not
// an error.
package metadata
