package config

const (
	// DefaultDatabasePath is used when STORE_DRIVER=sqlite and DATABASE_PATH is unset.
	DefaultDatabasePath = "./bookshelf.db"

	StoreDriverMemory = "memory"
	StoreDriverSQLite = "sqlite"
)
