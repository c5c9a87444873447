// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for profiles, food_entries, and the insights cache.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		height_cm REAL NOT NULL DEFAULT 0,
		weight_kg REAL NOT NULL DEFAULT 0,
		birth_year INTEGER NOT NULL DEFAULT 0,
		birth_month INTEGER NOT NULL DEFAULT 0,
		medical_conditions TEXT NOT NULL DEFAULT '[]',
		allergies TEXT NOT NULL DEFAULT '[]',
		medications TEXT NOT NULL DEFAULT '[]',
		smoking_status TEXT NOT NULL DEFAULT 'never',
		smoking_frequency TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS food_entries (
		id TEXT PRIMARY KEY,
		profile_id TEXT NOT NULL,
		food_name TEXT NOT NULL,
		serving_size REAL NOT NULL,
		serving_unit TEXT NOT NULL,
		meal_type TEXT NOT NULL,
		nutrition TEXT NOT NULL,
		entry_date TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (profile_id) REFERENCES profiles(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS insights (
		id TEXT PRIMARY KEY,
		profile_id TEXT NOT NULL,
		insight_date TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (profile_id, insight_date),
		FOREIGN KEY (profile_id) REFERENCES profiles(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_entries_profile_date ON food_entries(profile_id, entry_date);
	CREATE INDEX IF NOT EXISTS idx_entries_created ON food_entries(created_at);
	CREATE INDEX IF NOT EXISTS idx_insights_profile_date ON insights(profile_id, insight_date);
	`

	_, err := d.db.Exec(schema)
	return err
}
