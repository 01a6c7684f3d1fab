package postgres

import "embed"

// MigrationsFS embeds the SQL migration files so the server binary can
// apply them at startup without a filesystem checkout.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrationsDir is the path of the migration files inside MigrationsFS.
const MigrationsDir = "migrations"
