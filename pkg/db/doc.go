// Package db connects to PostgreSQL through pgxpool and applies goose
// migrations embedded in the binary.
//
// Repositories depend on DBTX rather than *pgxpool.Pool so they run against a
// pool, a transaction or a pgxmock pool alike:
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := db.Migrate(ctx, pool, migrations.FS, cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
//	err = db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//		// tx satisfies DBTX as well
//		return nil
//	})
package db
