// Package pg connects to PostgreSQL through a pgx pool, applies goose
// migrations and provides a readiness probe.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	if err := pg.Migrate(ctx, pool, catalog.Migrations, catalog.MigrationsDir, cfg, log); err != nil {
//	    return err
//	}
//	store := catalog.NewPostgres(pg.OpenDB(pool))
package pg
