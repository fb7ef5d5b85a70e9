// Package pg bootstraps the PostgreSQL layer shared by every Postgres-backed
// store in this module: a pgx/v5 connection pool opened with retry, goose
// schema migrations, a healthcheck closure for readiness probes, and a few
// error-classification helpers.
//
// Configuration comes from environment variables (see Config field tags).
// Typical startup:
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    panic(err)
//	}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    panic(err)
//	}
//	defer pool.Close()
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    panic(err)
//	}
//
// The pool is then handed to the store constructors (subscription.NewPGStore,
// usage.NewPGStore, feature.NewPGProvider, heavyuser.NewPGStore,
// auditlog.NewPGStorage). Schema lives in the migrations/ directory and is
// applied out of band from store construction.
package pg
