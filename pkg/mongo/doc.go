// Package mongo connects the official MongoDB v2 driver for the mongo alert store.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "alertkit")
//	if err != nil {
//	    return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	checks = append(checks, mongo.Healthcheck(db.Client()))
package mongo
