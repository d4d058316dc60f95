// internal/app/bootstrap/dbdeps.go
package bootstrap

import "go.mongodb.org/mongo-driver/mongo"

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// Created in ConnectDB, passed to EnsureSchema, Startup and BuildHandler,
// and closed in Shutdown. Nothing else in the app holds a package-level
// connection.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
}
