package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"wellness-analytics/internal/config"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

// SQLDB is the relational store holding both the wellness data the metrics
// aggregate over and the reports table.
type SQLDB struct {
	DB      *sql.DB
	Dialect Dialect
}

// MongodbDB is optional. DB is nil when no MONGO_URI is configured.
type MongodbDB struct {
	DB *mongo.Database
}

// OpenSQL opens and pings the relational connection pool.
func OpenSQL(ctx context.Context, cfg *config.Config) (*SQLDB, error) {
	dialect, err := DialectFor(cfg.DBDriver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &SQLDB{DB: db, Dialect: dialect}, nil
}

// NewSQLDatabase opens the relational connection pool with lifecycle management
func NewSQLDatabase(lc fx.Lifecycle, cfg *config.Config) (*SQLDB, error) {
	sqlDB, err := OpenSQL(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	log.Printf("Connected to %s!", sqlDB.Dialect.DriverName())

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Printf("Closing %s pool...", sqlDB.Dialect.DriverName())
			return sqlDB.DB.Close()
		},
	})

	return sqlDB, nil
}

// ConnectMongo returns an empty MongodbDB when MONGO_URI is unset.
func ConnectMongo(ctx context.Context, cfg *config.Config) (*MongodbDB, error) {
	if cfg.MongoURI == "" {
		if cfg.ReportStore == config.ReportStoreMongo {
			return nil, fmt.Errorf("REPORT_STORE=mongo requires MONGO_URI")
		}
		return &MongodbDB{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	return &MongodbDB{DB: client.Database(cfg.DBName)}, nil
}

// Close disconnects the client; it is a no-op when MongoDB is not configured.
func (m *MongodbDB) Close(ctx context.Context) error {
	if m == nil || m.DB == nil {
		return nil
	}
	return m.DB.Client().Disconnect(ctx)
}

// NewMongoDatabase creates a MongoDB connection when MONGO_URI is set
func NewMongoDatabase(lc fx.Lifecycle, cfg *config.Config) (*MongodbDB, error) {
	mongoDB, err := ConnectMongo(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	if mongoDB.DB == nil {
		return mongoDB, nil
	}

	log.Println("Connected to MongoDB!")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("Disconnecting from MongoDB...")
			return mongoDB.Close(ctx)
		},
	})

	return mongoDB, nil
}
