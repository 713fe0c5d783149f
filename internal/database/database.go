package database

import (
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// OpenDB initializes and returns the primary connection pool. The DSN is
// read from the environment.
func OpenDB() (*sql.DB, error) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		// Local development fallback.
		dsn = "root:root@tcp(127.0.0.1:3306)/grocerylink?parseTime=true"
	}
	return OpenDBWithDSN(dsn)
}

// OpenDBWithDSN creates and configures a DB connection pool from any DSN.
// Used for both the primary pool and the read-only pool the assistant uses.
func OpenDBWithDSN(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Printf("Error connecting to database: %v", err)
		return nil, err
	}

	log.Println("Database connection pool established")
	return db, nil
}
