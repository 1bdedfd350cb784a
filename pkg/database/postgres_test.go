package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{
		Host:     "db.local",
		Port:     "5433",
		User:     "library",
		Password: "s3cret",
		DBName:   "librarydb",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db.local port=5433 user=library password=s3cret dbname=librarydb sslmode=disable",
		cfg.dsn(),
	)
}
