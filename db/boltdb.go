package db

import (
	"fmt"
	"path"

	"github.com/boltdb/bolt"
	"github.com/krex38/subgate/pkg/log"
)

var (
	ErrKeyNotFound = fmt.Errorf("key not found")

	db *bolt.DB
)

func InitDB(confDir string) {
	var err error
	db, err = bolt.Open(path.Join(confDir, "subgate.db"), 0600, nil)
	if err != nil {
		log.Fatal("InitDB: %v", err)
	}
}

func DB() *bolt.DB {
	return db
}
