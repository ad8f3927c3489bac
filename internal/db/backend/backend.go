// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package backend opens a set of stores from a connection string.
//
// Supported schemes:
//
//	kvdb://path/to/glossa.db   bbolt file, one bucket per store
//	jsondb://path/to/dir       posts.json, glossary.json, subscribers.json
package backend

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/db/jsondb"
	"github.com/quixsi/glossa/internal/db/kvdb"
)

// Database bundles the stores of one backend with its lifecycle.
type Database struct {
	db.PostStore
	db.TermStore
	db.SubscriberStore

	Scheme  string
	closeFN func() error
}

func (d *Database) Close() error {
	if d.closeFN == nil {
		return nil
	}
	return d.closeFN()
}

func Open(dsn string) (*Database, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse db connection string: %w", err)
	}
	path := u.Host + u.Path
	if path == "" {
		return nil, fmt.Errorf("db connection string %q has no path", dsn)
	}

	switch u.Scheme {
	case "kvdb":
		return openKVDB(path)
	case "jsondb":
		return openJSONDB(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", u.Scheme)
	}
}

func openKVDB(path string) (*Database, error) {
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database %s: %w", path, err)
	}
	d, err := newKVDB(bdb)
	if err != nil {
		bdb.Close()
		return nil, err
	}
	return d, nil
}

func newKVDB(bdb *bolt.DB) (*Database, error) {
	posts, err := kvdb.NewPostStore(bdb)
	if err != nil {
		return nil, fmt.Errorf("initialize post bucket: %w", err)
	}
	terms, err := kvdb.NewTermStore(bdb)
	if err != nil {
		return nil, fmt.Errorf("initialize glossary bucket: %w", err)
	}
	subs, err := kvdb.NewSubscriberStore(bdb)
	if err != nil {
		return nil, fmt.Errorf("initialize subscriber bucket: %w", err)
	}
	return &Database{
		PostStore:       posts,
		TermStore:       terms,
		SubscriberStore: subs,
		Scheme:          "kvdb",
		closeFN:         bdb.Close,
	}, nil
}

func openJSONDB(dir string) (*Database, error) {
	posts, err := jsondb.NewPostStore(filepath.Join(dir, "posts.json"))
	if err != nil {
		return nil, fmt.Errorf("initialize post store: %w", err)
	}
	terms, err := jsondb.NewTermStore(filepath.Join(dir, "glossary.json"))
	if err != nil {
		return nil, fmt.Errorf("initialize glossary store: %w", err)
	}
	subs, err := jsondb.NewSubscriberStore(filepath.Join(dir, "subscribers.json"))
	if err != nil {
		return nil, fmt.Errorf("initialize subscriber store: %w", err)
	}
	return &Database{
		PostStore:       posts,
		TermStore:       terms,
		SubscriberStore: subs,
		Scheme:          "jsondb",
	}, nil
}
