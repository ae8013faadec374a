// Package store keeps host-side companion state in a bbolt file: an
// address book of labeled accounts and a log of signed transaction
// hashes. The device itself never touches it.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketAccounts = []byte("accounts_by_address")
	bucketSigned   = []byte("signed_tx_by_hash")
)

// The longest strkey an address book entry can hold is a muxed account.
const maxAddressLength = 69

type DB struct {
	db *bolt.DB
}

// SignedRecord describes one transaction the companion signed.
type SignedRecord struct {
	Network  string `json:"network"`
	Summary  string `json:"summary"`
	SignedAt uint64 `json:"signed_at"`
}

func Open(path string) (*DB, error) {
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}
	d := &DB{db: bdb}
	if err := d.db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketAccounts, bucketSigned} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func validAddress(address string) error {
	if address == "" || len(address) > maxAddressLength {
		return fmt.Errorf("invalid address %q", address)
	}
	for i := 0; i < len(address); i++ {
		c := address[i]
		if (c < 'A' || c > 'Z') && (c < '2' || c > '7') {
			return fmt.Errorf("invalid address %q", address)
		}
	}
	return nil
}

// PutLabel stores or replaces the display label of an account.
func (d *DB) PutLabel(address, label string) error {
	if err := validAddress(address); err != nil {
		return err
	}
	if label == "" {
		return fmt.Errorf("label required")
	}
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketAccounts).Put([]byte(address), []byte(label))
	})
}

// Label returns the stored label of an account, if any.
func (d *DB) Label(address string) (string, bool, error) {
	var label string
	var found bool
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketAccounts).Get([]byte(address))
		if v != nil {
			label = string(v)
			found = true
		}
		return nil
	})
	return label, found, err
}

// DeleteLabel removes an account from the book. Unknown addresses are a
// no-op.
func (d *DB) DeleteLabel(address string) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketAccounts).Delete([]byte(address))
	})
}

// Labels returns the whole address book.
func (d *DB) Labels() (map[string]string, error) {
	out := make(map[string]string)
	err := d.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketAccounts).ForEach(func(k, v []byte) error {
			out[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RecordSigned logs a signed transaction hash.
func (d *DB) RecordSigned(hash [32]byte, rec SignedRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSigned).Put(hash[:], value)
	})
}

// Signed returns the record of a previously signed hash, if any.
func (d *DB) Signed(hash [32]byte) (*SignedRecord, bool, error) {
	var rec *SignedRecord
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketSigned).Get(hash[:])
		if v == nil {
			return nil
		}
		var r SignedRecord
		if err := json.Unmarshal(v, &r); err != nil {
			return fmt.Errorf("decode record: %w", err)
		}
		rec = &r
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return rec, rec != nil, nil
}
