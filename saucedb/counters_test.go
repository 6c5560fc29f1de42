package saucedb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	return db
}

func TestGetCountersWithoutSavedValue(t *testing.T) {
	db := openTestDB(t)

	counters, err := db.GetCounters()
	require.NoError(t, err)
	assert.Nil(t, counters)
}

func TestCountersRoundTrip(t *testing.T) {
	db := openTestDB(t)

	saved := &Counters{
		Served:         12,
		TomatoServed:   7,
		MustardServed:  5,
		LastDispenseAt: 1555000000.25,
	}

	require.NoError(t, db.SetCounters(saved))

	loaded, err := db.GetCounters()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestSetCountersOverwritesInFull(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SetCounters(&Counters{Served: 3, TomatoServed: 3}))
	require.NoError(t, db.SetCounters(&Counters{Served: 1, MustardServed: 1}))

	loaded, err := db.GetCounters()
	require.NoError(t, err)
	assert.Equal(t, &Counters{Served: 1, MustardServed: 1}, loaded)
}

func TestGetCountersWithCorruptValue(t *testing.T) {
	db := openTestDB(t)

	err := db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(statsBucket)
		if err != nil {
			return err
		}

		return bucket.Put(countersKey, []byte("{not json"))
	})
	require.NoError(t, err)

	_, err = db.GetCounters()
	assert.Error(t, err)
}
