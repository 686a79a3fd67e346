package service

import (
	"github.com/boltdb/bolt"
	jsoniter "github.com/json-iterator/go"
	"github.com/krex38/subgate/db"
	"github.com/krex38/subgate/model"
)

// GetSetting returns the persisted verification settings, or the defaults
// when nothing was saved yet.
func GetSetting() (*model.Setting, error) {
	var setting model.Setting
	err := db.DB().View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(model.BucketSetting))
		if bkt == nil {
			return db.ErrKeyNotFound
		}
		val := bkt.Get([]byte(model.KeySetting))
		if val == nil {
			return db.ErrKeyNotFound
		}
		return jsoniter.Unmarshal(val, &setting)
	})
	if err == db.ErrKeyNotFound {
		return &model.Setting{
			ChannelTitle:    "Krex",
			ChannelVariants: []string{"krex", "kreks"},
			RequiredActions: model.RequiredActions{Subscribe: true},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// SaveSetting persists the settings record; the pipeline never mutates it in
// place.
func SaveSetting(setting *model.Setting) error {
	return db.DB().Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(model.BucketSetting))
		if err != nil {
			return err
		}
		b, err := jsoniter.Marshal(setting)
		if err != nil {
			return err
		}
		return bkt.Put([]byte(model.KeySetting), b)
	})
}
