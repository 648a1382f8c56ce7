package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Database wraps the bolthold store holding the media library.
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// newMediaID generates the opaque id written onto NFC tags. 8 random
// bytes keep the /play URL short enough for small NTAG stickers.
func newMediaID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate media id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// CreateMedia stores a new library entry and returns it with its
// generated id.
func (db *Database) CreateMedia(owner string, ref MediaReference) (*StoredMedia, error) {
	id, err := newMediaID()
	if err != nil {
		return nil, err
	}

	media := &StoredMedia{
		ID:        id,
		Owner:     owner,
		Ref:       ref,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.store.Insert(media.ID, media); err != nil {
		return nil, fmt.Errorf("failed to insert media: %w", err)
	}
	return media, nil
}

// GetMediaByID retrieves a library entry by its opaque id
func (db *Database) GetMediaByID(id string) (*StoredMedia, error) {
	var media StoredMedia
	err := db.store.Get(id, &media)
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// GetMediasByOwner retrieves all library entries for an owner tag
func (db *Database) GetMediasByOwner(owner string) ([]*StoredMedia, error) {
	var medias []*StoredMedia
	err := db.store.Find(&medias, bolthold.Where("Owner").Eq(owner))
	return medias, err
}

// GetAllMedias retrieves all library entries
func (db *Database) GetAllMedias() ([]*StoredMedia, error) {
	var medias []*StoredMedia
	err := db.store.Find(&medias, nil)
	return medias, err
}

// UpdateMediaTitle renames a library entry. The engine never calls this;
// only the API layer does, on behalf of the user.
func (db *Database) UpdateMediaTitle(id, title string) (*StoredMedia, error) {
	media, err := db.GetMediaByID(id)
	if err != nil {
		return nil, err
	}

	media.Ref.Title = title
	media.UpdatedAt = time.Now()
	if err := db.store.Update(media.ID, media); err != nil {
		return nil, fmt.Errorf("failed to update media: %w", err)
	}
	return media, nil
}

// DeleteMedia deletes a library entry by id
func (db *Database) DeleteMedia(id string) error {
	return db.store.Delete(id, &StoredMedia{})
}

// IsNotFound reports whether an error from the store means the record
// does not exist.
func IsNotFound(err error) bool {
	return err == bolthold.ErrNotFound
}
