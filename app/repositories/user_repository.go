package repositories

import (
	"strings"

	"github.com/dgraph-io/badger/v4"

	"inkwell/app/models"
)

// BadgerUserRepository implements UserRepository using BadgerDB.
// Email uniqueness is enforced with a secondary index key written in
// the same transaction as the user record.
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create persists a new user, failing with ErrDuplicateEmail when the
// email index already holds the address.
func (r *BadgerUserRepository) Create(user *models.User) error {
	email := normalizeEmail(user.Email)
	return r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(emailKey(email))
		if err == nil {
			return ErrDuplicateEmail
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		user.ID = id

		data, err := marshalEntity(user)
		if err != nil {
			return err
		}
		if err := txn.Set(userKey(user.ID), data); err != nil {
			return err
		}
		return txn.Set(emailKey(email), encodeID(user.ID))
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail resolves a user through the email index.
func (r *BadgerUserRepository) GetByEmail(email string) (*models.User, error) {
	var id int
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(emailKey(normalizeEmail(email)))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id = decodeID(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// Update overwrites an existing user. The email is immutable here, so
// the index does not move.
func (r *BadgerUserRepository) Update(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := userKey(user.ID)

		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := marshalEntity(user)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
