package repositories

import (
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"inkwell/app/models"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create assigns the next ID and persists a new post.
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(post.ID), data)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves matching posts in creation order, paginated by
// limit/offset applied after filtering.
func (r *BadgerPostRepository) List(filter PostFilter, limit, offset int) ([]*models.Post, error) {
	matched, err := r.scan(filter)
	if err != nil {
		return nil, err
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if offset >= len(matched) {
		return []*models.Post{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

// ListNewestFirst retrieves every post ordered by creation time,
// newest first, for moderation views.
func (r *BadgerPostRepository) ListNewestFirst() ([]*models.Post, error) {
	matched, err := r.scan(PostFilter{})
	if err != nil {
		return nil, err
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

// Count returns the number of posts matching the filter.
func (r *BadgerPostRepository) Count(filter PostFilter) (int, error) {
	matched, err := r.scan(filter)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

// Update overwrites an existing post.
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := postKey(post.ID)

		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete removes a post permanently. There is no tombstone.
func (r *BadgerPostRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := postKey(id)

		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return txn.Delete(key)
	})
}

func (r *BadgerPostRepository) scan(filter PostFilter) ([]*models.Post, error) {
	var matched []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			if matches(&post, filter) {
				p := post
				matched = append(matched, &p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matched, nil
}

func matches(post *models.Post, filter PostFilter) bool {
	if filter.Status != nil && post.Status != *filter.Status {
		return false
	}
	if filter.Category != nil && !strings.EqualFold(string(post.Category), string(*filter.Category)) {
		return false
	}
	return true
}
