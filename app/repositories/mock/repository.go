package mock

import (
	"sort"
	"strings"
	"sync"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// In-memory repositories for service tests.

type PostRepository struct {
	posts  map[int]*models.Post
	nextID int
	mutex  sync.RWMutex
}

type UserRepository struct {
	users  map[int]*models.User
	nextID int
	mutex  sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int]*models.Post),
		nextID: 1,
	}
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[int]*models.User),
		nextID: 1,
	}
}

// PostRepository implementation

func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.ID = m.nextID
	m.nextID++
	clone := *post
	m.posts[post.ID] = &clone
	return nil
}

func (m *PostRepository) GetByID(id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	clone := *post
	return &clone, nil
}

func (m *PostRepository) List(filter repositories.PostFilter, limit, offset int) ([]*models.Post, error) {
	matched := m.scan(filter)
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

func (m *PostRepository) ListNewestFirst() ([]*models.Post, error) {
	matched := m.scan(repositories.PostFilter{})
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (m *PostRepository) Count(filter repositories.PostFilter) (int, error) {
	return len(m.scan(filter)), nil
}

func (m *PostRepository) Update(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	clone := *post
	m.posts[post.ID] = &clone
	return nil
}

func (m *PostRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *PostRepository) scan(filter repositories.PostFilter) []*models.Post {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var matched []*models.Post
	for _, post := range m.posts {
		if filter.Status != nil && post.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && !strings.EqualFold(string(post.Category), string(*filter.Category)) {
			continue
		}
		clone := *post
		matched = append(matched, &clone)
	}
	return matched
}

// UserRepository implementation

func (m *UserRepository) Create(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, strings.TrimSpace(user.Email)) {
			return repositories.ErrDuplicateEmail
		}
	}
	user.ID = m.nextID
	m.nextID++
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *UserRepository) GetByID(id int) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *UserRepository) GetByEmail(email string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, user := range m.users {
		if strings.EqualFold(user.Email, strings.TrimSpace(email)) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) Update(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.users[user.ID]; !exists {
		return repositories.ErrNotFound
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

// Delete removes a user, for exercising dangling-owner paths in tests.
func (m *UserRepository) Delete(id int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.users, id)
}
