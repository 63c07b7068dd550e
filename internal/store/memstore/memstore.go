// Package memstore is an in-memory, concurrency-safe implementation of the
// store interfaces. It backs the service tests and can run the server
// without a database for local experiments.
package memstore

import (
	"context"
	"sort"
	"sync"

	"charsheet/backend/internal/models"
	"charsheet/backend/internal/store"
)

// Store implements store.UserStore, store.CharacterStore and store.ItemStore
// over plain maps.
type Store struct {
	mu sync.RWMutex

	users      map[uint]models.User
	characters map[uint]models.Character
	items      map[uint]models.Item

	nextUserID      uint
	nextCharacterID uint
	nextItemID      uint
}

func New() *Store {
	return &Store{
		users:      make(map[uint]models.User),
		characters: make(map[uint]models.Character),
		items:      make(map[uint]models.Item),
	}
}

// --- users ---

func (s *Store) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return store.ErrDuplicateKey
		}
	}
	s.nextUserID++
	user.ID = s.nextUserID
	s.users[user.ID] = *user
	return nil
}

func (s *Store) FindByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) FindByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.RefreshToken != nil && *u.RefreshToken == token {
			user := u
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) Save(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return store.ErrNotFound
	}
	for id, u := range s.users {
		if id != user.ID && u.Email == user.Email {
			return store.ErrDuplicateKey
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *Store) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// --- characters ---

func (s *Store) CreateCharacter(ctx context.Context, character *models.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCharacterID++
	character.ID = s.nextCharacterID
	stored := *character
	stored.Items = nil
	s.characters[character.ID] = stored
	return nil
}

func (s *Store) FindCharacterByID(ctx context.Context, id, userID uint) (*models.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.characters[id]
	if !ok || c.UserID != userID {
		return nil, store.ErrNotFound
	}
	character := c
	character.Items = s.itemsOfLocked(id)
	return &character, nil
}

func (s *Store) ListCharactersByUser(ctx context.Context, userID uint, page, limit int) ([]models.CharacterSummary, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []models.Character
	for _, c := range s.characters {
		if c.UserID == userID {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	summaries := make([]models.CharacterSummary, 0, end-start)
	for _, c := range all[start:end] {
		summaries = append(summaries, c.Summary())
	}
	return summaries, total, nil
}

func (s *Store) ListCharacterIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []uint
	for id, c := range s.characters {
		if c.UserID == userID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *Store) CharacterExists(ctx context.Context, id, userID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.characters[id]
	return ok && c.UserID == userID, nil
}

func (s *Store) SaveCharacter(ctx context.Context, character *models.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.characters[character.ID]; !ok {
		return store.ErrNotFound
	}
	stored := *character
	stored.Items = nil
	s.characters[character.ID] = stored
	return nil
}

func (s *Store) DeleteCharacter(ctx context.Context, id, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.characters[id]
	if !ok || c.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.characters, id)
	return nil
}

// --- items ---

func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextItemID++
	item.ID = s.nextItemID
	s.items[item.ID] = *item
	return nil
}

func (s *Store) FindItemByID(ctx context.Context, itemID, characterID uint) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.items[itemID]
	if !ok || i.CharacterID != characterID {
		return nil, store.ErrNotFound
	}
	item := i
	return &item, nil
}

func (s *Store) ListItemsByCharacter(ctx context.Context, characterID uint) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.itemsOfLocked(characterID), nil
}

func (s *Store) SaveItem(ctx context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ID]; !ok {
		return store.ErrNotFound
	}
	s.items[item.ID] = *item
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, itemID, characterID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.items[itemID]
	if !ok || i.CharacterID != characterID {
		return store.ErrNotFound
	}
	delete(s.items, itemID)
	return nil
}

func (s *Store) DeleteItemsByCharacter(ctx context.Context, characterID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, i := range s.items {
		if i.CharacterID == characterID {
			delete(s.items, id)
		}
	}
	return nil
}

// itemsOfLocked returns the items of a character ordered by id. Callers must
// hold at least the read lock.
func (s *Store) itemsOfLocked(characterID uint) []models.Item {
	items := make([]models.Item, 0)
	for _, i := range s.items {
		if i.CharacterID == characterID {
			items = append(items, i)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// Interface views. A single Store backs all three interfaces; the wrappers
// resolve the method-name overlap between them.

type userView struct{ *Store }
type characterView struct{ *Store }
type itemView struct{ *Store }

func (v characterView) Create(ctx context.Context, c *models.Character) error {
	return v.CreateCharacter(ctx, c)
}
func (v characterView) FindByID(ctx context.Context, id, userID uint) (*models.Character, error) {
	return v.FindCharacterByID(ctx, id, userID)
}
func (v characterView) ListByUser(ctx context.Context, userID uint, page, limit int) ([]models.CharacterSummary, int64, error) {
	return v.ListCharactersByUser(ctx, userID, page, limit)
}
func (v characterView) ListIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	return v.ListCharacterIDsByUser(ctx, userID)
}
func (v characterView) Exists(ctx context.Context, id, userID uint) (bool, error) {
	return v.CharacterExists(ctx, id, userID)
}
func (v characterView) Save(ctx context.Context, c *models.Character) error {
	return v.SaveCharacter(ctx, c)
}
func (v characterView) Delete(ctx context.Context, id, userID uint) error {
	return v.DeleteCharacter(ctx, id, userID)
}

func (v itemView) Create(ctx context.Context, i *models.Item) error {
	return v.CreateItem(ctx, i)
}
func (v itemView) FindByID(ctx context.Context, itemID, characterID uint) (*models.Item, error) {
	return v.FindItemByID(ctx, itemID, characterID)
}
func (v itemView) ListByCharacter(ctx context.Context, characterID uint) ([]models.Item, error) {
	return v.ListItemsByCharacter(ctx, characterID)
}
func (v itemView) Save(ctx context.Context, i *models.Item) error {
	return v.SaveItem(ctx, i)
}
func (v itemView) Delete(ctx context.Context, itemID, characterID uint) error {
	return v.DeleteItem(ctx, itemID, characterID)
}
func (v itemView) DeleteByCharacter(ctx context.Context, characterID uint) error {
	return v.DeleteItemsByCharacter(ctx, characterID)
}

// Users returns the store.UserStore view.
func (s *Store) Users() store.UserStore { return userView{s} }

// Characters returns the store.CharacterStore view.
func (s *Store) Characters() store.CharacterStore { return characterView{s} }

// Items returns the store.ItemStore view.
func (s *Store) Items() store.ItemStore { return itemView{s} }
