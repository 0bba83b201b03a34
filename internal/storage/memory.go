package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"ride-compare-backend/internal/models"
)

// MemoryStorage is a process-lifetime backend backed by maps. Ids are
// assigned from monotonically increasing counters starting at 1.
type MemoryStorage struct {
	mu          sync.RWMutex
	users       map[int]models.User
	savedPlaces map[int]models.SavedPlace
	rideHistory map[int]models.RideHistory

	nextUserID  int
	nextPlaceID int
	nextRideID  int

	sessions *memorySessionStore
}

// NewMemoryStorage creates an empty in-memory backend
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:       make(map[int]models.User),
		savedPlaces: make(map[int]models.SavedPlace),
		rideHistory: make(map[int]models.RideHistory),
		nextUserID:  1,
		nextPlaceID: 1,
		nextRideID:  1,
		sessions:    newMemorySessionStore(),
	}
}

// GetUser retrieves a user by id
func (s *MemoryStorage) GetUser(_ context.Context, id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.users[id]; ok {
		return &user, nil
	}
	return nil, nil
}

// GetUserByUsername retrieves a user by username
func (s *MemoryStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

// CreateUser creates a new user with an assigned id
func (s *MemoryStorage) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return nil, ErrDuplicateUsername
		}
	}
	created := *user
	created.ID = s.nextUserID
	s.nextUserID++
	s.users[created.ID] = created
	return &created, nil
}

// UpdateProfilePic sets the profile picture URL for a user
func (s *MemoryStorage) UpdateProfilePic(_ context.Context, userID int, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return nil
	}
	user.ProfilePic = &url
	s.users[userID] = user
	return nil
}

// GetSavedPlaces retrieves all places owned by a user
func (s *MemoryStorage) GetSavedPlaces(_ context.Context, userID int) ([]models.SavedPlace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	places := []models.SavedPlace{}
	for _, place := range s.savedPlaces {
		if place.UserID == userID {
			places = append(places, place)
		}
	}
	sort.Slice(places, func(i, j int) bool { return places[i].ID < places[j].ID })
	return places, nil
}

// GetSavedPlace retrieves a place by id
func (s *MemoryStorage) GetSavedPlace(_ context.Context, id int) (*models.SavedPlace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if place, ok := s.savedPlaces[id]; ok {
		return &place, nil
	}
	return nil, nil
}

// CreateSavedPlace creates a new place with an assigned id
func (s *MemoryStorage) CreateSavedPlace(_ context.Context, place *models.SavedPlace) (*models.SavedPlace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *place
	created.ID = s.nextPlaceID
	s.nextPlaceID++
	s.savedPlaces[created.ID] = created
	return &created, nil
}

// DeleteSavedPlace deletes a place; deleting a missing id is a no-op
func (s *MemoryStorage) DeleteSavedPlace(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.savedPlaces, id)
	return nil
}

// GetRideHistory retrieves a user's rides, newest first
func (s *MemoryStorage) GetRideHistory(_ context.Context, userID int) ([]models.RideHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rides := []models.RideHistory{}
	for _, ride := range s.rideHistory {
		if ride.UserID == userID {
			rides = append(rides, ride)
		}
	}
	// id breaks ties so both backends agree on same-instant bookings
	sort.Slice(rides, func(i, j int) bool {
		if rides[i].Timestamp.Equal(rides[j].Timestamp) {
			return rides[i].ID > rides[j].ID
		}
		return rides[i].Timestamp.After(rides[j].Timestamp)
	})
	return rides, nil
}

// GetRide retrieves a ride by id
func (s *MemoryStorage) GetRide(_ context.Context, id int) (*models.RideHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ride, ok := s.rideHistory[id]; ok {
		return &ride, nil
	}
	return nil, nil
}

// CreateRideHistory creates a ride record with an assigned id and timestamp
func (s *MemoryStorage) CreateRideHistory(_ context.Context, ride *models.RideHistory) (*models.RideHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *ride
	created.ID = s.nextRideID
	s.nextRideID++
	created.Timestamp = time.Now().UTC()
	s.rideHistory[created.ID] = created
	return &created, nil
}

// Sessions returns the in-memory session store
func (s *MemoryStorage) Sessions() SessionStore {
	return s.sessions
}

// memorySessionStore keeps sessions in a map guarded by its own lock
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]models.Session)}
}

func (s *memorySessionStore) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok || session.Expired(time.Now()) {
		return nil, nil
	}
	return &session, nil
}

func (s *memorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *memorySessionStore) DeleteExpired(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
		}
	}
	return nil
}

// compile-time interface check
var _ Storage = (*MemoryStorage)(nil)
