package storage

import (
	"context"
	"errors"
	"fmt"

	"ride-compare-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage is the durable backend. Ids come from serial columns and
// ride timestamps default to insertion time in the schema.
type PostgresStorage struct {
	db       *pgxpool.Pool
	sessions *postgresSessionStore
}

// NewPostgresStorage creates a backend on top of an existing pool
func NewPostgresStorage(db *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{
		db:       db,
		sessions: &postgresSessionStore{db: db},
	}
}

// GetUser retrieves a user by id
func (s *PostgresStorage) GetUser(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, username, password, email, phone, full_name, profile_pic
		FROM users
		WHERE id = $1
	`
	var user models.User
	err := s.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Password,
		&user.Email, &user.Phone, &user.FullName, &user.ProfilePic,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (s *PostgresStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password, email, phone, full_name, profile_pic
		FROM users
		WHERE username = $1
	`
	var user models.User
	err := s.db.QueryRow(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Password,
		&user.Email, &user.Phone, &user.FullName, &user.ProfilePic,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// CreateUser creates a new user; a unique violation on username maps to
// ErrDuplicateUsername
func (s *PostgresStorage) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (username, password, email, phone, full_name, profile_pic)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	created := *user
	err := s.db.QueryRow(ctx, query,
		user.Username, user.Password, user.Email, user.Phone, user.FullName, user.ProfilePic,
	).Scan(&created.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &created, nil
}

// UpdateProfilePic sets the profile picture URL for a user
func (s *PostgresStorage) UpdateProfilePic(ctx context.Context, userID int, url string) error {
	query := `UPDATE users SET profile_pic = $1 WHERE id = $2`
	_, err := s.db.Exec(ctx, query, url, userID)
	if err != nil {
		return fmt.Errorf("failed to update profile picture: %w", err)
	}
	return nil
}

// GetSavedPlaces retrieves all places owned by a user
func (s *PostgresStorage) GetSavedPlaces(ctx context.Context, userID int) ([]models.SavedPlace, error) {
	query := `
		SELECT id, user_id, name, address, latitude, longitude
		FROM saved_places
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get saved places: %w", err)
	}
	defer rows.Close()

	places := []models.SavedPlace{}
	for rows.Next() {
		var place models.SavedPlace
		if err := rows.Scan(
			&place.ID, &place.UserID, &place.Name, &place.Address,
			&place.Latitude, &place.Longitude,
		); err != nil {
			return nil, fmt.Errorf("failed to scan saved place: %w", err)
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating saved places: %w", err)
	}
	return places, nil
}

// GetSavedPlace retrieves a place by id
func (s *PostgresStorage) GetSavedPlace(ctx context.Context, id int) (*models.SavedPlace, error) {
	query := `
		SELECT id, user_id, name, address, latitude, longitude
		FROM saved_places
		WHERE id = $1
	`
	var place models.SavedPlace
	err := s.db.QueryRow(ctx, query, id).Scan(
		&place.ID, &place.UserID, &place.Name, &place.Address,
		&place.Latitude, &place.Longitude,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get saved place: %w", err)
	}
	return &place, nil
}

// CreateSavedPlace creates a new place with an assigned id
func (s *PostgresStorage) CreateSavedPlace(ctx context.Context, place *models.SavedPlace) (*models.SavedPlace, error) {
	query := `
		INSERT INTO saved_places (user_id, name, address, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	created := *place
	err := s.db.QueryRow(ctx, query,
		place.UserID, place.Name, place.Address, place.Latitude, place.Longitude,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create saved place: %w", err)
	}
	return &created, nil
}

// DeleteSavedPlace deletes a place; deleting a missing id is a no-op
func (s *PostgresStorage) DeleteSavedPlace(ctx context.Context, id int) error {
	_, err := s.db.Exec(ctx, `DELETE FROM saved_places WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete saved place: %w", err)
	}
	return nil
}

// GetRideHistory retrieves a user's rides, newest first
func (s *PostgresStorage) GetRideHistory(ctx context.Context, userID int) ([]models.RideHistory, error) {
	query := `
		SELECT id, user_id, pickup_location, dropoff_location,
		       pickup_latitude, pickup_longitude, dropoff_latitude, dropoff_longitude,
		       service, ride_type, fare, distance, duration,
		       timestamp, status, payment_method, driver_details
		FROM ride_history
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ride history: %w", err)
	}
	defer rows.Close()

	rides := []models.RideHistory{}
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, *ride)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ride history: %w", err)
	}
	return rides, nil
}

// GetRide retrieves a ride by id
func (s *PostgresStorage) GetRide(ctx context.Context, id int) (*models.RideHistory, error) {
	query := `
		SELECT id, user_id, pickup_location, dropoff_location,
		       pickup_latitude, pickup_longitude, dropoff_latitude, dropoff_longitude,
		       service, ride_type, fare, distance, duration,
		       timestamp, status, payment_method, driver_details
		FROM ride_history
		WHERE id = $1
	`
	ride, err := scanRide(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ride, nil
}

// CreateRideHistory creates a ride record; id and timestamp come from the
// database
func (s *PostgresStorage) CreateRideHistory(ctx context.Context, ride *models.RideHistory) (*models.RideHistory, error) {
	query := `
		INSERT INTO ride_history (
			user_id, pickup_location, dropoff_location,
			pickup_latitude, pickup_longitude, dropoff_latitude, dropoff_longitude,
			service, ride_type, fare, distance, duration, status,
			payment_method, driver_details
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, timestamp
	`
	created := *ride
	err := s.db.QueryRow(ctx, query,
		ride.UserID, ride.PickupLocation, ride.DropoffLocation,
		ride.PickupLatitude, ride.PickupLongitude, ride.DropoffLatitude, ride.DropoffLongitude,
		ride.Service, ride.RideType, ride.Fare, ride.Distance, ride.Duration, ride.Status,
		ride.PaymentMethod, ride.DriverDetails,
	).Scan(&created.ID, &created.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to create ride history: %w", err)
	}
	return &created, nil
}

// Sessions returns the postgres-backed session store
func (s *PostgresStorage) Sessions() SessionStore {
	return s.sessions
}

func scanRide(row pgx.Row) (*models.RideHistory, error) {
	var ride models.RideHistory
	err := row.Scan(
		&ride.ID, &ride.UserID, &ride.PickupLocation, &ride.DropoffLocation,
		&ride.PickupLatitude, &ride.PickupLongitude, &ride.DropoffLatitude, &ride.DropoffLongitude,
		&ride.Service, &ride.RideType, &ride.Fare, &ride.Distance, &ride.Duration,
		&ride.Timestamp, &ride.Status, &ride.PaymentMethod, &ride.DriverDetails,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan ride: %w", err)
	}
	return &ride, nil
}

// postgresSessionStore persists sessions in the sessions table
type postgresSessionStore struct {
	db *pgxpool.Pool
}

func (s *postgresSessionStore) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.Exec(ctx, query, session.ID, session.UserID, session.ExpiresAt, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (s *postgresSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	query := `
		SELECT id, user_id, expires_at, created_at
		FROM sessions
		WHERE id = $1 AND expires_at > now()
	`
	var session models.Session
	err := s.db.QueryRow(ctx, query, id).Scan(
		&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

func (s *postgresSessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *postgresSessionStore) DeleteExpired(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}

// compile-time interface check
var _ Storage = (*PostgresStorage)(nil)
