package repositories

import (
	"context"
	"time"

	"shopfront/models"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	query := `SELECT id, email, password, role, created_at, updated_at FROM users WHERE email = $1`

	var u models.User
	err := models.DB.QueryRow(context.Background(), query, email).Scan(
		&u.ID, &u.Email, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id int) (*models.User, error) {
	query := `SELECT id, email, password, role, created_at, updated_at FROM users WHERE id = $1`

	var u models.User
	err := models.DB.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.Email, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(user *models.User) error {
	query := `INSERT INTO users (email, password, role, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	now := time.Now()
	return models.DB.QueryRow(context.Background(), query,
		user.Email, user.Password, user.Role, now, now,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) CreateProfile(profile *models.UserProfile) error {
	query := `INSERT INTO user_profiles (user_id, full_name, phone, address, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	return models.DB.QueryRow(context.Background(), query,
		profile.UserID, profile.FullName, profile.Phone, profile.Address, now, now,
	).Scan(&profile.ID)
}

func (r *UserRepository) GetProfile(userID int) (*models.UserProfile, error) {
	query := `SELECT id, user_id, COALESCE(full_name,''), COALESCE(phone,''), COALESCE(address,''), created_at, updated_at
	          FROM user_profiles WHERE user_id = $1`

	var p models.UserProfile
	err := models.DB.QueryRow(context.Background(), query, userID).Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *UserRepository) UpdateProfile(profile *models.UserProfile) error {
	query := `UPDATE user_profiles SET full_name = $1, phone = $2, address = $3, updated_at = $4 WHERE user_id = $5`
	_, err := models.DB.Exec(context.Background(), query,
		profile.FullName, profile.Phone, profile.Address, time.Now(), profile.UserID,
	)
	return err
}

func (r *UserRepository) GetUserWithProfile(userID int) (*models.UserWithProfile, error) {
	query := `SELECT u.id, u.email, u.role, COALESCE(p.full_name,''), COALESCE(p.phone,''), COALESCE(p.address,''), u.created_at
	          FROM users u LEFT JOIN user_profiles p ON u.id = p.user_id WHERE u.id = $1`

	var u models.UserWithProfile
	err := models.DB.QueryRow(context.Background(), query, userID).Scan(
		&u.ID, &u.Email, &u.Role, &u.FullName, &u.Phone, &u.Address, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
