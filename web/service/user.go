package service

import (
	"errors"

	"shopfront/database"
	"shopfront/database/model"
	"shopfront/logger"
	"shopfront/util/crypto"
)

var (
	// ErrDuplicateUser is returned when the username or email uniqueness
	// constraint fires on registration.
	ErrDuplicateUser = errors.New("username or email already taken")
)

type UserService struct{}

// CreateUser inserts a user with an already-hashed password. Uniqueness races
// between concurrent registrations are resolved by the store's constraint:
// exactly one insert wins.
func (s *UserService) CreateUser(username, email, passwordHash string) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{
		Username: username,
		Email:    email,
		Password: passwordHash,
	}
	if err := db.Create(user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return user, nil
}

// Register hashes the raw password and creates the account. Field-level
// validation happens in the forms layer before this is called.
func (s *UserService) Register(username, email, password string) (*model.User, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.CreateUser(username, email, hash)
}

func (s *UserService) GetUserByEmail(email string) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", email).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserById(id int) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser verifies credentials and returns the user, or nil on any
// mismatch. An unknown email and a wrong password are indistinguishable to
// the caller.
func (s *UserService) CheckUser(email, password string) *model.User {
	user, err := s.GetUserByEmail(email)
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}
	return user
}
