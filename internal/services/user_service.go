package services

import (
	"superstore/internal/models"
	"superstore/internal/repositories"
)

// UserService is the admin surface over user accounts. Password changes
// go through AuthService; this service never touches the hash.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetAll retrieves all users with passwords cleared.
func (s *UserService) GetAll() ([]models.User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// GetByID retrieves a single user with the password cleared.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// Update overwrites the profile fields of a user, preserving the stored
// password hash and admin flag.
func (s *UserService) Update(id uint, update *models.User) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	user.FirstName = update.FirstName
	user.LastName = update.LastName
	user.Email = update.Email
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// Delete removes a user by their ID.
func (s *UserService) Delete(id uint) error {
	return s.repo.Delete(id)
}
