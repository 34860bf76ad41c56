package services

import (
	"io"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/app/repositories"
)

// UpdateProfileInput carries the billing/contact details a user maintains
// separately from their credentials. Every field is optional.
type UpdateProfileInput struct {
	FirstName string `json:"first_name" validate:"nullable,max=100"`
	LastName  string `json:"last_name" validate:"nullable,max=100"`
	Phone     string `json:"phone" validate:"nullable,max=30"`
	Address   string `json:"address" validate:"nullable,max=255"`
	City      string `json:"city" validate:"nullable,max=100"`
	Country   string `json:"country" validate:"nullable,max=100"`
	Postcode  string `json:"postcode" validate:"nullable,max=20"`
}

type ProfileService struct {
	users *repositories.UserRepository
}

func NewProfileService() *ProfileService {
	return &ProfileService{users: repositories.NewUserRepository()}
}

// Get returns the user's profile, creating an empty one on first access.
func (s *ProfileService) Get(userID uint) (models.Profile, error) {
	return s.users.ProfileByUser(userID)
}

func (s *ProfileService) Update(userID uint, input UpdateProfileInput) (models.Profile, error) {
	profile, err := s.users.ProfileByUser(userID)
	if err != nil {
		return models.Profile{}, err
	}

	profile.FirstName = input.FirstName
	profile.LastName = input.LastName
	profile.Phone = input.Phone
	profile.Address = input.Address
	profile.City = input.City
	profile.Country = input.Country
	profile.Postcode = input.Postcode

	if err := s.users.SaveProfile(&profile); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// UploadImage validates and stores a profile image, then records its path.
func (s *ProfileService) UploadImage(userID uint, filename string, size int64, r io.Reader) (models.Profile, error) {
	profile, err := s.users.ProfileByUser(userID)
	if err != nil {
		return models.Profile{}, err
	}

	stored, err := SaveImage("profiles", filename, size, r)
	if err != nil {
		return models.Profile{}, err
	}

	profile.ProfileImage = stored
	if err := s.users.SaveProfile(&profile); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}
