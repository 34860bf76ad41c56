package repositories

import (
	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/orm"
)

// UserRepository handles database operations for User and Profile.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return orm.DB().Create(user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return orm.DB().Save(user)
}

// ProfileByUser returns the user's profile, creating an empty one on first
// access.
func (r *UserRepository) ProfileByUser(userID uint) (models.Profile, error) {
	var profile models.Profile
	err := orm.DB().Model(&models.Profile{}).Where("user_id = ?", userID).First(&profile)
	if err == nil {
		return profile, nil
	}

	profile = models.Profile{UserID: userID}
	if err := orm.DB().Create(&profile); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// SaveProfile persists profile changes.
func (r *UserRepository) SaveProfile(profile *models.Profile) error {
	return orm.DB().Save(profile)
}
