package db

import (
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/hadoopsh/hadoopsh/types"
	"github.com/hadoopsh/hadoopsh/utils"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrProfileNotFound = errors.New("profile not found")

type DB struct {
	logger *zerolog.Logger
	orm    *gorm.DB
}

// NewDB opens the sqlite profile store at path, creating its directory.
func NewDB(path string) (*DB, error) {
	log := utils.GetLogger()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create profile folder")
	}

	orm, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	if err := orm.AutoMigrate(&types.Profile{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return &DB{
		logger: &log,
		orm:    orm,
	}, nil
}

// SaveProfile creates the profile or replaces the one with the same
// service and name.
func (db *DB) SaveProfile(profile *types.Profile) (*types.Profile, error) {
	var existing types.Profile
	result := db.orm.Where("service = ? AND name = ?", profile.Service, profile.Name).Limit(1).Find(&existing)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected > 0 {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		profile.ProfileID = existing.ProfileID
		if err := db.orm.Save(profile).Error; err != nil {
			return nil, err
		}
		db.logger.Debug().Str("profile", profile.Name).Msg("updated profile")
		return profile, nil
	}

	profile.ProfileID = xid.New().String()
	if err := db.orm.Create(profile).Error; err != nil {
		return nil, err
	}
	db.logger.Debug().Str("profile", profile.Name).Str("id", profile.ProfileID).Msg("created profile")
	return profile, nil
}

func (db *DB) GetProfile(service, name string) (*types.Profile, error) {
	var profile types.Profile
	result := db.orm.Where("service = ? AND name = ?", service, name).Limit(1).Find(&profile)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errors.Wrapf(ErrProfileNotFound, "%s/%s", service, name)
	}
	return &profile, nil
}

// ListProfiles lists the profiles of one service, or all of them when
// service is empty.
func (db *DB) ListProfiles(service string) ([]types.Profile, error) {
	var profiles []types.Profile
	query := db.orm.Order("service, name")
	if service != "" {
		query = query.Where("service = ?", service)
	}
	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// DeleteProfile removes the profile for good; names are reused.
func (db *DB) DeleteProfile(service, name string) error {
	result := db.orm.Unscoped().Where("service = ? AND name = ?", service, name).Delete(&types.Profile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.Wrapf(ErrProfileNotFound, "%s/%s", service, name)
	}
	return nil
}
