package types

import (
	"fmt"

	"gorm.io/gorm"
)

// Profile is a saved set of connection settings for one shell. Passwords
// and tokens are never stored.
type Profile struct {
	gorm.Model
	ProfileID string `json:"profile_id"`
	Name      string `json:"name" gorm:"uniqueIndex:idx_profile_service_name"`
	Service   string `json:"service" gorm:"uniqueIndex:idx_profile_service_name"`
	Prefix    string `json:"prefix"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
	User      string `json:"user"`
	Cluster   string `json:"cluster"`
}

// BaseURL is prefix://host:port of the saved endpoint.
func (p *Profile) BaseURL() string {
	return fmt.Sprintf("%s://%s:%d", p.Prefix, p.Host, p.Port)
}
