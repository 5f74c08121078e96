package db_models

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleTherapist Role = "therapist"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleTherapist:
		return true
	}
	return false
}

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Preferences holds the known settings explicitly; anything else the client
// sends lands in Extra as plain strings.
type Preferences struct {
	Theme         Theme             `json:"theme,omitempty"`
	Notifications bool              `json:"notifications"`
	ReminderTime  string            `json:"reminder_time,omitempty"` // "HH:MM"
	Language      string            `json:"language,omitempty"`
	Extra         map[string]string `json:"extra,omitempty"`
}

var knownPreferenceKeys = map[string]bool{
	"theme": true, "notifications": true, "reminder_time": true, "language": true, "extra": true,
}

// UnmarshalJSON moves unknown top-level keys into Extra. Non-string values
// are kept as their raw JSON text.
func (p *Preferences) UnmarshalJSON(data []byte) error {
	type plain Preferences
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if knownPreferenceKeys[strings.ToLower(key)] {
			continue
		}
		if known.Extra == nil {
			known.Extra = make(map[string]string)
		}
		if _, taken := known.Extra[key]; taken {
			continue
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			s = string(value)
		}
		known.Extra[key] = s
	}
	*p = Preferences(known)
	return nil
}

func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeSystem, Notifications: true, Language: "en"}
}

type Account struct {
	BaseModel
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"type:varchar(20);not null;default:user"`
	Preferences  datatypes.JSONType[Preferences]

	MoodEntries    []MoodEntry    `gorm:"foreignKey:OwnerID"`
	JournalEntries []JournalEntry `gorm:"foreignKey:OwnerID"`
}
