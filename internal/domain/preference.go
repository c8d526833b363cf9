package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PreferenceMap is the per-user type→enabled map. Types absent from the map
// are enabled: suppression must be an explicit opt-out.
type PreferenceMap map[NotificationType]bool

// Enabled reports whether notifications of the given type may be created for
// the owning user. Unknown and unset types fail open.
func (p PreferenceMap) Enabled(t NotificationType) bool {
	if p == nil {
		return true
	}
	enabled, ok := p[t]
	if !ok {
		return true
	}
	return enabled
}

func (p PreferenceMap) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal(PreferenceMap{})
	}
	return json.Marshal(p)
}

func (p *PreferenceMap) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = PreferenceMap{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	}
	return fmt.Errorf("unsupported type %T for PreferenceMap", src)
}

type UpdatePreferencesInput struct {
	Preferences map[NotificationType]bool `json:"preferences"`
}
