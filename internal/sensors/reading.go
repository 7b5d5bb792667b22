package sensors

import (
	"discogswatch/internal/models"
)

// Reading is a sensor's current state as served over the API.
type Reading struct {
	Key         string         `json:"key"`
	Name        string         `json:"name"`
	Icon        string         `json:"icon"`
	Unit        string         `json:"unit,omitempty"`
	DeviceClass string         `json:"device_class,omitempty"`
	Value       any            `json:"value"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// Read evaluates one descriptor against the current snapshot. namePrefix
// is the configured display prefix ("Discogs" by default). Attributes are
// present only when the value is known; the random record additionally
// carries its cached descriptive fields while a pick exists.
func Read(d Descriptor, namePrefix string, snap *models.AccountSnapshot, pick *models.RandomPick) Reading {
	reading := Reading{
		Key:         d.Key,
		Name:        namePrefix + " " + d.Name,
		Icon:        d.Icon,
		Unit:        d.Unit(snap),
		DeviceClass: d.DeviceClass,
		Value:       d.Value(snap, pick),
	}

	if reading.Value == nil {
		return reading
	}

	reading.Attributes = map[string]any{
		"identity": snap.Username,
	}
	if d.Key == KeyRandom && pick != nil {
		reading.Attributes["cat_no"] = pick.CatNo
		reading.Attributes["cover_image"] = pick.CoverImage
		reading.Attributes["format"] = pick.Format
		reading.Attributes["label"] = pick.Label
		reading.Attributes["released"] = pick.Released
	}
	return reading
}

// ReadAll evaluates the given descriptors in catalog order.
func ReadAll(descriptors []Descriptor, namePrefix string, snap *models.AccountSnapshot, pick *models.RandomPick) []Reading {
	readings := make([]Reading, len(descriptors))
	for i, d := range descriptors {
		readings[i] = Read(d, namePrefix, snap, pick)
	}
	return readings
}
