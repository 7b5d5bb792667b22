// Package sensors defines the metric catalog: one descriptor per exposed
// value, each pairing presentation metadata with a function that derives
// the value from the current account snapshot. Descriptors are plain
// records; they hold no state and perform no remote calls.
package sensors

import (
	"github.com/sirupsen/logrus"

	"discogswatch/internal/models"
)

const (
	KeyCollection  = "collection"
	KeyWantlist    = "wantlist"
	KeyVinyl       = "vinyl"
	KeyCD          = "cd"
	KeyValueMin    = "collection_value_min"
	KeyValueMedian = "collection_value_median"
	KeyValueMax    = "collection_value_max"
	KeyRandom      = "random_record"
)

const (
	IconRecord = "mdi:album"
	IconPlayer = "mdi:record-player"
	IconCash   = "mdi:cash"

	UnitRecords = "records"

	DeviceClassMonetary = "monetary"
)

// Descriptor describes one sensor: identity, presentation metadata, and
// how to derive its value from the shared snapshot. The snapshot is
// read-only from the descriptor's point of view.
type Descriptor struct {
	Key         string
	Name        string
	Icon        string
	DeviceClass string

	// unit is static for countable sensors; monetary sensors take the
	// snapshot's currency symbol instead.
	unit string

	value func(snap *models.AccountSnapshot, pick *models.RandomPick) any
}

// Unit returns the sensor's unit of measurement, which for monetary
// sensors is the currency symbol detected at snapshot time.
func (d Descriptor) Unit(snap *models.AccountSnapshot) string {
	if d.DeviceClass == DeviceClassMonetary && snap != nil {
		return snap.CurrencySymbol
	}
	return d.unit
}

// Value derives the sensor's current value. It returns nil when the value
// is unknown (empty collection for the random sensor, unparsable
// valuation string for the monetary ones).
func (d Descriptor) Value(snap *models.AccountSnapshot, pick *models.RandomPick) any {
	if snap == nil {
		return nil
	}
	return d.value(snap, pick)
}

func monetaryValue(key string, pick func(*models.AccountSnapshot) string) func(*models.AccountSnapshot, *models.RandomPick) any {
	return func(snap *models.AccountSnapshot, _ *models.RandomPick) any {
		raw := pick(snap)
		parsed, ok := ParseValueString(raw)
		if !ok {
			logrus.WithFields(logrus.Fields{
				"sensor": key,
				"value":  raw,
			}).Error("Could not parse collection value string")
			return nil
		}
		return parsed
	}
}

// All is the full sensor catalog in presentation order.
var All = []Descriptor{
	{
		Key:  KeyCollection,
		Name: "Collection",
		Icon: IconRecord,
		unit: UnitRecords,
		value: func(snap *models.AccountSnapshot, _ *models.RandomPick) any {
			return snap.CollectionCount
		},
	},
	{
		Key:  KeyWantlist,
		Name: "Wantlist",
		Icon: IconRecord,
		unit: UnitRecords,
		value: func(snap *models.AccountSnapshot, _ *models.RandomPick) any {
			return snap.WantlistCount
		},
	},
	{
		Key:  KeyVinyl,
		Name: "Vinyl in Collection",
		Icon: IconRecord,
		unit: UnitRecords,
		value: func(snap *models.AccountSnapshot, _ *models.RandomPick) any {
			return snap.VinylCount
		},
	},
	{
		Key:  KeyCD,
		Name: "CDs in Collection",
		Icon: IconRecord,
		unit: UnitRecords,
		value: func(snap *models.AccountSnapshot, _ *models.RandomPick) any {
			return snap.CDCount
		},
	},
	{
		Key:         KeyValueMin,
		Name:        "Collection Value (Min)",
		Icon:        IconCash,
		DeviceClass: DeviceClassMonetary,
		value:       monetaryValue(KeyValueMin, func(s *models.AccountSnapshot) string { return s.ValueMin }),
	},
	{
		Key:         KeyValueMedian,
		Name:        "Collection Value (Median)",
		Icon:        IconCash,
		DeviceClass: DeviceClassMonetary,
		value:       monetaryValue(KeyValueMedian, func(s *models.AccountSnapshot) string { return s.ValueMedian }),
	},
	{
		Key:         KeyValueMax,
		Name:        "Collection Value (Max)",
		Icon:        IconCash,
		DeviceClass: DeviceClassMonetary,
		value:       monetaryValue(KeyValueMax, func(s *models.AccountSnapshot) string { return s.ValueMax }),
	},
	{
		Key:  KeyRandom,
		Name: "Random Record",
		Icon: IconPlayer,
		value: func(_ *models.AccountSnapshot, pick *models.RandomPick) any {
			if pick == nil {
				return nil
			}
			return pick.State
		},
	},
}

// Lookup finds a descriptor by key.
func Lookup(key string) (Descriptor, bool) {
	for _, d := range All {
		if d.Key == key {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Keys lists every known sensor key in catalog order.
func Keys() []string {
	keys := make([]string, len(All))
	for i, d := range All {
		keys[i] = d.Key
	}
	return keys
}
