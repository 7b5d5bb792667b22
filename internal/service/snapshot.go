// Package service owns all Discogs traffic: the per-cycle snapshot build,
// the random record lookup, and the poller that drives both on a schedule.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"discogswatch/internal/discogs"
	"discogswatch/internal/metrics"
	"discogswatch/internal/models"
)

const (
	defaultValueString    = "0.00"
	defaultCurrencySymbol = "$"

	formatVinyl = "vinyl"
	formatCD    = "cd"
)

// BuildSnapshot fetches the account state and derives one AccountSnapshot.
// A rejected token is the only fatal condition; every other upstream
// failure is logged and resolved to defaulted fields so partial data still
// produces sensors.
func BuildSnapshot(ctx context.Context, client *discogs.Client, log logrus.FieldLogger) (*models.AccountSnapshot, error) {
	snap := &models.AccountSnapshot{
		ValueMin:       defaultValueString,
		ValueMedian:    defaultValueString,
		ValueMax:       defaultValueString,
		CurrencySymbol: defaultCurrencySymbol,
		FetchedAt:      time.Now(),
	}

	identity, err := client.Identity(ctx)
	if err != nil {
		if discogs.IsUnauthorized(err) {
			return nil, fmt.Errorf("discogs API token rejected: %w", err)
		}
		metrics.FetchErrors.WithLabelValues("identity").Inc()
		log.WithError(err).Error("Failed to fetch Discogs identity, continuing with defaults")
		return snap, nil
	}

	snap.Username = identity.Username
	snap.Name = identity.Name
	snap.CollectionCount = identity.NumCollection
	snap.WantlistCount = identity.NumWantlist
	snap.CurrencySymbol = resolveCurrencySymbol(identity, log)

	folders, err := client.Folders(ctx, identity.Username)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("folders").Inc()
		log.WithError(err).Error("Failed to fetch collection folders")
	}
	snap.Folders = folders

	if value, err := client.CollectionValue(ctx, identity.Username); err != nil {
		metrics.FetchErrors.WithLabelValues("collection_value").Inc()
		log.WithError(err).Error("Failed to fetch collection value, defaulting figures")
	} else {
		snap.ValueMin = value.Minimum
		snap.ValueMedian = value.Median
		snap.ValueMax = value.Maximum
	}

	if snap.CollectionCount > 0 && len(snap.Folders) > 0 {
		classifyFormats(ctx, client, snap, log)
	}

	return snap, nil
}

// resolveCurrencySymbol picks the account currency: the typed profile
// field first, then the same key in the raw profile map, then "$".
func resolveCurrencySymbol(identity *models.Identity, log logrus.FieldLogger) string {
	if identity.CurrAbbr != "" {
		return identity.CurrAbbr
	}
	if raw, ok := identity.Raw["curr_abbr"].(string); ok && raw != "" {
		return raw
	}
	log.Warn("Could not determine currency from Discogs profile, falling back to $")
	return defaultCurrencySymbol
}

// classifyFormats walks the first collection folder (the canonical whole
// collection) and counts vinyl and CD items by each release's first
// listed format. Errors mid-walk keep whatever was counted so far.
func classifyFormats(ctx context.Context, client *discogs.Client, snap *models.AccountSnapshot, log logrus.FieldLogger) {
	folder := snap.Folders[0]
	walker := client.WalkFolder(snap.Username, folder.ID)

	for {
		release, err := walker.Next(ctx)
		if err != nil {
			metrics.FetchErrors.WithLabelValues("classification").Inc()
			log.WithError(err).WithFields(logrus.Fields{
				"vinyl": snap.VinylCount,
				"cd":    snap.CDCount,
			}).Warn("Format classification interrupted, keeping partial counts")
			return
		}
		if release == nil {
			return
		}
		if len(release.Formats) == 0 {
			continue
		}
		switch strings.ToLower(release.Formats[0].Name) {
		case formatVinyl:
			snap.VinylCount++
		case formatCD:
			snap.CDCount++
		}
	}
}
