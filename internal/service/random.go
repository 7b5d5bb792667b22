package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"discogswatch/internal/discogs"
	"discogswatch/internal/metrics"
	"discogswatch/internal/models"
)

const releaseCacheSize = 128

// RandomPicker selects a uniformly random release from the canonical
// collection folder. Fetched releases are kept in an LRU cache keyed by
// folder position so re-picking an item skips the network call.
type RandomPicker struct {
	client *discogs.Client
	cache  *lru.Cache[string, *models.Release]
	log    logrus.FieldLogger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPicker creates a picker. rng may be nil, in which case a
// time-seeded source is used; tests inject a fixed seed for determinism.
func NewRandomPicker(client *discogs.Client, rng *rand.Rand, log logrus.FieldLogger) *RandomPicker {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	cache, _ := lru.New[string, *models.Release](releaseCacheSize)
	return &RandomPicker{
		client: client,
		cache:  cache,
		log:    log,
		rng:    rng,
	}
}

// Pick draws a random index in [0, count) over the first collection
// folder and fetches that item. It returns nil when the folder is empty
// or absent, and nil (logged) when the remote lookup fails; there is no
// partially populated pick.
func (p *RandomPicker) Pick(ctx context.Context, snap *models.AccountSnapshot) *models.RandomPick {
	if snap == nil || len(snap.Folders) == 0 {
		return nil
	}
	folder := snap.Folders[0]
	if folder.Count <= 0 {
		return nil
	}

	p.mu.Lock()
	index := p.rng.Intn(folder.Count)
	p.mu.Unlock()

	release, err := p.releaseAt(ctx, snap.Username, folder.ID, index)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("random_record").Inc()
		p.log.WithError(err).WithField("index", index).Error("Failed to fetch random record")
		return nil
	}
	return pickFromRelease(release)
}

func (p *RandomPicker) releaseAt(ctx context.Context, username string, folderID, index int) (*models.Release, error) {
	key := fmt.Sprintf("%s/%d/%d", username, folderID, index)
	if release, ok := p.cache.Get(key); ok {
		return release, nil
	}
	release, err := p.client.ReleaseAt(ctx, username, folderID, index)
	if err != nil {
		return nil, err
	}
	p.cache.Add(key, release)
	return release, nil
}

func pickFromRelease(release *models.Release) *models.RandomPick {
	artist := "Unknown Artist"
	if len(release.Artists) > 0 && release.Artists[0].Name != "" {
		artist = release.Artists[0].Name
	}
	title := release.Title
	if title == "" {
		title = "Unknown Title"
	}

	pick := &models.RandomPick{
		State:      artist + " - " + title,
		CoverImage: release.CoverImage,
		Released:   release.Year,
	}
	if len(release.Labels) > 0 {
		pick.Label = release.Labels[0].Name
		pick.CatNo = release.Labels[0].CatNo
	}
	if len(release.Formats) > 0 {
		format := release.Formats[0]
		pick.Format = format.Name
		if len(format.Descriptions) > 0 {
			pick.Format = fmt.Sprintf("%s (%s)", format.Name, format.Descriptions[0])
		}
	}
	return pick
}
