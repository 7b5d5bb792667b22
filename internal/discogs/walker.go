package discogs

import (
	"context"

	"discogswatch/internal/models"
)

// ReleaseWalker iterates over every item in a collection folder, fetching
// successive pages on demand so callers see one flat sequence.
type ReleaseWalker struct {
	client   *Client
	username string
	folderID int

	page    int
	pages   int
	started bool
	buf     []models.Release
	next    int
}

// WalkFolder starts an iteration over the given folder's items.
func (c *Client) WalkFolder(username string, folderID int) *ReleaseWalker {
	return &ReleaseWalker{
		client:   c,
		username: username,
		folderID: folderID,
	}
}

// Next returns the next release, or (nil, nil) once the folder is
// exhausted.
func (w *ReleaseWalker) Next(ctx context.Context) (*models.Release, error) {
	for w.next >= len(w.buf) {
		if w.started && w.page >= w.pages {
			return nil, nil
		}
		w.page++
		resp, err := w.client.FolderReleases(ctx, w.username, w.folderID, w.page, w.client.PerPage)
		if err != nil {
			return nil, err
		}
		w.started = true
		w.pages = resp.Pages
		w.buf = resp.Releases
		w.next = 0
		if len(w.buf) == 0 && w.page >= w.pages {
			return nil, nil
		}
	}

	r := &w.buf[w.next]
	w.next++
	return r, nil
}
