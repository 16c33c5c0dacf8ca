package main

import (
	"context"
	"os"
	"strings"

	"github.com/nyctransithub/transit-hub/feed"
)

// fetcher reads feeds from HTTP URLs through the feed client or from local
// files, so captured payloads can be replayed with -feed.
type fetcher struct {
	client *feed.Client
}

func newFetcher(client *feed.Client) *fetcher {
	return &fetcher{client: client}
}

// Fetch returns the raw payload behind urlOrPath
func (f *fetcher) Fetch(ctx context.Context, urlOrPath string) ([]byte, error) {
	if !strings.HasPrefix(urlOrPath, "http://") && !strings.HasPrefix(urlOrPath, "https://") {
		data, err := os.ReadFile(strings.TrimPrefix(urlOrPath, "file://"))
		if err != nil {
			return nil, feed.TransportError(urlOrPath, err)
		}
		return data, nil
	}
	return f.client.Fetch(ctx, urlOrPath)
}
