package app

import (
	"context"

	"github.com/vk/colorgrid/internal/publish"
	"github.com/vk/colorgrid/internal/report"
)

// Publisher receives every evaluation's results.
type Publisher interface {
	Publish(ctx context.Context, results []report.Result) error
	Close() error
}

type dialFunc func(ctx context.Context, opts publish.Options) (Publisher, error)

func dialSocketIO(ctx context.Context, opts publish.Options) (Publisher, error) {
	c, err := publish.Dial(ctx, opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}
