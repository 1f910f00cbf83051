package snapshot

import (
	"context"

	"github.com/noah-isme/isp-backoffice-api/internal/table"
)

// Recorder is a model the table engine can display.
type Recorder interface {
	Record() table.Record
}

// FromList adapts a repository list call into a Loader.
func FromList[T Recorder](list func(ctx context.Context) ([]T, error)) Loader {
	return func(ctx context.Context) ([]table.Record, error) {
		items, err := list(ctx)
		if err != nil {
			return nil, err
		}
		records := make([]table.Record, 0, len(items))
		for _, item := range items {
			records = append(records, item.Record())
		}
		return records, nil
	}
}
