package dataset

import (
	"context"

	"github.com/goto/optimus-apitoken/internal/model"
)

// Loader is an interface for data sets that can be read.
type Loader[T any] interface {
	Load(ctx context.Context) (T, error)
}

// Saver is an interface for data sets that can be written.
// Read only data sets still implement it and always fail.
type Saver interface {
	Save(ctx context.Context, data any) error
}

// Describer is an interface for data sets that expose their configuration.
// The returned record must never contain secrets.
type Describer interface {
	Describe() *model.Record
}

// DataSet is the contract consumed by catalogs and pipelines.
type DataSet[T any] interface {
	Loader[T]
	Saver
	Describer
	Exists(ctx context.Context) (bool, error)
}
