package csveda

import (
	"context"
	"io"
)

// Run analyses the file at path and writes the report to w, using the
// default column names, NA values and report options.
//
// Example usage:
//
//	if err := csveda.Run(ctx, "adults.csv", os.Stdout); err != nil {
//		log.Fatal(err)
//	}
func Run(ctx context.Context, path string, w io.Writer) error {
	pipeline, err := NewBuilder().SetPath(path).SetOutput(w).Build(ctx)
	if err != nil {
		return err
	}
	return pipeline.Run(ctx)
}
