// Package pipeline defines the stage contract the compositor implements and
// the editor snapshots that flow through it.
package pipeline

import "context"

// Stage renders one editor snapshot. Stages keep no editor state: the
// input carries everything, so the same input always renders the same result.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}
