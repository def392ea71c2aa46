package sources

import (
	"context"
	"fmt"

	"github.com/daybrief/daybrief/digest"
	"github.com/daybrief/daybrief/enums"
)

// Source fetches one service's stats for the digest. Fetch returns a
// renderable record or an error; errors end up in the report's error
// section instead of aborting the run.
type Source interface {
	Name() enums.Source
	Fetch(ctx context.Context) (digest.Record, error)
}

func truncateError(err error) error {
	msg := err.Error()
	if len(msg) > 300 {
		return fmt.Errorf("%s...", msg[:300])
	}
	return err
}
