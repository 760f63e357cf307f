// Package seed fills a store with random sample notes for demos and manual testing.
package seed

import (
	"context"
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/aretw0/quicknote/pkg/core"
)

// Adder is the part of core.Service used to create notes.
type Adder interface {
	Add(ctx context.Context, text string, tags []string, priority int) (core.Note, error)
}

// Texts are the sample note bodies.
var Texts = []string{
	"buy milk",
	"get used to vim",
	"meeting at 10:30",
	"review regex syntax",
	"rewrite the whole file",
	"add tests",
	"coffee break",
	"sprint planning",
	"code review",
	"take the daily backup",
}

// Tags are the sample tags. Each seeded note gets zero to two of them.
var Tags = []string{"urgent", "work", "home", "school", "errand", "sandbox"}

// Seed adds n random notes through a and returns them in creation order.
// A nil rng uses the global source. On error the notes added so far are returned.
func Seed(ctx context.Context, a Adder, n int, rng *rand.Rand) ([]core.Note, error) {
	if n < 0 {
		return nil, errors.Wrapf(core.ErrValidation, "sample count must not be negative, got %d", n)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	added := make([]core.Note, 0, n)
	for range n {
		text := Texts[rng.IntN(len(Texts))]
		perm := rng.Perm(len(Tags))[:rng.IntN(3)]
		tags := make([]string, len(perm))
		for i, p := range perm {
			tags[i] = Tags[p]
		}
		priority := rng.IntN(core.PriorityHighest + 1)

		note, err := a.Add(ctx, text, tags, priority)
		if err != nil {
			return added, errors.Wrapf(err, "failed to add sample note %d of %d", len(added)+1, n)
		}
		added = append(added, note)
	}
	return added, nil
}
