package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/quicknote"
	"github.com/aretw0/quicknote/pkg/adapters/fs"
	"github.com/aretw0/quicknote/pkg/core"
	"github.com/aretw0/quicknote/pkg/seed"
)

// bench measures the cost of whole-collection read-modify-write as the store grows.
func main() {
	count := flag.Int("count", 10000, "Number of notes to generate")
	format := flag.String("format", "json", "Store format: json or yaml")
	keep := flag.Bool("keep", false, "Keep the benchmark store after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "quicknote_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()
	path := filepath.Join(benchDir, "notes."+*format)

	// Write the collection in one save; going through Add would be quadratic.
	fmt.Printf("Generating %d notes in %s...\n", *count, path)
	startGen := time.Now()
	rng := rand.New(rand.NewPCG(1, 2))
	notes := make([]core.Note, 0, *count)
	created := time.Now().Add(-time.Duration(*count) * time.Minute)
	for i := 0; i < *count; i++ {
		notes = append(notes, core.Note{
			ID:        fmt.Sprintf("%08x", i),
			Text:      seed.Texts[rng.IntN(len(seed.Texts))],
			CreatedAt: created.Add(time.Duration(i) * time.Minute).Format(core.TimeLayout),
			Tags:      []string{seed.Tags[rng.IntN(len(seed.Tags))]},
			Priority:  rng.IntN(core.PriorityHighest + 1),
		})
	}
	store := fs.NewRepository(fs.Config{Path: path})
	if err := store.Save(context.Background(), notes); err != nil {
		panic(err)
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	service, err := quicknote.New(path, quicknote.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	ctx := context.TODO()
	results := []struct {
		name string
		run  func() (int, error)
	}{
		{"Load", func() (int, error) {
			list, err := service.ListNotes(ctx)
			return len(list), err
		}},
		{"Search", func() (int, error) {
			list, err := service.Search(ctx, "milk|review", false)
			return len(list), err
		}},
		{"Stats", func() (int, error) {
			s, err := service.Stats(ctx)
			return s.Total, err
		}},
		{"Add", func() (int, error) {
			_, err := service.Add(ctx, "benchmark note", []string{"bench"}, 1)
			return 1, err
		}},
	}

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes, %s):\n", *count, *format)
	for _, r := range results {
		start := time.Now()
		n, err := r.run()
		if err != nil {
			panic(err)
		}
		fmt.Printf("  %-7s %v (items: %d)\n", r.name+":", time.Since(start), n)
	}
	fmt.Printf("--------------------------------------------------\n")
}
