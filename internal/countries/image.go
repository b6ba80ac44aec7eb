package countries

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/zjoart/paises/pkg/logger"
)

// GenerateSummaryImage renders a PNG with the total count and one bar per
// continent at destPath (e.g., cache/summary.png)
func GenerateSummaryImage(ctx context.Context, store Store, destPath string) error {
	sum, err := store.Summary(ctx)
	if err != nil {
		return err
	}

	type entry struct {
		Continent string
		N         int64
	}
	entries := make([]entry, 0, len(sum.PerContinent))
	for k, v := range sum.PerContinent {
		entries = append(entries, entry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].N != entries[j].N {
			return entries[i].N > entries[j].N
		}
		return entries[i].Continent < entries[j].Continent
	})

	const W = 1000
	const H = 600
	dc := gg.NewContext(W, H)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(fmt.Sprintf("Países registrados: %d", sum.Total), W/2, 40, 0.5, 0.5)
	dc.DrawStringAnchored(time.Now().UTC().Format(time.RFC3339), W/2, 60, 0.5, 0.5)

	var top int64 = 1
	for _, e := range entries {
		if e.N > top {
			top = e.N
		}
	}

	const left, barMax, rowH = 220.0, 700.0, 40.0
	y := 100.0
	for _, e := range entries {
		if y > H-rowH {
			break
		}
		w := barMax * float64(e.N) / float64(top)
		dc.SetRGB(0.2, 0.45, 0.75)
		dc.DrawRectangle(left, y, w, rowH-12)
		dc.Fill()

		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(e.Continent, left-12, y+(rowH-12)/2, 1, 0.5)
		dc.DrawStringAnchored(fmt.Sprintf("%d", e.N), left+w+8, y+(rowH-12)/2, 0, 0.5)
		y += rowH
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}
	return dc.SavePNG(destPath)
}

// SummaryRefresher regenerates the summary image in the background. A call
// arriving while a render runs schedules exactly one more render.
type SummaryRefresher struct {
	store Store
	path  string

	mu      sync.Mutex
	running bool
	pending bool
	done    chan struct{}
}

func NewSummaryRefresher(store Store, path string) *SummaryRefresher {
	return &SummaryRefresher{store: store, path: path}
}

// Path is where the PNG is written
func (r *SummaryRefresher) Path() string {
	return r.path
}

// Trigger schedules a render without blocking the caller
func (r *SummaryRefresher) Trigger() {
	r.mu.Lock()
	if r.running {
		r.pending = true
		r.mu.Unlock()
		return
	}
	r.running = true
	r.done = make(chan struct{})
	r.mu.Unlock()

	go r.loop()
}

// Wait blocks until no render is in flight
func (r *SummaryRefresher) Wait() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (r *SummaryRefresher) loop() {
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := GenerateSummaryImage(ctx, r.store, r.path); err != nil {
			logger.Warn("image: GenerateSummaryImage failed", logger.WithError(err))
		} else {
			logger.Info("image: GenerateSummaryImage completed", logger.Fields{"path": r.path})
		}
		cancel()

		r.mu.Lock()
		if !r.pending {
			r.running = false
			close(r.done)
			r.mu.Unlock()
			return
		}
		r.pending = false
		r.mu.Unlock()
	}
}
