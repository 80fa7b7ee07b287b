// Package printer runs named tasks that print and sleep concurrently, so their output interleaves.
package printer

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Job prints Name Times times.
type Job struct {
	Name  string
	Times int
}

// syncWriter serializes writes so lines from concurrent printers never tear.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Printer writes name on its own line, then sleeps interval, times times.
func Printer(ctx context.Context, w io.Writer, name string, times int, interval time.Duration) error {
	for i := 0; i < times; i++ {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
		if err := sleep(ctx, interval); err != nil {
			return err
		}
	}
	return nil
}

// Gather runs every job concurrently and waits for all of them. The first error
// cancels the rest.
func Gather(ctx context.Context, w io.Writer, interval time.Duration, jobs ...Job) error {
	out := &syncWriter{w: w}
	g, ctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			return Printer(ctx, out, job.Name, job.Times, interval)
		})
	}
	return g.Wait()
}

// Greet writes "Hello ...", waits delay, then writes "....world!".
func Greet(ctx context.Context, w io.Writer, delay time.Duration) error {
	if _, err := fmt.Fprintln(w, "Hello ..."); err != nil {
		return err
	}
	if err := sleep(ctx, delay); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "....world!")
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
