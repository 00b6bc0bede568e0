// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package annotation

import (
	"fmt"
	"sync"

	"github.com/trejkaz/hex-components/lib/interpreter"
	"github.com/trejkaz/hex-components/lib/value"
)

// decodeJob is one annotation to re-interpret.
type decodeJob struct {
	id     ID
	interp interpreter.Interpreter
	start  uint64
	length uint64
	old    value.Value

	result value.Value
	err    error
}

// Redecode re-runs the interpreter of every annotation that has one,
// spreading the decoding over workers goroutines, and stores the
// results. Values that come out equal to the stored one are left
// alone; every other one is replaced with a Changed event.
//
// Decoding only reads the binary. If any annotation fails to decode,
// Redecode returns the first failure in document order and the
// collection is not modified.
func (c *Collection) Redecode(workers int) error {
	if err := c.checkMutable("redecoding"); err != nil {
		return err
	}
	if workers < 1 {
		workers = 1
	}

	var jobs []*decodeJob
	c.walk(c.roots, func(a Annotation) bool {
		if a.interp != nil {
			jobs = append(jobs, &decodeJob{id: a.id, interp: a.interp, start: a.start, length: a.length, old: a.value})
		}
		return true
	})
	if len(jobs) == 0 {
		return nil
	}
	workers = min(workers, len(jobs))

	queue := make(chan *decodeJob)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				job.result, job.err = interpreter.Interpret(job.interp, c.binary, job.start, job.length)
			}
		}()
	}
	for _, job := range jobs {
		queue <- job
	}
	close(queue)
	wg.Wait()

	for _, job := range jobs {
		if job.err != nil {
			return fmt.Errorf("redecoding %s at %d: %w", job.interp.Name(), job.start, job.err)
		}
	}

	replaced := 0
	for _, job := range jobs {
		if value.Equal(job.old, job.result) {
			continue
		}
		r, ok := c.lookup(job.id)
		if !ok {
			continue
		}
		r.value = job.result
		replaced++
		c.changed(job.id, r)
	}

	c.logger.Debug("annotations redecoded",
		"decoded", len(jobs),
		"replaced", replaced,
		"workers", workers,
	)
	return nil
}
