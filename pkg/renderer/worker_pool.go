package renderer

import (
	"context"
	"runtime"
	"sync"
)

// TileResult reports a finished (or skipped) tile
type TileResult struct {
	TileID   int
	WorkerID int
	Rays     int  // Primary rays traced
	Skipped  bool // Context was cancelled before the tile started
}

// TileFunc renders one tile on behalf of a worker
type TileFunc func(workerID int, tile *Tile) TileResult

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan *Tile
	resultQueue chan TileResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool sized for numTasks tiles.
// numWorkers <= 0 selects runtime.NumCPU().
func NewWorkerPool(numWorkers, numTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		taskQueue:   make(chan *Tile, numTasks),      // Buffer for all tiles
		resultQueue: make(chan TileResult, numTasks), // Buffer for all results
		numWorkers:  numWorkers,
	}
}

// Start launches the workers. A worker that sees ctx cancelled reports the
// remaining tiles as skipped without rendering them.
func (wp *WorkerPool) Start(ctx context.Context, render TileFunc) {
	for id := 0; id < wp.numWorkers; id++ {
		wp.wg.Add(1)
		go func(workerID int) {
			defer wp.wg.Done()
			for tile := range wp.taskQueue {
				if ctx.Err() != nil {
					wp.resultQueue <- TileResult{TileID: tile.ID, WorkerID: workerID, Skipped: true}
					continue
				}
				wp.resultQueue <- render(workerID, tile)
			}
		}(id)
	}
}

// SubmitTask queues a tile
func (wp *WorkerPool) SubmitTask(tile *Tile) {
	wp.taskQueue <- tile
}

// Stop closes the queue, waits for workers to finish and closes the results
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// Results returns the channel of tile results; it is closed by Stop
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}
