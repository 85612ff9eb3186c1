package internal

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rm-hull/label-noise/internal/labelnoise"
	"github.com/rm-hull/label-noise/internal/png"
	"github.com/rm-hull/label-noise/internal/raster"
)

type job struct {
	index int
	file  string
}

type Processor struct {
	startTime time.Time
	endTime   time.Time
	inDir     string
	outDir    string
	poolSize  int
	maxJobs   int
	seed      uint64
	params    labelnoise.Params
	prepare   []raster.Stage
	verbose   bool
	jobs      chan job
	results   chan error
	files     []string
}

type ProcessorOptions struct {
	PoolSize int
	Seed     uint64
	Params   labelnoise.Params
	// Prepare runs before the noise stages, e.g. a greyscale conversion.
	Prepare []raster.Stage
	Verbose bool
}

func NewProcessor(inDir, outDir string, opts ProcessorOptions) (*Processor, error) {
	if opts.PoolSize < 1 {
		return nil, errors.New("pool size must be at least 1")
	}
	startTime := time.Now()

	files, err := filepath.Glob(filepath.Join(inDir, "*.png"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", inDir, err)
	}
	sort.Strings(files)

	log.Printf("Directory %s contains %d PNG files", inDir, len(files))
	if len(files) == 0 {
		return nil, errors.New("no files to process")
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Processor{
		startTime: startTime,
		inDir:     inDir,
		outDir:    outDir,
		poolSize:  opts.PoolSize,
		maxJobs:   -1,
		seed:      opts.Seed,
		params:    opts.Params,
		prepare:   opts.Prepare,
		verbose:   opts.Verbose,
		jobs:      make(chan job),
		results:   make(chan error),
		files:     files,
	}, nil
}

// DispatchJobs sends files to the jobs channel for processing by workers.
// When maxJobs is greater than zero, it limits the number of jobs dispatched,
// hence set to -1 to dispatch all jobs.
func (p *Processor) DispatchJobs() {

	go func() {
		for n, file := range p.files {
			if p.maxJobs > 0 && n >= p.maxJobs {
				break
			}
			p.jobs <- job{index: n, file: file}
		}
		close(p.jobs)
	}()
}

func (p *Processor) StartWorkers() {
	log.Printf("Starting perturbing files with pool size: %d", p.poolSize)

	for i := range p.poolSize {
		go p.worker(i)
	}
}

func (p *Processor) worker(i int) {
	log.Printf("Worker %d started", i)
	for j := range p.jobs {
		p.results <- p.processFile(j)
	}
	log.Printf("Worker %d finished", i)
}

// processFile perturbs a single label. The sampler is seeded from the file's
// position in the sorted listing, so output does not depend on which worker
// picked the job up.
func (p *Processor) processFile(j job) error {
	filename := filepath.Join(p.outDir, filepath.Base(j.file))

	// if the file already exists, skip processing
	if _, err := os.Stat(filename); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	inFile, err := os.Open(j.file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", j.file, err)
	}
	defer func() {
		_ = inFile.Close()
	}()

	img, err := png.Decode(inFile)
	if err != nil {
		return fmt.Errorf("failed to decode PNG from %s: %w", j.file, err)
	}

	sampler := labelnoise.NewNormalSampler(p.seed + uint64(j.index))
	stages := append(append([]raster.Stage{}, p.prepare...), labelnoise.Plan(p.params, sampler)...)
	if p.verbose {
		log.Printf("%s: %v", filepath.Base(j.file), stages)
	}

	if err := img.Pipeline(stages...); err != nil {
		return fmt.Errorf("failed to process image pipeline: %w", err)
	}

	tmpFile, err := os.CreateTemp(p.outDir, "perturb-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	cleanupTemp := true
	defer func() {
		_ = tmpFile.Close()
		if cleanupTemp {
			_ = os.Remove(tmpFile.Name())
		}
	}()

	if err := png.Encode(tmpFile, img); err != nil {
		return fmt.Errorf("failed to write processed image to temporary file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file before rename: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	cleanupTemp = false // Successfully renamed, don't delete
	return nil
}

func (p *Processor) Wait() []error {
	waitFor := len(p.files)
	if p.maxJobs > 0 {
		waitFor = min(p.maxJobs, waitFor)
	}
	log.Printf("Waiting for %d files to be perturbed", waitFor)

	errors := make([]error, 0, 10)
	for range waitFor {
		err := <-p.results
		if err != nil {
			errors = append(errors, err)
		}
	}
	p.endTime = time.Now()
	elapsed := p.endTime.Sub(p.startTime)
	log.Printf("All files perturbed in %s (errors=%d)", elapsed, len(errors))
	return errors
}
