package diagnose

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/avdoctor/avdoctor/internal/collect"
	"github.com/avdoctor/avdoctor/internal/domain"
	"github.com/avdoctor/avdoctor/internal/toolexec"
)

// Subsystem binds a category to its collect-then-diagnose step.
type Subsystem struct {
	Category domain.Category
	run      func(ctx context.Context) ([]domain.Result, error)
}

// Aggregator runs every subsystem in the declared order
// audio, video, gpu, system, network and concatenates their findings.
// A subsystem that fails or panics contributes exactly one critical finding
// for its category; it never aborts the run.
type Aggregator struct {
	// Parallel fans subsystems out concurrently. Output order is identical
	// to the sequential mode: results land in declared-position buckets.
	Parallel bool

	subsystems []Subsystem
	log        *zap.Logger

	mu   sync.Mutex
	info domain.SystemInfo
}

// NewAggregator wires the five subsystem pipelines over a shared runner.
func NewAggregator(runner *toolexec.Runner, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Aggregator{log: log}

	audio := collect.NewAudioCollector(runner)
	video := collect.NewVideoCollector(runner)
	gpu := collect.NewGPUCollector(runner)
	system := collect.NewSystemCollector(runner)
	network := collect.NewNetworkCollector(runner)

	a.subsystems = []Subsystem{
		{Category: domain.CategoryAudio, run: func(ctx context.Context) ([]domain.Result, error) {
			snap, err := audio.Collect(ctx)
			if err != nil {
				return nil, err
			}
			return Audio(snap), nil
		}},
		{Category: domain.CategoryVideo, run: func(ctx context.Context) ([]domain.Result, error) {
			snap, err := video.Collect(ctx)
			if err != nil {
				return nil, err
			}
			return Video(snap), nil
		}},
		{Category: domain.CategoryGPU, run: func(ctx context.Context) ([]domain.Result, error) {
			snap, err := gpu.Collect(ctx)
			if err != nil {
				return nil, err
			}
			a.mergeInfo(func(i *domain.SystemInfo) {
				i.GPUDriver = gpuDriverLabel(snap)
			})
			return GPU(snap), nil
		}},
		{Category: domain.CategorySystem, run: func(ctx context.Context) ([]domain.Result, error) {
			snap, err := system.Collect(ctx)
			if err != nil {
				return nil, err
			}
			a.mergeInfo(func(i *domain.SystemInfo) {
				i.Kernel = snap.Kernel
				i.Distro = snap.Distro
				i.Desktop = snap.Desktop
				i.AudioServer = snap.AudioServer
			})
			return System(snap), nil
		}},
		{Category: domain.CategoryNetwork, run: func(ctx context.Context) ([]domain.Result, error) {
			snap, err := network.Collect(ctx)
			if err != nil {
				return nil, err
			}
			return Network(snap), nil
		}},
	}
	return a
}

// Run executes all subsystems and returns their findings concatenated in the
// declared order. It never returns an error: subsystem failures are findings.
func (a *Aggregator) Run(ctx context.Context) []domain.Result {
	if a.Parallel {
		return a.runParallel(ctx)
	}
	var results []domain.Result
	for _, sub := range a.subsystems {
		results = append(results, a.runOne(ctx, sub)...)
	}
	return results
}

func (a *Aggregator) runParallel(ctx context.Context) []domain.Result {
	buckets := make([][]domain.Result, len(a.subsystems))
	g, ctx := errgroup.WithContext(ctx)
	for i, sub := range a.subsystems {
		g.Go(func() error {
			buckets[i] = a.runOne(ctx, sub)
			return nil
		})
	}
	// runOne never returns an error; Wait is for completion only.
	_ = g.Wait()

	var results []domain.Result
	for _, bucket := range buckets {
		results = append(results, bucket...)
	}
	return results
}

// runOne is the isolation boundary: a panicking or failing subsystem is
// converted into a single critical finding for its category.
func (a *Aggregator) runOne(ctx context.Context, sub Subsystem) (results []domain.Result) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("subsystem diagnostics panicked",
				zap.String("category", string(sub.Category)),
				zap.Any("panic", r))
			results = []domain.Result{failure(sub.Category, fmt.Errorf("panic: %v", r))}
		}
	}()

	res, err := sub.run(ctx)
	if err != nil {
		a.log.Error("subsystem diagnostics failed",
			zap.String("category", string(sub.Category)),
			zap.Error(err))
		return []domain.Result{failure(sub.Category, err)}
	}
	return res
}

// Info returns the host identity captured by the most recent Run.
func (a *Aggregator) Info() domain.SystemInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.info
}

// HostInfo collects only the snapshots needed to identify the host.
// Collection failures leave the affected fields empty.
func HostInfo(ctx context.Context, runner *toolexec.Runner) domain.SystemInfo {
	var info domain.SystemInfo
	if snap, err := collect.NewSystemCollector(runner).Collect(ctx); err == nil {
		info = snap.Info()
	}
	if snap, err := collect.NewGPUCollector(runner).Collect(ctx); err == nil {
		info.GPUDriver = gpuDriverLabel(snap)
	}
	return info
}

func (a *Aggregator) mergeInfo(fn func(*domain.SystemInfo)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(&a.info)
}

// failure is built as a literal so the recovery path itself cannot panic.
func failure(cat domain.Category, err error) domain.Result {
	return domain.Result{
		Category: cat,
		Severity: domain.SeverityCritical,
		Message:  fmt.Sprintf("%s diagnostics failed internally: %v", cat, err),
	}
}

func gpuDriverLabel(snap collect.GPUSnapshot) string {
	if snap.SMIWorking {
		return "nvidia " + snap.DriverVersion
	}
	return snap.DriverInUse
}
