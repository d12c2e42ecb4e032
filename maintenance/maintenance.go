// Package maintenance runs scheduled background jobs, currently the cache
// retention sweep.
package maintenance

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/dailyyoga/coinboard/logger"
)

// Task is one scheduled job.
type Task interface {
	// Name returns the unique identifier for this task
	Name() string
	// Run executes the task with the given context
	Run(ctx context.Context) error
}

// Scheduler runs tasks on cron schedules. Every task is wrapped with panic
// recovery and start/finish logging.
type Scheduler struct {
	cron   *cron.Cron
	logger logger.Logger
}

// NewScheduler creates an empty scheduler. Specs use the standard 5-field
// cron format.
func NewScheduler(log logger.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: log,
	}
}

// Add schedules a task.
func (s *Scheduler) Add(spec string, task Task) error {
	if _, err := s.cron.AddFunc(spec, func() { s.run(task) }); err != nil {
		return ErrSchedule(task.Name(), spec, err)
	}
	s.logger.Info("task scheduled",
		zap.String("task", task.Name()),
		zap.String("spec", spec),
	)
	return nil
}

// run executes one task invocation with recovery and logging.
func (s *Scheduler) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panicked",
				zap.String("task", task.Name()),
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())),
			)
		}
	}()

	start := time.Now()
	s.logger.Info("task started", zap.String("task", task.Name()))

	err := task.Run(context.Background())

	duration := time.Since(start)
	if err != nil {
		s.logger.Error("task failed",
			zap.String("task", task.Name()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("task completed",
		zap.String("task", task.Name()),
		zap.Duration("duration", duration),
	)
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running tasks to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// TaskFunc adapts a function to the Task interface.
type TaskFunc struct {
	TaskName string
	Fn       func(ctx context.Context) error
}

// Name implements Task.
func (t TaskFunc) Name() string { return t.TaskName }

// Run implements Task.
func (t TaskFunc) Run(ctx context.Context) error { return t.Fn(ctx) }
