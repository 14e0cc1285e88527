package animator

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// PerSecond is the number of ticks per second at the default delay
const PerSecond = 10

const DefaultDelay = time.Second / PerSecond

// TaskFunc receives the task cycle counter. Returning true resets the counter.
type TaskFunc func(count int) (bool, error)

// Task is a periodic callback. A task with a zero period only runs when the scene is reset.
type Task struct {
	Name           string
	Period         int
	Offset         int
	Tag            string
	RunWhilePaused bool
	Order          int
	Run            TaskFunc

	count int
}

type Animator struct {
	delay time.Duration
	tasks []*Task

	frame        int
	paused       bool
	pendingReset bool

	tags        TagSet
	tagsVersion int
	seenVersion int
}

func New(delay time.Duration, tasks ...Task) (*Animator, error) {
	if delay <= 0 {
		delay = DefaultDelay
	}
	a := &Animator{
		delay:        delay,
		pendingReset: true,
	}

	names := make(map[string]struct{}, len(tasks))
	for i := range tasks {
		task := tasks[i]
		if task.Name == "" {
			return nil, fmt.Errorf("task #%d has no name", i)
		}
		if _, ok := names[task.Name]; ok {
			return nil, fmt.Errorf("duplicate task %s", task.Name)
		}
		names[task.Name] = struct{}{}
		if task.Run == nil {
			return nil, fmt.Errorf("task %s has no callback", task.Name)
		}
		if task.Period < 0 {
			return nil, fmt.Errorf("task %s has a negative period", task.Name)
		}
		task.count = 0
		a.tasks = append(a.tasks, &task)
	}

	sort.SliceStable(a.tasks, func(i, j int) bool {
		if a.tasks[i].Order != a.tasks[j].Order {
			return a.tasks[i].Order < a.tasks[j].Order
		}
		return a.tasks[i].Name < a.tasks[j].Name
	})

	return a, nil
}

// Reset runs the reset tasks of the enabled tags and zeroes every counter
func (a *Animator) Reset() error {
	a.pendingReset = false
	a.seenVersion = a.tagsVersion
	for _, task := range a.tasks {
		task.count = 0
	}
	for _, task := range a.tasks {
		if task.Period != 0 || !a.tags.Has(task.Tag) {
			continue
		}
		if _, err := task.Run(0); err != nil {
			return fmt.Errorf("reset task %s: %w", task.Name, err)
		}
	}
	return nil
}

func (a *Animator) Pause() {
	a.paused = true
}

// Resume restarts periodic execution and schedules a reset on the next tick
func (a *Animator) Resume() {
	if a.paused {
		a.pendingReset = true
	}
	a.paused = false
}

// SetTags replaces the enabled tags, nil enables all of them
func (a *Animator) SetTags(tags TagSet) {
	if a.tags.Equal(tags) {
		return
	}
	a.tags = tags.Clone()
	a.tagsVersion++
}

func (a *Animator) Tick() error {
	if a.seenVersion != a.tagsVersion {
		a.pendingReset = true
	}
	if a.pendingReset {
		if err := a.Reset(); err != nil {
			return err
		}
	}

	for _, task := range a.tasks {
		if !a.tags.Has(task.Tag) {
			continue
		}
		if a.paused && !task.RunWhilePaused {
			continue
		}
		if task.Period == 0 {
			continue
		}
		if mod(a.frame-task.Offset, task.Period) != 0 {
			continue
		}
		done, err := task.Run(task.count)
		if err != nil {
			return fmt.Errorf("task %s: %w", task.Name, err)
		}
		if done {
			task.count = 0
		} else {
			task.count++
		}
	}

	a.frame++
	return nil
}

// Run ticks until ctx is cancelled or a task fails
func (a *Animator) Run(ctx context.Context) error {
	for {
		if err := a.Tick(); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(a.delay):
		}
	}
}

func (a *Animator) Frame() int {
	return a.frame
}

func (a *Animator) Paused() bool {
	return a.paused
}

func (a *Animator) Delay() time.Duration {
	return a.delay
}

func (a *Animator) Tags() TagSet {
	return a.tags.Clone()
}

func (a *Animator) TagActive(tag string) bool {
	return a.tags.Has(tag)
}

// Count returns the cycle counter of a task, -1 when unknown
func (a *Animator) Count(name string) int {
	for _, task := range a.tasks {
		if task.Name == name {
			return task.count
		}
	}
	return -1
}

// RequiresPostSwapRedraw reports whether an enabled tagged task draws less than once per tick
func (a *Animator) RequiresPostSwapRedraw() bool {
	for _, task := range a.tasks {
		if task.Tag == "" || !a.tags.Has(task.Tag) {
			continue
		}
		if a.paused && !task.RunWhilePaused {
			continue
		}
		if task.Period > 1 {
			return true
		}
	}
	return false
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
