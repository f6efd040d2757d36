// Package runtime is the support library imported by generated worker
// projects. It provides the execution context that pipelines record
// step completions into, the Gather join for parallel branches, and
// the pipeline error strategies.
package runtime

import "sync"

// Context tracks pipeline execution state across steps. It is safe for
// concurrent use; parallel branches record into the same Context.
type Context struct {
	mu        sync.Mutex
	completed []string
	values    map[string]any
}

// NewContext creates an empty execution context.
func NewContext() *Context {
	return &Context{values: make(map[string]any)}
}

// Record marks a step as completed, in call order.
func (c *Context) Record(step string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completed = append(c.completed, step)
}

// Completed returns the completed step names in completion order.
func (c *Context) Completed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.completed))
	copy(out, c.completed)
	return out
}

// Set stores a named value for later steps.
func (c *Context) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Get returns a value stored by an earlier step.
func (c *Context) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok
}
