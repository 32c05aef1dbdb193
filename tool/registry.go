package tool

import (
	"log/slog"
	"sort"
	"sync"

	llmschema "github.com/rayiskander2406/vendorportal/llm/schema"
)

// Registry holds the tools exposed to the model for one assistant.
type Registry struct {
	mu       sync.RWMutex
	invokers map[string]Invoker
}

func NewRegistry() *Registry {
	return &Registry{
		invokers: make(map[string]Invoker),
	}
}

func (r *Registry) Register(inv Invoker) {
	name := inv.Info().Name

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invokers[name]; ok {
		slog.Warn("[tool] overwriting registered tool", "name", name)
	}
	r.invokers[name] = inv
}

func (r *Registry) Get(name string) (Invoker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.invokers[name]
	return inv, ok
}

// List returns registered tool names in stable order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.invokers))
	for name := range r.invokers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Params renders every registered tool as request parameters, in the
// same stable order List uses.
func (r *Registry) Params() []llmschema.ToolParam {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.invokers))
	for name := range r.invokers {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]llmschema.ToolParam, 0, len(names))
	for _, name := range names {
		info := r.invokers[name].Info()
		p := llmschema.ToolParam{
			Name:        info.Name,
			Description: info.Description,
		}
		if info.Schema != nil {
			p.Properties = info.Schema.Properties
			p.Required = info.Schema.Required
		}
		params = append(params, p)
	}

	return params
}
