package sim

import (
	"sort"

	"github.com/san-kum/memsim/internal/dynamo"
	"github.com/san-kum/memsim/internal/integrators"
	"github.com/san-kum/memsim/internal/physics"
)

// Registry maps model ids and integrator names to instances. Registered
// values are stateless and safe for concurrent use.
type Registry struct {
	models      map[string]dynamo.Model
	integrators map[string]integrators.Integrator
}

// NewRegistry returns a registry holding every built-in model and
// integrator.
func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]dynamo.Model),
		integrators: make(map[string]integrators.Integrator),
	}
	r.RegisterModel(physics.NewHPLabs())
	r.RegisterModel(physics.NewYakopcic())
	r.RegisterIntegrator(integrators.NewDormandPrince())
	r.RegisterIntegrator(integrators.NewRK4())
	r.RegisterIntegrator(integrators.NewEuler())
	return r
}

func (r *Registry) RegisterModel(m dynamo.Model) {
	r.models[m.ID()] = m
}

func (r *Registry) RegisterIntegrator(in integrators.Integrator) {
	r.integrators[in.Name()] = in
}

// Model looks up a model by id.
func (r *Registry) Model(id string) (dynamo.Model, bool) {
	m, ok := r.models[id]
	return m, ok
}

// Models returns the registered models sorted by id.
func (r *Registry) Models() []dynamo.Model {
	out := make([]dynamo.Model, 0, len(r.models))
	for _, m := range r.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (r *Registry) Integrator(name string) (integrators.Integrator, bool) {
	in, ok := r.integrators[name]
	return in, ok
}

// Integrators returns the registered integrator names in sorted order.
func (r *Registry) Integrators() []string {
	out := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
