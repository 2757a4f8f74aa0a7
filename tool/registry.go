package tool

import (
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/tools"

	"github.com/smallnest/supportagent/catalog"
)

// Registry pairs the callable tools with the schema declarations sent to the
// model. It is built once and passed by reference into every model call.
type Registry struct {
	byName      map[string]tools.Tool
	definitions []llms.Tool
}

// NewRegistry builds the registry for the given catalog with the three
// product lookup tools registered.
func NewRegistry(c *catalog.Catalog) *Registry {
	r := &Registry{
		byName: make(map[string]tools.Tool),
	}

	r.register(&ProductDetails{Catalog: c})
	r.register(&ProductPrice{Catalog: c})
	r.register(&ProductInformation{Catalog: c})

	return r
}

func (r *Registry) register(t tools.Tool) {
	r.byName[t.Name()] = t
	r.definitions = append(r.definitions, llms.Tool{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"product_name": map[string]any{
						"type":        "string",
						"description": "The name of the product",
					},
				},
				"required":             []string{"product_name"},
				"additionalProperties": false,
			},
		},
	})
}

// Lookup returns the tool registered under the given name.
func (r *Registry) Lookup(name string) (tools.Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Definitions returns the tool schemas to declare on each model call.
func (r *Registry) Definitions() []llms.Tool {
	return r.definitions
}
