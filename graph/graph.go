package graph

import (
	"context"
	"errors"
	"fmt"
)

// END is a special constant used to represent the end node in the graph.
const END = "END"

// DefaultMaxSteps bounds how many node executions a single Invoke may perform
// before the runner gives up with ErrMaxStepsExceeded.
const DefaultMaxSteps = 25

var (
	// ErrEntryPointNotSet is returned when the entry point of the graph is not set.
	ErrEntryPointNotSet = errors.New("entry point not set")

	// ErrNodeNotFound is returned when a node is not found in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNoOutgoingEdge is returned when no outgoing edge is found for a node.
	ErrNoOutgoingEdge = errors.New("no outgoing edge found for node")

	// ErrMaxStepsExceeded is returned when a run performs more node executions
	// than the graph's configured maximum. It usually means a cycle in the
	// graph never produced a route to END.
	ErrMaxStepsExceeded = errors.New("max steps exceeded")
)

// Node represents a node in the graph.
type Node struct {
	// Name is the unique identifier for the node.
	Name string

	// Description describes the functionality of the node.
	Description string

	// Function is the function associated with the node.
	// It takes a context and the current state as input and returns the
	// updated state and an error.
	Function func(ctx context.Context, state any) (any, error)
}

// Edge represents an edge in the graph.
type Edge struct {
	// From is the name of the node from which the edge originates.
	From string

	// To is the name of the node to which the edge points.
	To string
}

// StateGraph is a sequential state machine: named nodes connected by static
// or conditional edges, executed one at a time from the entry point until a
// route to END is taken.
type StateGraph struct {
	// nodes is a map of node names to their corresponding Node objects
	nodes map[string]Node

	// edges is a slice of Edge objects representing the connections between nodes
	edges []Edge

	// conditionalEdges contains a map between "From" node, while "To" node is derived based on the condition
	conditionalEdges map[string]func(ctx context.Context, state any) string

	// entryPoint is the name of the entry point node in the graph
	entryPoint string

	// maxSteps bounds node executions per Invoke; DefaultMaxSteps when zero
	maxSteps int
}

// NewStateGraph creates a new instance of StateGraph.
func NewStateGraph() *StateGraph {
	return &StateGraph{
		nodes:            make(map[string]Node),
		conditionalEdges: make(map[string]func(ctx context.Context, state any) string),
	}
}

// AddNode adds a new node to the state graph with the given name, description and function
func (g *StateGraph) AddNode(name string, description string, fn func(ctx context.Context, state any) (any, error)) {
	g.nodes[name] = Node{
		Name:        name,
		Description: description,
		Function:    fn,
	}
}

// AddEdge adds a new edge to the state graph between the "from" and "to" nodes
func (g *StateGraph) AddEdge(from, to string) {
	g.edges = append(g.edges, Edge{
		From: from,
		To:   to,
	})
}

// AddConditionalEdge adds a conditional edge where the target node is determined at runtime
func (g *StateGraph) AddConditionalEdge(from string, condition func(ctx context.Context, state any) string) {
	g.conditionalEdges[from] = condition
}

// SetEntryPoint sets the entry point node name for the state graph
func (g *StateGraph) SetEntryPoint(name string) {
	g.entryPoint = name
}

// SetMaxSteps sets the maximum number of node executions per Invoke.
func (g *StateGraph) SetMaxSteps(n int) {
	g.maxSteps = n
}

// Runnable represents a compiled state graph that can be invoked
type Runnable struct {
	graph *StateGraph
}

// Compile compiles the state graph and returns a Runnable instance
func (g *StateGraph) Compile() (*Runnable, error) {
	if g.entryPoint == "" {
		return nil, ErrEntryPointNotSet
	}

	return &Runnable{
		graph: g,
	}, nil
}

// Invoke executes the compiled state graph with the given input state.
// Nodes run strictly sequentially. Execution ends when a route to END is
// taken, the context is cancelled, or the step budget runs out.
func (r *Runnable) Invoke(ctx context.Context, initialState any) (any, error) {
	state := initialState
	current := r.graph.entryPoint

	maxSteps := r.graph.maxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	for step := 0; ; step++ {
		if current == END {
			return state, nil
		}
		if step >= maxSteps {
			return state, fmt.Errorf("%w: %d steps, stopped at node %s", ErrMaxStepsExceeded, maxSteps, current)
		}

		select {
		case <-ctx.Done():
			return state, ctx.Err()
		default:
		}

		node, ok := r.graph.nodes[current]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, current)
		}

		res, err := node.Function(ctx, state)
		if err != nil {
			return nil, fmt.Errorf("error in node %s: %w", current, err)
		}
		state = res

		next, err := r.nextNode(ctx, current, state)
		if err != nil {
			return nil, err
		}
		current = next
	}
}

// nextNode determines the next node based on conditional edges first, then static edges
func (r *Runnable) nextNode(ctx context.Context, nodeName string, state any) (string, error) {
	if condition, ok := r.graph.conditionalEdges[nodeName]; ok {
		next := condition(ctx, state)
		if next == "" {
			return "", fmt.Errorf("conditional edge returned empty next node from %s", nodeName)
		}
		return next, nil
	}

	for _, edge := range r.graph.edges {
		if edge.From == nodeName {
			return edge.To, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNoOutgoingEdge, nodeName)
}
