// Package graph provides the state-machine engine the support agent runs on.
//
// A StateGraph is a set of named nodes connected by static or conditional
// edges. Each node is a function that transforms the state; execution starts
// at the entry point and proceeds strictly sequentially until a route to the
// END sentinel is taken. Cyclic graphs are allowed (the agent's model/tools
// loop is one), so every run is bounded by a maximum step count and fails
// with ErrMaxStepsExceeded instead of spinning forever.
//
// # Example
//
//	g := graph.NewStateGraph()
//
//	g.AddNode("agent", "calls the model", callModel)
//	g.AddNode("tools", "executes tool calls", runTools)
//
//	g.SetEntryPoint("agent")
//	g.AddConditionalEdge("agent", routeAfterModel)
//	g.AddEdge("tools", "agent")
//
//	runnable, err := g.Compile()
//	if err != nil {
//		return err
//	}
//	result, err := runnable.Invoke(ctx, initialState)
//
// Nodes that call external services can be registered with AddNodeWithRetry,
// which wraps the node function with exponential backoff.
package graph
