package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/reddisetgo/internal/presentation/graph"
	"github.com/aretw0/reddisetgo/pkg/demo"
	"github.com/aretw0/reddisetgo/pkg/domain"
	"github.com/aretw0/reddisetgo/pkg/ports"
)

const (
	graphStart = "select_chain"
	graphQuit  = "quit"
)

// MenuGraph describes the demo menu as flowchart nodes.
func MenuGraph() []graph.Node {
	start := graph.Node{ID: graphStart, Label: demo.ChainPrompt, Kind: graph.KindPrompt}
	var rest []graph.Node

	for _, chain := range demo.Chains {
		if chain == domain.ChainQuit {
			start.Edges = append(start.Edges, graph.Edge{To: graphQuit, Label: string(chain)})
			continue
		}

		chainID := strings.ToLower(string(chain))
		entries := demo.Catalog[chain]
		if len(entries) == 0 {
			rest = append(rest, graph.Node{
				ID:    chainID,
				Label: demo.Placeholder(chain),
				Kind:  graph.KindPlaceholder,
				Edges: []graph.Edge{{To: graphStart}},
			})
			start.Edges = append(start.Edges, graph.Edge{To: chainID, Label: string(chain)})
			continue
		}

		menu := graph.Node{ID: chainID + "_menu", Label: demo.DemoPrompt, Kind: graph.KindPrompt}
		start.Edges = append(start.Edges, graph.Edge{To: menu.ID, Label: string(chain)})
		for _, e := range entries {
			if e.Demo == domain.DemoBack {
				menu.Edges = append(menu.Edges, graph.Edge{To: graphStart, Label: e.Label})
				continue
			}
			leaf := graph.Node{
				ID:    demoNodeID(chain, e.Demo),
				Label: e.Label,
				Kind:  graph.KindAction,
				Edges: []graph.Edge{{To: graphStart}},
			}
			if !e.Available {
				leaf.Kind = graph.KindPlaceholder
			}
			menu.Edges = append(menu.Edges, graph.Edge{To: leaf.ID, Label: e.Label})
			rest = append(rest, leaf)
		}
		rest = append(rest, menu)
	}

	nodes := append([]graph.Node{start}, rest...)
	return append(nodes, graph.Node{ID: graphQuit, Label: "Quit", Kind: graph.KindTerminal})
}

func demoNodeID(chain domain.Chain, d domain.Demo) string {
	return strings.ToLower(string(chain)) + "_" + string(d)
}

// PrintGraph writes the menu as a Mermaid flowchart. With overlay set, the saved session
// highlights the login step when it carries an account.
func PrintGraph(ctx context.Context, opts RunOptions, overlay bool) error {
	opts.defaults()

	var ov *graph.Overlay
	if overlay {
		cfg, err := loadConfig(opts)
		if err != nil {
			return err
		}
		ov = &graph.Overlay{Current: graphStart}
		err = withStore(ctx, &opts, func(store ports.SnapshotStore) error {
			snap, err := store.Load(ctx, cfg.Store.Session)
			if errors.Is(err, domain.ErrSnapshotNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("loading session %q: %w", cfg.Store.Session, err)
			}
			if snap.Authenticated() {
				ov.Visited = append(ov.Visited, demoNodeID(domain.ChainNear, domain.DemoLogin))
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	fmt.Fprint(opts.Stdout, graph.GenerateMermaid(MenuGraph(), ov))
	return nil
}
