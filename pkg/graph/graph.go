package graph

import (
	"fmt"

	"github.com/depictlang/depict/pkg/dag"
	"github.com/depictlang/depict/pkg/dsl"
)

// Metadata keys Build attaches to edges.
const (
	MetaLabel       = "label"
	MetaResponse    = "response"
	MetaHasResponse = "has_response"
)

// Note is a self-directed action: a single-actor statement with no
// receiver to draw an edge to.
type Note struct {
	Label       string
	Response    string
	HasResponse bool
}

// Graph is the typed multigraph a Depict DSL program compiles to,
// together with the containment hierarchy the source's indentation
// declared.
type Graph struct {
	// DAG holds actors as [dag.NodeKindRegular] nodes and actions as
	// edges, unranked (every node's Rank is 0 until
	// [github.com/depictlang/depict/pkg/dag/transform.AssignRanks] runs).
	DAG *dag.DAG

	// Containment maps an actor ID to the actor IDs nested beneath it via
	// indentation or `|` markers.
	Containment map[string][]string

	// Notes maps an actor ID to the self-directed actions declared on it.
	Notes map[string][]Note
}

// Build compiles a parsed program into a Graph. Build assumes prog was
// produced by [dsl.Parse] and does not re-validate statement structure.
func Build(prog *dsl.Program) (*Graph, error) {
	g := &Graph{
		DAG:         dag.New(nil),
		Containment: make(map[string][]string),
		Notes:       make(map[string][]Note),
	}

	declared := make(map[string]bool)
	for _, stmt := range prog.Statements {
		for _, actor := range stmt.Actors {
			if declared[actor.Name] {
				continue
			}
			declared[actor.Name] = true
			if err := g.DAG.AddNode(dag.Node{ID: actor.Name}); err != nil {
				return nil, fmt.Errorf("declare actor %q: %w", actor.Name, err)
			}
		}
	}

	for _, stmt := range prog.Statements {
		g.addContainment(prog, stmt)

		if len(stmt.Actors) == 1 {
			actor := stmt.Actors[0].Name
			for _, action := range stmt.Actions {
				g.Notes[actor] = append(g.Notes[actor], Note{
					Label:       action.Label,
					Response:    action.Response,
					HasResponse: action.HasResponse,
				})
			}
			continue
		}

		for _, action := range stmt.Actions {
			for i := 0; i < len(stmt.Actors)-1; i++ {
				from, to := stmt.Actors[i].Name, stmt.Actors[i+1].Name
				meta := dag.Metadata{MetaLabel: action.Label}
				if action.HasResponse {
					meta[MetaResponse] = action.Response
					meta[MetaHasResponse] = true
				}
				if err := g.DAG.AddEdge(dag.Edge{From: from, To: to, Meta: meta}); err != nil {
					return nil, fmt.Errorf("add action %s→%s %q: %w", from, to, action.Label, err)
				}
			}
		}
	}

	return g, nil
}

func (g *Graph) addContainment(prog *dsl.Program, stmt dsl.Statement) {
	if stmt.Parent < 0 || stmt.Parent >= len(prog.Statements) {
		return
	}
	parentStmt := prog.Statements[stmt.Parent]
	if len(parentStmt.Actors) == 0 || len(stmt.Actors) == 0 {
		return
	}

	parentID := parentStmt.Actors[0].Name
	for _, child := range stmt.Actors {
		if child.Name == parentID {
			continue
		}
		if !containsString(g.Containment[parentID], child.Name) {
			g.Containment[parentID] = append(g.Containment[parentID], child.Name)
		}
	}
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
