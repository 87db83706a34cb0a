package dsl_test

import (
	"fmt"

	"github.com/depictlang/depict/pkg/dsl"
)

func ExampleParse() {
	src := "Client Server: request/response\n"

	prog, err := dsl.Parse(src)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	stmt := prog.Statements[0]
	fmt.Println("Actors:", stmt.Actors[0].Name, stmt.Actors[1].Name)
	fmt.Println("Action:", stmt.Actions[0].Label, "/", stmt.Actions[0].Response)
	// Output:
	// Actors: Client Server
	// Action: request / response
}

func ExampleParse_hierarchy() {
	src := "User API: login\n\tAPI DB: query\n"

	prog, err := dsl.Parse(src)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for i, stmt := range prog.Statements {
		fmt.Printf("statement %d: level=%d parent=%d\n", i, stmt.Level, stmt.Parent)
	}
	// Output:
	// statement 0: level=0 parent=-1
	// statement 1: level=1 parent=0
}

func ExampleParse_error() {
	_, err := dsl.Parse("A B no colon\n")
	fmt.Println(err)
	// Output:
	// parse error at line 1, col 1: statement is missing a ':' separating actors from actions (DanglingColon)
}
