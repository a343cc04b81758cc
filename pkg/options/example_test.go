package options_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/infographic/pkg/element"
	"github.com/matzehuels/infographic/pkg/options"
)

func ExampleTemplates() {
	for _, t := range options.Templates() {
		fmt.Println(t.Name)
	}
	// Output:
	// hierarchy-tree-pill-badge
	// hierarchy-tree-simple
	// list-row-pill-badge
	// list-row-simple
	// sequence-cylinders-3d-simple
}

func ExampleParse() {
	spec := `
template: list-row-simple
data:
  items:
    - label: Plan
    - label: Build
`
	o, err := options.Decode(strings.NewReader(spec), options.FormatYAML)
	if err != nil {
		panic(err)
	}
	o.Measurer = element.HeuristicMeasurer{}

	p, err := options.Parse(o)
	if err != nil {
		panic(err)
	}
	fmt.Println(p.Data.Count(), p.Background())
	// Output: 2 #ffffff
}
