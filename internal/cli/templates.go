package cli

import (
	"bytes"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/infographic/pkg/data"
	"github.com/matzehuels/infographic/pkg/options"
)

// templatesCommand creates the templates command.
func (c *CLI) templatesCommand() *cobra.Command {
	var (
		pick   bool
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the template catalog",
		Long: `List the built-in templates with their structure and item renderer.

With --pick, browse the catalog interactively and write a starter spec for
the selected template.`,
		Example: `  infographic templates
  infographic templates --pick -o roadmap.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates := options.Templates()
			if !pick {
				printTemplates(templates)
				return nil
			}
			return c.runPick(templates, output, format)
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "choose a template interactively and write a starter spec")
	cmd.Flags().StringVarP(&output, "output", "o", "", "starter spec file (default: stdout)")
	cmd.Flags().StringVar(&format, "spec-format", "", "starter spec format: json, yaml, toml (default: from --output, else yaml)")

	return cmd
}

func printTemplates(templates []options.TemplateInfo) {
	rows := make([][]string, len(templates))
	for i, t := range templates {
		rows[i] = templateRow("", t)
	}
	t := templateTable(rows).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			if col == 1 {
				return StyleHighlight
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})
	fmt.Println(t.Render())
}

func (c *CLI) runPick(templates []options.TemplateInfo, output, format string) error {
	if !isTerminal(os.Stdin) {
		return fmt.Errorf("--pick needs an interactive terminal")
	}
	result, err := tea.NewProgram(NewTemplateListModel(templates)).Run()
	if err != nil {
		return fmt.Errorf("template picker: %w", err)
	}
	m, ok := result.(TemplateListModel)
	if !ok || m.Selected == nil {
		printInfo("No template selected")
		return nil
	}

	if format == "" {
		format = options.FormatYAML
		if output != "" {
			if format, err = options.FormatFromPath(output); err != nil {
				return err
			}
		}
	}

	var buf bytes.Buffer
	if err := options.Encode(&buf, starterSpec(*m.Selected), format); err != nil {
		return err
	}
	if output == "" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := writeFile(output, buf.Bytes()); err != nil {
		return err
	}

	printSuccess("Created %s from %s", output, m.Selected.Name)
	printNextStep("Render it", fmt.Sprintf("%s render %s", appName, output))
	return nil
}

// starterSpec returns a spec using t with placeholder data shaped for its
// structure.
func starterSpec(t options.TemplateInfo) options.Options {
	d := data.Data{Title: "Title", Desc: "A short description"}
	structure, _ := designSummary(t.Design)
	if structure == "hierarchy-tree" {
		d.Items = []data.Item{{
			Label: "Root",
			Children: []data.Item{
				{Label: "First", Desc: "Detail"},
				{Label: "Second", Desc: "Detail"},
			},
		}}
	} else {
		for _, label := range []string{"Plan", "Build", "Ship"} {
			d.Items = append(d.Items, data.Item{Label: label, Desc: "Detail"})
		}
	}
	return options.Options{Template: t.Name, Data: d}
}
