package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/psychat-dev/psychat/internal/errors"
	"github.com/psychat-dev/psychat/internal/routes"
	"github.com/psychat-dev/psychat/pkg/router"
	"github.com/psychat-dev/psychat/pkg/server"
)

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>",
		Short: "Resolve a path to its view",
		Long: `Resolve a navigation path and print the match as JSON.

Exits with status 1 when no route matches.

Examples:
  psychat resolve /psychologist/42/chat
  psychat resolve "/psychologist/42/intro?ref=home"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}

			result, err := table.Resolve(args[0])
			if err != nil {
				return errors.New("P201").
					WithDetail(fmt.Sprintf("No route matches %q.", args[0])).
					WithSuggestion("Run `psychat routes` to list the registered templates.").
					Wrap(err)
			}
			return printJSON(cmd.OutOrStdout(), server.NewMatch(result))
		},
	}
}

func routesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List registered routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), table.Routes())
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATH\tVIEW")
			for _, r := range table.Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.Path, r.View)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print routes as JSON")

	return cmd
}

func hrefCmd() *cobra.Command {
	var fragment string

	cmd := &cobra.Command{
		Use:   "href <name> [key=value...]",
		Short: "Build the path of a named route",
		Long: `Build the path of a named route from key=value parameters.

Examples:
  psychat href HomePage
  psychat href PsychologistChat id=42`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}

			params := make(map[string]string, len(args)-1)
			for _, arg := range args[1:] {
				key, value, ok := strings.Cut(arg, "=")
				if !ok || key == "" {
					return errors.New("P400").
						WithDetail(fmt.Sprintf("Parameter %q is not of the form key=value.", arg))
				}
				params[key] = value
			}

			var opts []router.HrefOption
			if fragment != "" {
				opts = append(opts, router.WithFragment(fragment))
			}

			href, err := table.Href(args[0], params, opts...)
			if err != nil {
				return errors.New("P202").Wrap(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), href)
			return nil
		},
	}

	cmd.Flags().StringVar(&fragment, "fragment", "", "Fragment to append after #")

	return cmd
}

func loadTable() (*router.Table, error) {
	table, err := routes.New()
	if err != nil {
		return nil, errors.FromError(err, "P200")
	}
	return table, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
