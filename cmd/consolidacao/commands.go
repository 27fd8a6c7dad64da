package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/empetur/consolidacao/internal/domain/session"
	"github.com/empetur/consolidacao/internal/sheet"
	"github.com/spf13/cobra"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load and normalize the source, then print its counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, _, err := a.openSource(a.cfg.Source.Path)
			if err != nil {
				return err
			}
			raw, version, err := repo.Load(cmd.Context())
			if err != nil {
				return err
			}
			mapped := inventory.MapColumns(raw)
			assigned := 0
			for _, it := range inventory.FromTable(mapped) {
				if strings.TrimSpace(it.ItemID) == "" {
					assigned++
				}
			}
			items := inventory.DeriveRoutes(inventory.Enforce(mapped))
			summary := inventory.Summarize(items)
			munis := inventory.MunicipalityOptions(items)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "source\t%s\n", a.cfg.Source.Path)
			fmt.Fprintf(w, "version\t%s\n", version)
			fmt.Fprintf(w, "rows\t%d\n", summary.Total)
			fmt.Fprintf(w, "ids assigned\t%d\n", assigned)
			fmt.Fprintf(w, "municipios\t%d\n", len(munis)-1)
			for _, v := range inventory.ValidationOptions {
				fmt.Fprintf(w, "validacao %s\t%d\n", v, summary.ByValidacao[v])
			}
			fmt.Fprintf(w, "in route\t%d\n", summary.InRoute)
			fmt.Fprintf(w, "visited\t%d\n", summary.Visited)
			return w.Flush()
		},
	}
}

func newRouteCommand(a *app) *cobra.Command {
	var (
		municipio string
		format    string
		out       string
	)
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Write the field route of a scope to a spreadsheet",
		Example: `  # Consolidated route as ROTA_ALL_Consolidado.xlsx
  consolidacao route

  # One municipality as csv
  consolidacao route --municipio "Cabo de Santo Agostinho" --format csv --out rotas`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format == "" {
				format = a.cfg.Export.Format
			}
			f, err := sheet.ParseFormat(format)
			if err != nil {
				return err
			}
			if out == "" {
				out = a.cfg.Export.Dir
			}

			repo, sourceDB, err := a.openSource(a.cfg.Source.Path)
			if err != nil {
				return err
			}
			activitySvc, err := a.openActivity(sourceDB)
			if err != nil {
				return err
			}
			svc := session.NewService(repo, activitySvc, a.logger)
			if _, err := svc.Open(cmd.Context()); err != nil {
				return err
			}

			exp, err := svc.RouteExport(cmd.Context(), municipio)
			if err != nil {
				return err
			}
			path, err := sheet.WriteRoute(out, exp, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(exp.Items), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&municipio, "municipio", "", "municipality scope (default: consolidated)")
	cmd.Flags().StringVar(&format, "format", "", "xlsx or csv (default: CONSOLIDACAO_EXPORT_FORMAT)")
	cmd.Flags().StringVar(&out, "out", "", "output directory (default: CONSOLIDACAO_EXPORT_DIR)")
	return cmd
}

func newConvertCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert SRC DEST",
		Short: "Normalize a source table and write it to another backend",
		Long: `convert reads SRC with any backend, runs the ingestion pipeline (column
mapping, schema enforcement and route derivation) and replaces the
content of DEST with the result. Use it to move a spreadsheet into a
SQLite database or to export a database back to xlsx or csv.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _, err := a.openSource(args[0])
			if err != nil {
				return err
			}
			dest, _, err := a.openTarget(args[1])
			if err != nil {
				return err
			}

			raw, _, err := src.Load(cmd.Context())
			if err != nil {
				return err
			}
			items := inventory.Normalize(raw)
			version, err := dest.Save(cmd.Context(), inventory.ToTable(items))
			if err != nil {
				return err
			}
			a.logger.Info("table converted", "src", args[0], "dest", args[1], "rows", len(items), "version", version)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(items), args[1])
			return nil
		},
	}
}
