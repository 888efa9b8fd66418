package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iho/goreceipts/internal/adapter/http/dto"
	"github.com/iho/goreceipts/internal/app"
	"github.com/iho/goreceipts/internal/domain"
	"github.com/iho/goreceipts/internal/infrastructure/config"
	"github.com/iho/goreceipts/internal/infrastructure/logger"
	"github.com/iho/goreceipts/internal/usecase"
)

// opener builds the application for one command invocation.
type opener func(ctx context.Context) (*app.App, error)

func main() {
	c := newCLI(openFromEnv)
	if err := c.run(c.rootCmd()); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

func openFromEnv(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	// Logs go to stderr so that --json output stays parseable.
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Output: os.Stderr})
	return app.New(ctx, cfg, log)
}

type cli struct {
	open    opener
	app     *app.App
	jsonOut bool
}

func newCLI(open opener) *cli {
	return &cli{open: open}
}

// run executes cmd and closes the app afterwards, also when the command
// failed: cobra skips post-run hooks after a RunE error.
func (c *cli) run(cmd *cobra.Command) error {
	err := cmd.Execute()
	if closeErr := c.close(); err == nil {
		err = closeErr
	}
	return err
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func (c *cli) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "receipts",
		Short:         "Rent receipts tool",
		Long:          `Manage rent records and print them as receipts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "Print records as JSON")

	rootCmd.AddCommand(
		c.listCmd(),
		c.addCmd(),
		c.setCmd(),
		c.removeCmd(),
		c.shiftCmd(),
		c.printCmd(),
		c.exportCmd(),
	)

	return rootCmd
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := c.app.Records.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if c.jsonOut {
				return printJSON(out, dto.RecordListFromDomain(records))
			}
			printTable(out, records)
			return nil
		},
	}
}

// recordFlags binds the editable record fields.
type recordFlags struct {
	unit, tenant, amount, from, to string
}

func (f *recordFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.unit, "unit", "", "Unit (departamento)")
	cmd.Flags().StringVar(&f.tenant, "tenant", "", "Tenant name")
	cmd.Flags().StringVar(&f.amount, "amount", "", "Amount, e.g. 1500.00")
	cmd.Flags().StringVar(&f.from, "from", "", "Period start, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "Period end, YYYY-MM-DD")
}

// patch includes only the flags given on the command line, so that
// --amount "" clears the amount while an omitted flag leaves it alone.
func (f *recordFlags) patch(cmd *cobra.Command) usecase.RecordPatch {
	var p usecase.RecordPatch
	set := func(name string, v *string, dst **string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("unit", &f.unit, &p.Unit)
	set("tenant", &f.tenant, &p.Tenant)
	set("amount", &f.amount, &p.Amount)
	set("from", &f.from, &p.PeriodStart)
	set("to", &f.to, &p.PeriodEnd)
	return p
}

func (c *cli) addCmd() *cobra.Command {
	var flags recordFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record for the current month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := c.app.Records.Add(cmd.Context(), flags.patch(cmd))
			if err != nil {
				return err
			}
			return c.printRecord(cmd.OutOrStdout(), rec)
		},
	}
	flags.bind(cmd)
	return cmd
}

func (c *cli) setCmd() *cobra.Command {
	var flags recordFlags
	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Edit fields of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := flags.patch(cmd)
			if patch.Empty() {
				return errors.New("nothing to update: pass at least one of --unit, --tenant, --amount, --from, --to")
			}
			rec, err := c.app.Records.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return c.printRecord(cmd.OutOrStdout(), rec)
		},
	}
	flags.bind(cmd)
	return cmd
}

func (c *cli) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Records.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
}

func (c *cli) shiftCmd() *cobra.Command {
	var months int
	cmd := &cobra.Command{
		Use:   "shift <id>",
		Short: "Move a record's period by whole months",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if months == 0 {
				return errors.New("--months must not be zero")
			}
			rec, err := c.app.Records.Shift(cmd.Context(), args[0], months)
			if err != nil {
				return err
			}
			return c.printRecord(cmd.OutOrStdout(), rec)
		},
	}
	cmd.Flags().IntVar(&months, "months", 1, "Months to shift by; negative moves back")
	return cmd
}

func (c *cli) printCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print receipts for every complete record as one PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.app.Printer.Print(cmd.Context())
			if err != nil {
				return err
			}
			path := outputPath(out, result.Filename)
			if err := os.WriteFile(path, result.Document, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d receipts on %d pages to %s\n", len(result.Receipts), result.Pages, path)
			if result.Skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped %d incomplete records\n", result.Skipped)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file or directory (default: configured file name)")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all records as a spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.app.Exporter.Export(cmd.Context())
			if err != nil {
				return err
			}
			path := outputPath(out, result.Filename)
			if err := os.WriteFile(path, result.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", result.Records, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file or directory (default: configured file name)")
	return cmd
}

func (c *cli) printRecord(w io.Writer, rec domain.Record) error {
	if c.jsonOut {
		return printJSON(w, dto.RecordFromDomain(rec))
	}
	printTable(w, []domain.Record{rec})
	return nil
}

// outputPath resolves --out: empty means the default name in the working
// directory, an existing directory gets the default name inside it.
func outputPath(out, defaultName string) string {
	if out == "" {
		return defaultName
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, defaultName)
	}
	return out
}

func printTable(w io.Writer, records []domain.Record) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUNIT\tTENANT\tAMOUNT\tFROM\tTO\tPRINTABLE")
	for _, r := range dto.RecordsFromDomain(records) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			dash(r.Unit),
			dash(truncate(r.Tenant, 24)),
			dash(r.AmountDisplay),
			dash(r.PeriodStartDisplay),
			dash(r.PeriodEndDisplay),
			yesNo(r.Printable),
		)
	}
	tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to at most n characters.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// userMessage turns limit conditions into plain messages.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEntryLimitReached):
		return fmt.Sprintf("Se alcanzó el límite de %d registros.", domain.MaxRecords)
	case errors.Is(err, domain.ErrNoPrintableRecords):
		return "No hay registros completos para imprimir: cada recibo necesita inquilino, monto y período."
	case errors.Is(err, domain.ErrRecordNotFound):
		return "Registro no encontrado: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}

