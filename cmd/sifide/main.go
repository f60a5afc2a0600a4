package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/defycont/SIFIDE2025-v1.0/internal/calculation"
	"github.com/defycont/SIFIDE2025-v1.0/internal/cfdi"
	"github.com/defycont/SIFIDE2025-v1.0/internal/config"
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/defycont/SIFIDE2025-v1.0/internal/logging"
	"github.com/defycont/SIFIDE2025-v1.0/internal/output"
	"github.com/defycont/SIFIDE2025-v1.0/internal/server"
	"github.com/defycont/SIFIDE2025-v1.0/internal/store"
	"github.com/defycont/SIFIDE2025-v1.0/pkg/dateutil"
	fiscaldec "github.com/defycont/SIFIDE2025-v1.0/pkg/decimal"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	tablesFile string
	verbose    bool
	formatName string
	outputDir  string
	lossYear   int

	incomeAdjust  string
	expenseAdjust string

	surchargeAmount string
	surchargeDue    string
	surchargePaid   string

	saveImport bool
)

var rootCmd = &cobra.Command{
	Use:   "sifide",
	Short: "Calculadora fiscal para contribuyentes mexicanos",
	Long: `SIFIDE calcula las cédulas de IVA, pagos provisionales de ISR, RESICO,
la declaración anual preliminar, alertas de cumplimiento y proyecciones
a partir de los registros mensuales de un contribuyente.`,
	SilenceUsage: true,
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [bundle-file]",
	Short: "Calcula el reporte fiscal de un contribuyente",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		data, err := config.NewTaxpayerParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		report := engine.Calculate(*data)

		if outputDir != "" {
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			files, err := output.GenerateReport(report, formatName, outputDir)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "Reporte escrito en %s\n", f)
			}
			return nil
		}

		f := output.GetFormatterByName(formatName)
		if f == nil {
			return fmt.Errorf("%w: %s (disponibles: %s)", output.ErrUnsupportedFormat, formatName,
				strings.Join(output.AvailableFormatterNames(), ", "))
		}
		out, err := f.Format(report)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var alertsCmd = &cobra.Command{
	Use:   "alerts [bundle-file]",
	Short: "Muestra las alertas de cumplimiento",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		data, err := config.NewTaxpayerParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		for _, a := range engine.Calculate(*data).Alerts {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", strings.ToUpper(string(a.Severity)), a.Title, a.Message)
		}
		return nil
	},
}

var projectCmd = &cobra.Command{
	Use:   "project [bundle-file]",
	Short: "Proyecta el siguiente ejercicio fiscal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		data, err := config.NewTaxpayerParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		settings := domain.ProjectionSettings{
			IncomeAdjustmentPercent:  fiscaldec.CoerceString(incomeAdjust),
			ExpenseAdjustmentPercent: fiscaldec.CoerceString(expenseAdjust),
		}
		return printJSON(cmd, engine.Project(engine.Calculate(*data), settings))
	},
}

var lossesCmd = &cobra.Command{
	Use:   "losses [bundle-file]",
	Short: "Actualiza las pérdidas fiscales de ejercicios anteriores con el INPC",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		data, err := config.NewTaxpayerParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		year := lossYear
		if year == 0 {
			year = data.Config.FiscalYear
		}
		update := engine.UpdateLosses(data.HistoricalLosses, year)
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Pérdidas actualizadas para %d\n", update.ApplicationYear)
		for _, l := range update.Losses {
			if l.Error != "" {
				fmt.Fprintf(w, "  %d  %s  ERROR: %s\n", l.OriginYear, fiscaldec.FormatMXN(l.Amount), l.Error)
				continue
			}
			fmt.Fprintf(w, "  %d  %s -> %s\n", l.OriginYear, fiscaldec.FormatMXN(l.Amount), fiscaldec.FormatMXN(l.UpdatedAmount))
		}
		fmt.Fprintf(w, "Total aplicable: %s\n", fiscaldec.FormatMXN(update.TotalApplicable))
		return nil
	},
}

var surchargeCmd = &cobra.Command{
	Use:   "surcharge",
	Short: "Calcula actualización y recargos de un pago extemporáneo",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		amount, err := decimal.NewFromString(surchargeAmount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", surchargeAmount, err)
		}
		due, err := dateutil.ParseDate(surchargeDue)
		if err != nil {
			return fmt.Errorf("due date: %w", err)
		}
		paid, err := dateutil.ParseDate(surchargePaid)
		if err != nil {
			return fmt.Errorf("payment date: %w", err)
		}
		result, err := engine.Surcharge(amount, due, paid)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Monto original:     %s\n", fiscaldec.FormatMXN(result.OriginalAmount))
		fmt.Fprintf(w, "Factor de act.:     %s\n", result.UpdateFactor.StringFixed(4))
		fmt.Fprintf(w, "Monto actualizado:  %s\n", fiscaldec.FormatMXN(result.UpdatedAmount))
		fmt.Fprintf(w, "Meses de atraso:    %d\n", result.MonthsLate)
		fmt.Fprintf(w, "Recargos:           %s\n", fiscaldec.FormatMXN(result.Surcharges))
		fmt.Fprintf(w, "Total a pagar:      %s\n", fiscaldec.FormatMXN(result.Total))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import-cfdi [bundle-file] [xml-file-or-dir...]",
	Short: "Importa facturas CFDI a los registros mensuales",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewTaxpayerParser()
		data, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		docs, err := cfdi.LoadDocuments(args[1:]...)
		if err != nil {
			return err
		}
		result := cfdi.Import(data, docs)

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Facturas leídas: %d, aplicadas: %d, con error: %d\n",
			len(result.Items), result.Applied, len(result.Failed))
		for _, name := range result.Failed {
			fmt.Fprintf(w, "  no se pudo leer %s\n", name)
		}
		for _, c := range result.TopClients {
			fmt.Fprintf(w, "  cliente   %-13s %s\n", c.RFC, fiscaldec.FormatMXN(c.Total))
		}
		for _, s := range result.TopSuppliers {
			fmt.Fprintf(w, "  proveedor %-13s %s\n", s.RFC, fiscaldec.FormatMXN(s.Total))
		}

		if saveImport && result.Applied > 0 {
			if err := parser.SaveToFile(data, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(w, "Registros guardados en %s\n", args[0])
		}
		return nil
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example [output-file]",
	Short: "Genera un archivo de contribuyente de ejemplo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewTaxpayerParser()
		if err := parser.SaveToFile(parser.CreateExampleTaxpayer(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Ejemplo escrito en %s\n", args[0])
		return nil
	},
}

var rfcCmd = &cobra.Command{
	Use:   "rfc [rfc]",
	Short: "Valida un RFC",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rfc := domain.NormalizeRFC(args[0])
		if err := domain.ValidateRFC(rfc); err != nil {
			return fmt.Errorf("RFC %s: %w", rfc, err)
		}
		kind := "genérico"
		if pt, err := domain.ClassifyRFC(rfc); err == nil && !domain.IsGenericRFC(rfc) {
			kind = "persona " + strings.ToLower(string(pt))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s válido (%s)\n", rfc, kind)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia el servidor HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger := logging.Setup(cfg.LogLevel, cfg.IsProduction(), nil)
		if tablesFile == "" {
			tablesFile = cfg.TablesFile
		}
		engine, err := newEngine()
		if err != nil {
			return err
		}
		engine.SetLogger(logging.NewCalc(logger))

		ctx := context.Background()
		var st store.Store = store.NewMemoryStore()
		if cfg.DatabaseURL != "" {
			pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer pool.Close()
			if err := pool.Ping(ctx); err != nil {
				return fmt.Errorf("failed to ping database: %w", err)
			}
			pg := store.NewPostgresStore(pool)
			if err := pg.EnsureSchema(ctx); err != nil {
				return err
			}
			logger.Info().Msg("Connected to database")
			st = pg
		} else {
			logger.Warn().Msg("DATABASE_URL not set, taxpayers are kept in memory")
		}

		srv := server.New(engine, st, logger, server.Options{
			CORSOrigins: cfg.CORSOrigins,
			RateLimit:   cfg.RateLimit,
			RateBurst:   cfg.RateBurst,
		})

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		case <-quit:
		}

		logger.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		logger.Info().Msg("Server exited")
		return nil
	},
}

// newEngine builds the engine over the bundled tables or the --tables override.
func newEngine() (*calculation.CalculationEngine, error) {
	ref := config.DefaultReferenceData()
	if tablesFile != "" {
		var err error
		ref, err = config.NewTableLoader().LoadFromFile(tablesFile)
		if err != nil {
			return nil, err
		}
	}
	engine := calculation.NewCalculationEngineWithTables(ref.Tables, ref.INPC)
	if verbose {
		engine.SetLogger(logging.NewCalc(logging.Setup(zerolog.DebugLevel, false, nil)))
	}
	return engine, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&tablesFile, "tables", "", "YAML file with ISR/RESICO/INPC overrides")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine details to stderr")

	calculateCmd.Flags().StringVarP(&formatName, "format", "f", "console",
		"output format: "+strings.Join(output.AvailableFormatterNames(), ", ")+" (or all with --output)")
	calculateCmd.Flags().StringVarP(&outputDir, "output", "o", "", "write report files to this directory")

	projectCmd.Flags().StringVar(&incomeAdjust, "income-adjust", "0", "income adjustment in percent")
	projectCmd.Flags().StringVar(&expenseAdjust, "expense-adjust", "0", "expense adjustment in percent")

	lossesCmd.Flags().IntVar(&lossYear, "year", 0, "application year (defaults to the bundle's fiscal year)")

	surchargeCmd.Flags().StringVar(&surchargeAmount, "amount", "", "unpaid amount")
	surchargeCmd.Flags().StringVar(&surchargeDue, "due", "", "due date (YYYY-MM-DD)")
	surchargeCmd.Flags().StringVar(&surchargePaid, "paid", "", "payment date (YYYY-MM-DD)")
	_ = surchargeCmd.MarkFlagRequired("amount")
	_ = surchargeCmd.MarkFlagRequired("due")
	_ = surchargeCmd.MarkFlagRequired("paid")

	importCmd.Flags().BoolVar(&saveImport, "save", false, "write the updated records back to the bundle file")

	rootCmd.AddCommand(calculateCmd, alertsCmd, projectCmd, lossesCmd, surchargeCmd,
		importCmd, exampleCmd, rfcCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
