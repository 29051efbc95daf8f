package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"comptoir/internal/bridge"
	"comptoir/internal/catalog"
	"comptoir/internal/config"
	"comptoir/internal/invoice"
	"comptoir/internal/logger"
	"comptoir/internal/sale"
	"comptoir/internal/sales"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const usage = `usage: comptoir <command> [flags]

commands:
  products   list the product catalog
  sale       compose and submit a sale
  sales      list recorded sales
  invoice    client or period invoice, or a yearly report`

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	inv, err := bridge.NewHTTPInvoker(bridge.Options{
		BaseURL: cfg.BackendURL,
		Token:   cfg.BackendToken,
		Timeout: cfg.InvokeTimeout,
		Rate:    cfg.InvokeRate,
		Burst:   cfg.InvokeBurst,
	})
	if err != nil {
		log.Fatalf("failed to create backend bridge: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, inv, cfg); err != nil {
		logger.L().Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, inv bridge.Invoker, cfg *config.Config) error {
	if len(args) == 0 {
		fmt.Fprintln(stdout, usage)
		return errors.New("missing command")
	}

	ctx = logger.WithRequestID(ctx, uuid.New().String())

	switch args[0] {
	case "products":
		return runProducts(ctx, stdout, inv)
	case "sale":
		return runSale(ctx, args[1:], stdout, inv, cfg)
	case "sales":
		return runSales(ctx, args[1:], stdout, inv, cfg)
	case "invoice":
		return runInvoice(ctx, args[1:], stdout, inv, cfg)
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, usage)
		return nil
	default:
		fmt.Fprintln(stdout, usage)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func runProducts(ctx context.Context, stdout io.Writer, inv bridge.Invoker) error {
	cache := catalog.NewCache(inv)
	if err := cache.Load(ctx); err != nil {
		fmt.Fprintln(stdout, catalog.LoadFailedMessage)
		return err
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK")
	for _, p := range cache.Products() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", p.ID, p.Name, invoice.FormatAmount(p.Price), p.Quantity)
	}
	return w.Flush()
}

// lineFlags collects repeated -line Name=qty values.
type lineFlags []string

func (l *lineFlags) String() string { return strings.Join(*l, ",") }

func (l *lineFlags) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("line %q: want Name=quantity", v)
	}
	*l = append(*l, v)
	return nil
}

func runSale(ctx context.Context, args []string, stdout io.Writer, inv bridge.Invoker, cfg *config.Config) error {
	fs := flag.NewFlagSet("sale", flag.ContinueOnError)
	fs.SetOutput(stdout)
	client := fs.String("client", "", "client name")
	status := fs.String("status", string(sale.StatusPaid), "payment status: paid or credit")
	date := fs.String("date", "", "sale date (2006-01-02T15:04), defaults to now")
	compensate := fs.Bool("compensate", cfg.SaleCompensate, "undo committed lines when a later line fails")
	var lines lineFlags
	fs.Var(&lines, "line", "product line as Name=quantity, repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := sale.ParseStatus(*status)
	if err != nil {
		return err
	}

	form := sale.NewForm(inv, sale.FormOptions{
		Compensate: *compensate,
		OnSaved: func(o sale.Order, res *sale.Result) {
			fmt.Fprintf(stdout, "Vente enregistrée pour %s: %d ligne(s), total %s\n",
				o.ClientName, len(res.SaleIDs), invoice.FormatAmount(res.Total))
		},
	})

	if err := form.Mount(ctx); err != nil {
		fmt.Fprintln(stdout, form.State().Error)
	}

	edits := []error{form.SetClientName(*client), form.SetStatus(st)}
	if *date != "" {
		t, err := time.Parse(sale.DateLayout, *date)
		if err != nil {
			return fmt.Errorf("invalid -date %q: %w", *date, err)
		}
		edits = append(edits, form.SetDate(t))
	}
	for i, l := range lines {
		name, qty, _ := strings.Cut(l, "=")
		edits = append(edits,
			form.AddLine(),
			form.UpdateLine(i, sale.FieldProduct, strings.TrimSpace(name)),
			form.UpdateLine(i, sale.FieldQuantity, qty),
		)
	}
	if err := errors.Join(edits...); err != nil {
		return err
	}

	res, err := form.Submit(ctx)
	if err != nil {
		fmt.Fprintln(stdout, sale.Message(err))
		var werr *sale.WriteError
		if errors.As(err, &werr) && len(werr.Committed) > 0 {
			if werr.Compensated {
				fmt.Fprintf(stdout, "Lignes annulées: %v, non annulées: %v\n", werr.Committed, werr.Uncompensated)
			} else {
				fmt.Fprintf(stdout, "Lignes déjà enregistrées: %v\n", werr.Committed)
			}
		}
		return err
	}

	fmt.Fprintf(stdout, "IDs: %v\n", res.SaleIDs)
	return nil
}

func runSales(ctx context.Context, args []string, stdout io.Writer, inv bridge.Invoker, cfg *config.Config) error {
	fs := flag.NewFlagSet("sales", flag.ContinueOnError)
	fs.SetOutput(stdout)
	client := fs.String("client", "", "client name substring")
	status := fs.String("status", "", "paid, credit or empty for all")
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", 0, "rows per page")
	del := fs.Int64("delete", 0, "delete the sale with this id instead of listing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := sales.NewService(sales.NewRepository(inv), cfg.SalesPageSize)

	if *del != 0 {
		if err := svc.Delete(ctx, *del); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Vente %d supprimée\n", *del)
		return nil
	}

	filter := sales.Filter{Client: *client}
	if *status != "" && !strings.EqualFold(*status, "tous") {
		st, err := sale.ParseStatus(*status)
		if err != nil {
			return err
		}
		filter.Status = st
	}

	p, err := svc.List(ctx, sales.ListOptions{Filter: filter, Page: *page, PerPage: *perPage})
	if err != nil {
		fmt.Fprintln(stdout, sales.LoadFailedMessage)
		return err
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tCLIENT\tPRODUCT\tQTY\tTOTAL\tSTATUS")
	for _, s := range p.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
			s.ID, s.Date, s.ClientName, s.ProductName, s.Quantity, invoice.FormatAmount(s.TotalAmount), s.Status.Label())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Page %d/%d (%d ventes)\n", p.Number, p.TotalPages, p.Total)
	return nil
}

func runInvoice(ctx context.Context, args []string, stdout io.Writer, inv bridge.Invoker, cfg *config.Config) error {
	fs := flag.NewFlagSet("invoice", flag.ContinueOnError)
	fs.SetOutput(stdout)
	client := fs.String("client", "", "client name; empty for every client")
	year := fs.Int("year", 0, "year")
	month := fs.Int("month", 0, "month (1-12), needs -year")
	day := fs.String("date", "", "single day (2006-01-02)")
	report := fs.Bool("report", false, "month by month report for -year")
	if err := fs.Parse(args); err != nil {
		return err
	}

	salesSvc := sales.NewService(sales.NewRepository(inv), cfg.SalesPageSize)
	svc := invoice.NewService(invoice.NewRepository(inv), salesSvc)

	if *report {
		r, err := svc.Yearly(ctx, *year)
		if err != nil {
			fmt.Fprintln(stdout, sales.LoadFailedMessage)
			return err
		}
		w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MONTH\tSALES\tPAID\tCREDIT\tTOTAL")
		for _, m := range r.Months {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", time.Month(m.Month), len(m.Sales),
				invoice.FormatAmount(m.PaidTotal), invoice.FormatAmount(m.CreditTotal), invoice.FormatAmount(m.Total))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Total %d: %s\n", r.Year, invoice.FormatAmount(r.Total))
		return nil
	}

	period := invoice.Period{Year: *year, Month: time.Month(*month), Date: *day}

	var (
		result *invoice.Invoice
		err    error
	)
	if *client != "" {
		result, err = svc.ForClient(ctx, *client, period)
	} else {
		result, err = svc.ForPeriod(ctx, period)
	}
	if err != nil {
		if errors.Is(err, invoice.ErrLoadFailed) {
			fmt.Fprintln(stdout, invoice.LoadFailedMessage)
		}
		return err
	}

	fmt.Fprintf(stdout, "Facture %s (%s)\n", result.ClientName, result.Period)
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tPRODUCT\tQTY\tTOTAL\tSTATUS")
	for _, s := range result.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			s.Date, s.ProductName, s.Quantity, invoice.FormatAmount(s.TotalAmount), s.Status.Label())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Payé: %s\nCrédit: %s\nTotal: %s\n",
		invoice.FormatAmount(result.PaidTotal), invoice.FormatAmount(result.CreditTotal), invoice.FormatAmount(result.Total))
	return nil
}
