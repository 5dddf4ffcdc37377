// Command cctracker is the local CLI for the two-card cashback ledger.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/adityakr/cctracker/internal/axis"
	"github.com/adityakr/cctracker/internal/catalog"
	"github.com/adityakr/cctracker/internal/classify"
	"github.com/adityakr/cctracker/internal/config"
	"github.com/adityakr/cctracker/internal/engine"
	"github.com/adityakr/cctracker/internal/ledger"
	"github.com/adityakr/cctracker/internal/storage"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const usage = `Usage: cctracker <command> [args]

  add     -card airtel|flipkart -amount N [-category id] [-merchant text] [-date YYYY-MM-DD]
  paste   read an Axis SMS from stdin and record it
  list    show the ledger, newest first
  delete  <id>
  clear   [-yes] delete all transactions
  limits  per-category cap usage for the current windows
  bill    statement summaries for the current billing cycle
  best    <merchant> <amount> — which card to use
  stats   monthly trend and lifetime cashback
`

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file, using environment as-is")
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	book, err := ledger.Load(store, logger)
	if err != nil {
		logger.Fatalf("Failed to load ledger: %v", err)
	}

	app := &app{cfg: cfg, book: book, log: logger, out: os.Stdout}
	if err := app.run(os.Args[1], os.Args[2:]); err != nil {
		logger.Fatalf("%v", err)
	}
}

type app struct {
	cfg  *config.Config
	book *ledger.Book
	log  *logrus.Logger
	out  io.Writer
}

func (a *app) run(command string, args []string) error {
	switch command {
	case "add":
		return a.add(args)
	case "paste":
		return a.paste()
	case "list":
		return a.list()
	case "delete":
		return a.delete(args)
	case "clear":
		return a.clear(args)
	case "limits":
		return a.limits()
	case "bill":
		return a.bill()
	case "best":
		return a.best(args)
	case "stats":
		return a.stats()
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) add(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	cardArg := fs.String("card", "airtel", "card key: airtel or flipkart")
	category := fs.String("category", "", "category id (defaults from -merchant)")
	merchant := fs.String("merchant", "", "merchant text, classified when -category is empty")
	amount := fs.Float64("amount", 0, "spend amount in ₹")
	dateArg := fs.String("date", "", "transaction date, YYYY-MM-DD (default today)")
	fs.Parse(args)

	card, ok := catalog.ParseCard(*cardArg)
	if !ok {
		return fmt.Errorf("unknown card %q (use airtel or flipkart)", *cardArg)
	}

	cat := *category
	if cat == "" {
		cat = classify.Classify(*merchant, card)
	}
	if _, ok := catalog.RuleFor(card, cat); !ok {
		return fmt.Errorf("unknown category %q for %s", cat, card)
	}

	date := time.Now()
	if *dateArg != "" {
		var err error
		if date, err = time.Parse(time.DateOnly, *dateArg); err != nil {
			return fmt.Errorf("invalid date %q: %w", *dateArg, err)
		}
	}

	snap := engine.Compute(a.book.All(), time.Now())
	earn, capped := snap.Preview(card, cat, *amount)

	txn, err := a.book.Add(card, cat, *amount, date)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %d: ₹%.2f on %s (%s), est. cashback ₹%.2f", txn.ID, txn.Amount, card, cat, earn)
	if capped {
		fmt.Fprint(a.out, " (cap hit)")
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *app) paste() error {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	text := string(raw)

	parsed := axis.Parse(text)
	if parsed.Amount <= 0 {
		return fmt.Errorf("no amount found in the pasted text; nothing recorded")
	}

	card := axis.DetectCard(text, parsed, a.cfg.CardMapping, catalog.Airtel)
	merchant := parsed.Merchant
	if merchant == "" {
		merchant = "Unknown"
	}
	category := classify.Classify(merchant, card)
	date := parsed.Date
	if date.IsZero() {
		date = time.Now()
	}

	snap := engine.Compute(a.book.All(), time.Now())
	earn, capped := snap.Preview(card, category, parsed.Amount)

	txn, err := a.book.Add(card, category, parsed.Amount, date)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Parsed: ₹%.2f at %q on %s, %s\n", parsed.Amount, merchant, date.Format(time.DateOnly), card)
	fmt.Fprintf(a.out, "Added %d (%s), est. cashback ₹%.2f", txn.ID, category, earn)
	if capped {
		fmt.Fprint(a.out, " (cap hit)")
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *app) list() error {
	txns := a.book.All()
	if len(txns) == 0 {
		fmt.Fprintln(a.out, "No transactions.")
		return nil
	}
	sort.Slice(txns, func(i, j int) bool { return txns[i].Date.After(txns[j].Date) })
	for _, t := range txns {
		fmt.Fprintf(a.out, "%d  %s  %-13s %-12s ₹%.2f\n", t.ID, t.Date.Format(time.DateOnly), t.Card, t.Category, t.Amount)
	}
	return nil
}

func (a *app) delete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cctracker delete <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	if err := a.book.Remove(id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %d (if it existed).\n", id)
	return nil
}

func (a *app) clear(args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	yes := fs.Bool("yes", false, "skip confirmation")
	fs.Parse(args)

	if !*yes {
		fmt.Fprintf(a.out, "Delete all %d transactions? (y/N) ", a.book.Len())
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Fprintln(a.out, "Aborted.")
			return nil
		}
	}
	if err := a.book.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Ledger cleared.")
	return nil
}

func (a *app) limits() error {
	snap := engine.Compute(a.book.All(), time.Now())

	fmt.Fprintf(a.out, "Bill cycle %s – %s, quarter %s (%s – %s)\n\n",
		snap.Cycle.Start.Format("2 Jan"), snap.Cycle.End.Format("2 Jan 2006"),
		snap.Quarter.Label, snap.Quarter.Start.Format("2 Jan"), snap.Quarter.End.Format("2 Jan 2006"))

	for _, card := range catalog.AllCards() {
		fmt.Fprintf(a.out, "%s\n", card)
		for _, stat := range snap.Categories(card) {
			capStr := "∞"
			if !stat.Uncapped() {
				capStr = fmt.Sprintf("%.0f", stat.Cap)
			}
			fmt.Fprintf(a.out, "  %-30s ₹%8.2f / %s  (spend ₹%.0f)\n", stat.Name, stat.Cashback, capStr, stat.Spend)
		}
	}
	return nil
}

func (a *app) bill() error {
	snap := engine.Compute(a.book.All(), time.Now())

	fmt.Fprintf(a.out, "Airtel Axis bill estimate:    spend ₹%.2f, cashback ₹%.2f\n",
		snap.AirtelSummary.TotalSpend, snap.AirtelSummary.TotalCashback)
	fmt.Fprintf(a.out, "Flipkart Axis quarter (%s):   spend ₹%.2f, cashback ₹%.2f\n",
		snap.Quarter.Label, snap.FlipkartSummary.QuarterSpend, snap.FlipkartSummary.QuarterCashback)
	fmt.Fprintf(a.out, "Flipkart Axis current bill:   spend ₹%.2f, cashback ₹%.2f\n",
		snap.FlipkartSummary.MonthSpend, snap.FlipkartSummary.MonthCashback)
	return nil
}

func (a *app) best(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: cctracker best <merchant> <amount>")
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil || amount <= 0 {
		return fmt.Errorf("invalid amount %q", args[1])
	}

	snap := engine.Compute(a.book.All(), time.Now())
	rec := engine.Recommend(snap, args[0], amount)

	fmt.Fprintf(a.out, "Use %s for ₹%.0f at %s.\n", rec.Winner, amount, args[0])
	fmt.Fprintf(a.out, "  Airtel Axis:   ₹%.2f (%s, effective %.2f%%)\n", rec.AirtelEarn, rec.AirtelCategory, rec.AirtelRate*100)
	fmt.Fprintf(a.out, "  Flipkart Axis: ₹%.2f (%s, effective %.2f%%)\n", rec.FlipkartEarn, rec.FlipkartCategory, rec.FlipkartRate*100)
	return nil
}

func (a *app) stats() error {
	trend := engine.History(a.book.All())
	if len(trend.Chart) == 0 {
		fmt.Fprintln(a.out, "No transactions yet.")
		return nil
	}
	fmt.Fprintln(a.out, "Monthly cashback trend (flat-rate estimate):")
	for _, b := range trend.Chart {
		fmt.Fprintf(a.out, "  %s  ₹%.2f\n", b.Label, b.Cashback)
	}
	fmt.Fprintf(a.out, "Lifetime: ₹%.2f\n", trend.Lifetime)
	return nil
}
