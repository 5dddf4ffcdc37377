// Package discord is the paste-box surface: drop an Axis SMS into the
// configured channel to record a transaction, or run ! commands against
// the engine. The core never depends on this package.
package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/adityakr/cctracker/internal/axis"
	"github.com/adityakr/cctracker/internal/catalog"
	"github.com/adityakr/cctracker/internal/classify"
	"github.com/adityakr/cctracker/internal/config"
	"github.com/adityakr/cctracker/internal/engine"
	"github.com/adityakr/cctracker/internal/ledger"
	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

type Bot struct {
	session   *discordgo.Session
	book      *ledger.Book
	cfg       *config.Config
	log       *logrus.Logger
	channelID string

	// lastCard is the fallback when an SMS names neither card; it mirrors
	// the add-form's previously selected card.
	lastCard catalog.Card
}

func NewBot(cfg *config.Config, book *ledger.Book, log *logrus.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:   session,
		book:      book,
		cfg:       cfg,
		log:       log,
		channelID: cfg.DiscordChannelID,
		lastCard:  catalog.Airtel,
	}

	session.AddHandler(bot.handleMessage)
	session.Identify.Intents = discordgo.IntentGuildMessages

	return bot, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	return nil
}

func (b *Bot) Stop() {
	b.session.Close()
}

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}
	if m.ChannelID != b.channelID {
		return
	}

	content := strings.TrimSpace(m.Content)
	switch {
	case strings.HasPrefix(content, "!summary"):
		b.reply(s, m, b.summaryText())
	case strings.HasPrefix(content, "!best"):
		b.reply(s, m, b.bestText(content))
	case strings.HasPrefix(content, "!history"):
		b.reply(s, m, b.historyText())
	case strings.HasPrefix(content, "!delete"):
		b.reply(s, m, b.deleteText(content))
	case strings.HasPrefix(content, "!clear"):
		b.reply(s, m, b.clearText(content))
	case strings.HasPrefix(content, "!"):
		b.reply(s, m, "Commands: !summary, !best <merchant> <amount>, !history, !delete <id>, !clear confirm — or paste an Axis SMS to record a spend.")
	default:
		b.reply(s, m, b.recordSMS(content))
	}
}

// recordSMS turns pasted SMS text into a ledger entry.
func (b *Bot) recordSMS(text string) string {
	parsed := axis.Parse(text)
	if parsed.Amount <= 0 {
		return "Could not read an amount from that text. Paste the full Axis SMS, or use the cctracker CLI to add manually."
	}

	card := axis.DetectCard(text, parsed, b.cfg.CardMapping, b.lastCard)
	merchant := parsed.Merchant
	if merchant == "" {
		merchant = "Unknown"
	}
	category := classify.Classify(merchant, card)
	date := parsed.Date
	if date.IsZero() {
		date = time.Now()
	}

	snap := engine.Compute(b.book.All(), time.Now())
	earn, capped := snap.Preview(card, category, parsed.Amount)

	txn, err := b.book.Add(card, category, parsed.Amount, date)
	if err != nil {
		b.log.WithError(err).Error("failed to record transaction")
		return fmt.Sprintf("Failed to save transaction: %v", err)
	}
	b.lastCard = card

	msg := fmt.Sprintf("Tracked ₹%.2f on %s (%s, %s) — est. cashback ₹%.2f", txn.Amount, card, category, merchant, earn)
	if capped {
		msg += " (cap hit)"
	}
	return msg + fmt.Sprintf("\nDelete with `!delete %d`.", txn.ID)
}

func (b *Bot) summaryText() string {
	snap := engine.Compute(b.book.All(), time.Now())

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Bill cycle** %s – %s\n\n", snap.Cycle.Start.Format("2 Jan"), snap.Cycle.End.Format("2 Jan"))

	fmt.Fprintf(&sb, "**Airtel Axis** (monthly caps)\n")
	for _, stat := range snap.Categories(catalog.Airtel) {
		fmt.Fprintf(&sb, "• %s: spend ₹%.0f, cashback ₹%.2f%s\n", stat.Name, stat.Spend, stat.Cashback, capNote(stat))
	}
	fmt.Fprintf(&sb, "Total: ₹%.0f spend, ₹%.2f cashback\n\n", snap.AirtelSummary.TotalSpend, snap.AirtelSummary.TotalCashback)

	fmt.Fprintf(&sb, "**Flipkart Axis** (%s quarter)\n", snap.Quarter.Label)
	for _, stat := range snap.Categories(catalog.Flipkart) {
		fmt.Fprintf(&sb, "• %s: spend ₹%.0f, cashback ₹%.2f%s\n", stat.Name, stat.Spend, stat.Cashback, capNote(stat))
	}
	fmt.Fprintf(&sb, "Quarter: ₹%.0f spend, ₹%.2f cashback. Current bill: ₹%.0f spend, ₹%.2f cashback.",
		snap.FlipkartSummary.QuarterSpend, snap.FlipkartSummary.QuarterCashback,
		snap.FlipkartSummary.MonthSpend, snap.FlipkartSummary.MonthCashback)
	return sb.String()
}

func capNote(stat engine.CategoryStat) string {
	if stat.Uncapped() {
		return ""
	}
	return fmt.Sprintf(" / ₹%.0f cap", stat.Cap)
}

func (b *Bot) bestText(content string) string {
	args := strings.Fields(content)
	if len(args) != 3 {
		return "Usage: !best <merchant> <amount>\nExample: !best swiggy 500"
	}
	amount, err := strconv.ParseFloat(args[2], 64)
	if err != nil || amount <= 0 {
		return fmt.Sprintf("Invalid amount: %s", args[2])
	}

	snap := engine.Compute(b.book.All(), time.Now())
	rec := engine.Recommend(snap, args[1], amount)
	return fmt.Sprintf("Use **%s** for ₹%.0f at %s.\nAirtel Axis earns ₹%.2f (%s), Flipkart Axis earns ₹%.2f (%s).",
		rec.Winner, amount, args[1],
		rec.AirtelEarn, rec.AirtelCategory,
		rec.FlipkartEarn, rec.FlipkartCategory)
}

func (b *Bot) historyText() string {
	trend := engine.History(b.book.All())
	if len(trend.Chart) == 0 {
		return "No transactions yet."
	}
	var sb strings.Builder
	sb.WriteString("**Monthly trend** (flat-rate estimate)\n")
	for _, bucket := range trend.Chart {
		fmt.Fprintf(&sb, "• %s: ₹%.0f\n", bucket.Label, bucket.Cashback)
	}
	fmt.Fprintf(&sb, "Lifetime: ₹%.2f", trend.Lifetime)
	return sb.String()
}

func (b *Bot) deleteText(content string) string {
	args := strings.Fields(content)
	if len(args) != 2 {
		return "Usage: !delete <id>"
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Sprintf("Invalid id: %s", args[1])
	}
	if err := b.book.Remove(id); err != nil {
		b.log.WithError(err).Error("failed to delete transaction")
		return fmt.Sprintf("Failed to delete: %v", err)
	}
	return fmt.Sprintf("Deleted %d (if it existed).", id)
}

func (b *Bot) clearText(content string) string {
	if strings.TrimSpace(content) != "!clear confirm" {
		return fmt.Sprintf("This deletes all %d transactions. Run `!clear confirm` to proceed.", b.book.Len())
	}
	if err := b.book.Clear(); err != nil {
		b.log.WithError(err).Error("failed to clear ledger")
		return fmt.Sprintf("Failed to clear: %v", err)
	}
	return "Ledger cleared."
}

func (b *Bot) reply(s *discordgo.Session, m *discordgo.MessageCreate, text string) {
	if _, err := s.ChannelMessageSend(m.ChannelID, text); err != nil {
		b.log.WithError(err).Warn("failed to send reply")
	}
}
