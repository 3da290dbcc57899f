package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/peerwallet/internal/client/exchange"
	"github.com/dmitrijs2005/peerwallet/internal/client/friends"
	"github.com/dmitrijs2005/peerwallet/internal/client/models"
	"github.com/dmitrijs2005/peerwallet/internal/client/views"
	"github.com/shopspring/decimal"
)

const recentOnHome = 3

// Render prints the active screen.
func (a *App) Render() {
	u, _ := a.session.User()
	balances := a.session.Balances()
	txs := a.session.Transactions()

	fmt.Fprintf(a.out, "\n== %s ==\n", a.view.Tab().Title())
	switch a.view.Tab() {
	case views.TabHome:
		renderHome(a.out, u, balances, txs, a.rates)
	case views.TabWallet:
		renderWallet(a.out, a.view, balances, txs, a.rates, a.friends)
	case views.TabExchange:
		renderExchange(a.out, a.view.Converter, a.rates)
	case views.TabFriends:
		renderFriends(a.out, a.friends, a.view.Search)
	}
}

// groupDigits separates thousands in the integer part with spaces.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		return sign + b.String() + "." + frac
	}
	return sign + b.String()
}

func formatBalance(d decimal.Decimal) string {
	return groupDigits(d.Round(6).String())
}

func formatTx(tx models.Transaction) string {
	status := "Выполнено"
	if tx.Pending() {
		status = "В обработке"
	}
	return fmt.Sprintf("  %s%s %s  %s  %s  %s",
		tx.Sign(), tx.Amount.String(), tx.Currency.Symbol(), tx.Counterparty(), tx.Date, status)
}

func renderTransactions(w io.Writer, txs []models.Transaction) {
	if len(txs) == 0 {
		fmt.Fprintln(w, "  Операций пока нет")
		return
	}
	for _, tx := range txs {
		fmt.Fprintln(w, formatTx(tx))
	}
}

func renderHome(w io.Writer, u models.User, b models.Balances, txs []models.Transaction, rates *exchange.RateTable) {
	fmt.Fprintf(w, "Добро пожаловать, %s  [%s]\n", u.Name, u.Avatar)

	total := rates.Total(b, models.RUB)
	fmt.Fprintf(w, "Общий баланс: %s %s\n", groupDigits(total.StringFixed(0)), models.RUB.Symbol())
	fmt.Fprintf(w, "  ≈ %s USDT · ≈ %s BTC\n",
		groupDigits(rates.Total(b, models.USDT).StringFixed(models.USDT.AmountPrecision())),
		rates.Total(b, models.BTC).StringFixed(models.BTC.AmountPrecision()))
	fmt.Fprintln(w, "Действия: topup, send, exchange, friends")

	fmt.Fprintln(w, "Последние операции:")
	if len(txs) > recentOnHome {
		txs = txs[:recentOnHome]
	}
	renderTransactions(w, txs)
}

func renderWallet(w io.Writer, v *views.State, b models.Balances, txs []models.Transaction, rates *exchange.RateTable, dir *friends.Directory) {
	for _, c := range models.Currencies {
		bal := b.Get(c)
		fmt.Fprintf(w, "  %s %-4s %s  ≈ %s %s\n",
			c.Symbol(), c, formatBalance(bal),
			groupDigits(rates.ValueIn(bal, c, models.RUB).StringFixed(0)), models.RUB.Symbol())
	}

	if v.TopUpVisible() {
		fmt.Fprintln(w, "Пополнение счёта:")
		for _, m := range views.TopUpMethods {
			fmt.Fprintf(w, "  • %s (%s)\n", m.Label, m.Note)
		}
	}

	if v.SendVisible() {
		fmt.Fprintln(w, "Отправить другу:")
		avatars := make([]string, 0, len(dir.All()))
		for _, f := range dir.All() {
			mark := " "
			if v.Send.Recipient != nil && v.Send.Recipient.Username == f.Username {
				mark = "*"
			}
			avatars = append(avatars, mark+f.Avatar)
		}
		fmt.Fprintf(w, "  Получатель: %s\n", strings.Join(avatars, " "))
		if v.Send.Recipient != nil {
			fmt.Fprintf(w, "  %s (@%s)\n", v.Send.Recipient.Name, v.Send.Recipient.Username)
		}
		amount := v.Send.Amount
		if amount == "" {
			amount = "0.00"
		}
		fmt.Fprintf(w, "  Сумма: %s %s\n", amount, v.Send.Currency)
	}

	fmt.Fprintln(w, "История операций:")
	renderTransactions(w, txs)
}

func renderExchange(w io.Writer, c exchange.Converter, rates *exchange.RateTable) {
	amount := c.Amount
	if amount == "" {
		amount = exchange.Placeholder
	}
	fmt.Fprintf(w, "Отдаю:    %s %s\n", amount, c.From)
	fmt.Fprintf(w, "Получаю:  %s %s\n", c.Display(rates), c.To)
	fmt.Fprintf(w, "Курс: %s\n", c.RateLine(rates))

	fmt.Fprintln(w, "Курсы к рублю:")
	for _, cur := range models.Currencies {
		if cur == models.RUB {
			continue
		}
		fmt.Fprintf(w, "  %s %s = %s %s\n", cur.Symbol(), cur, groupDigits(rates.Rate(cur).String()), models.RUB.Symbol())
	}
}

func renderFriends(w io.Writer, dir *friends.Directory, search string) {
	st := dir.Stats()
	fmt.Fprintf(w, "Друзей: %d · онлайн: %d · верифицировано: %d\n", st.Total, st.Online, st.Verified)
	if search != "" {
		fmt.Fprintf(w, "Поиск: %q\n", search)
	}

	list := dir.Filter(search)
	if len(list) == 0 {
		fmt.Fprintln(w, "  Никого не нашли")
		return
	}
	for _, f := range list {
		status := "не в сети"
		if f.Online {
			status = "онлайн"
		}
		verified := ""
		if f.Verified {
			verified = " ✓"
		}
		fmt.Fprintf(w, "  [%s] %s%s @%s  %s\n", f.Avatar, f.Name, verified, f.Username, status)
	}
	fmt.Fprintln(w, "pay <username>: отправить, exchange: обмен")
}
