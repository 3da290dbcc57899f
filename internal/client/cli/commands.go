package cli

import (
	"fmt"

	"github.com/dmitrijs2005/peerwallet/internal/client/exchange"
	"github.com/dmitrijs2005/peerwallet/internal/client/models"
	"github.com/dmitrijs2005/peerwallet/internal/client/views"
)

func (a *App) Show(t views.Tab) {
	a.view.Select(t)
	a.Render()
}

// TopUp is the top-up button: on the wallet screen it toggles the panel,
// elsewhere it opens the wallet with the panel shown.
func (a *App) TopUp() {
	if a.view.Tab() == views.TabWallet {
		a.view.ToggleTopUp()
	} else {
		a.view.QuickTopUp()
	}
	a.Render()
}

// Send is the send button, with the same rules as TopUp.
func (a *App) Send() {
	if a.view.Tab() == views.TabWallet {
		a.view.ToggleSend()
	} else {
		a.view.QuickSend()
	}
	a.Render()
}

func (a *App) parseCurrency(code string) (models.Currency, bool) {
	c, err := models.ParseCurrency(code)
	if err != nil {
		fmt.Fprintf(a.out, "Неизвестная валюта %q, доступны: RUB, USDT, BTC, ETH\n", code)
		return "", false
	}
	return c, true
}

func (a *App) SetAmount(v string) {
	a.view.Converter.Amount = v
	a.Show(views.TabExchange)
}

func (a *App) SetFrom(code string) {
	if c, ok := a.parseCurrency(code); ok {
		a.view.Converter.From = c
		a.Show(views.TabExchange)
	}
}

func (a *App) SetTo(code string) {
	if c, ok := a.parseCurrency(code); ok {
		a.view.Converter.To = c
		a.Show(views.TabExchange)
	}
}

func (a *App) Swap() {
	a.view.Converter.Swap()
	a.Show(views.TabExchange)
}

func (a *App) Search(q string) {
	a.view.Search = q
	a.Show(views.TabFriends)
}

// Pay is the friends list's send action.
func (a *App) Pay(username string) {
	f, ok := a.friends.Lookup(username)
	if !ok {
		fmt.Fprintf(a.out, "Друг %q не найден\n", username)
		return
	}
	a.view.SendTo(f)
	a.Render()
}

// Recipient picks the send panel's recipient without changing screens.
func (a *App) Recipient(username string) {
	f, ok := a.friends.Lookup(username)
	if !ok {
		fmt.Fprintf(a.out, "Друг %q не найден\n", username)
		return
	}
	a.view.SelectRecipient(f)
	a.Render()
}

func (a *App) SendAmount(v string) {
	if _, ok := exchange.ParseAmount(v); !ok {
		fmt.Fprintf(a.out, "Некорректная сумма %q\n", v)
		return
	}
	a.view.Send.Amount = v
	a.Render()
}

func (a *App) SendCurrency(code string) {
	if c, ok := a.parseCurrency(code); ok {
		a.view.Send.Currency = c
		a.Render()
	}
}
