// Package views is the screen state of the wallet: the active tab, the
// wallet tab's top-up and send panels, and the form inputs of each screen.
//
// The top-up and send panels are never open together, and they only show on
// the wallet tab.
package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/peerwallet/internal/client/exchange"
	"github.com/dmitrijs2005/peerwallet/internal/client/models"
)

type Tab int

const (
	TabHome Tab = iota
	TabWallet
	TabExchange
	TabFriends
)

var Tabs = []Tab{TabHome, TabWallet, TabExchange, TabFriends}

var ErrUnknownTab = errors.New("unknown tab")

func (t Tab) String() string {
	switch t {
	case TabWallet:
		return "wallet"
	case TabExchange:
		return "exchange"
	case TabFriends:
		return "friends"
	}
	return "home"
}

func (t Tab) Title() string {
	switch t {
	case TabWallet:
		return "Кошелёк"
	case TabExchange:
		return "Обмен"
	case TabFriends:
		return "Друзья"
	}
	return "Главная"
}

func ParseTab(s string) (Tab, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range Tabs {
		if t.String() == name {
			return t, nil
		}
	}
	return TabHome, fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// SendForm is the wallet's send panel input.
type SendForm struct {
	Recipient *models.Friend
	Amount    string
	Currency  models.Currency
}

// State is the transient view state. It is not safe for concurrent use; the
// REPL owns it.
type State struct {
	tab       Tab
	topUpOpen bool
	sendOpen  bool

	Converter exchange.Converter
	Send      SendForm
	Search    string
}

func New() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset restores every field to its default. Called on logout.
func (s *State) Reset() {
	*s = State{
		tab:       TabHome,
		Converter: exchange.NewConverter(),
		Send:      SendForm{Currency: models.RUB},
	}
}

func (s *State) Tab() Tab { return s.tab }

// Select switches tab. Panel flags are kept and show again on return to the
// wallet.
func (s *State) Select(t Tab) {
	s.tab = t
}

func (s *State) TopUpVisible() bool { return s.tab == TabWallet && s.topUpOpen }
func (s *State) SendVisible() bool  { return s.tab == TabWallet && s.sendOpen }

// QuickTopUp is the home screen's top-up button.
func (s *State) QuickTopUp() {
	s.tab = TabWallet
	s.topUpOpen = true
	s.sendOpen = false
}

// QuickSend is the home screen's send button.
func (s *State) QuickSend() {
	s.tab = TabWallet
	s.sendOpen = true
	s.topUpOpen = false
}

// ToggleTopUp is the wallet screen's top-up button.
func (s *State) ToggleTopUp() {
	s.topUpOpen = !s.topUpOpen
	s.sendOpen = false
}

// ToggleSend is the wallet screen's send button.
func (s *State) ToggleSend() {
	s.sendOpen = !s.sendOpen
	s.topUpOpen = false
}

// SendTo is the friends list's send action: it opens the send panel on the
// wallet tab with f as recipient.
func (s *State) SendTo(f models.Friend) {
	s.QuickSend()
	s.SelectRecipient(f)
}

func (s *State) SelectRecipient(f models.Friend) {
	s.Send.Recipient = &f
}

// TopUpMethod is one entry of the top-up panel.
type TopUpMethod struct {
	Label string
	Note  string
}

var TopUpMethods = []TopUpMethod{
	{Label: "Банковская карта", Note: "Visa, MC, МИР"},
	{Label: "СБП", Note: "Мгновенно"},
	{Label: "USDT (TRC20)", Note: "Криптовалюта"},
	{Label: "Bitcoin", Note: "Криптовалюта"},
}
