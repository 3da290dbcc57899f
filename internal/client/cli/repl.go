package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/peerwallet/internal/client/views"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface runREPL drives. App implements it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	Render()
	Show(t views.Tab)
	TopUp()
	Send()
	SetAmount(v string)
	SetFrom(code string)
	SetTo(code string)
	Swap()
	Search(q string)
	Pay(username string)
	Recipient(username string)
	SendAmount(v string)
	SendCurrency(code string)
}

const (
	helpSignedOut = "Команды: register, login, exit"
	helpSignedIn  = "Команды: home, wallet, exchange, friends, topup, send, " +
		"amount <n>, from <cur>, to <cur>, swap, search [text], pay <username>, " +
		"recipient <username>, sendamount <n>, sendcurrency <cur>, refresh, logout, exit"
)

// readLine reads one command line; ok is false at EOF with nothing read.
func readLine(r *bufio.Reader) (string, bool) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", false
	}
	return line, true
}

// runREPL reads commands from reader and dispatches them to a until EOF or
// exit/quit. Command errors are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("wallet %s> ", statusFn()))
		line, ok := readLine(reader)
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])
		arg := strings.Join(parts[1:], " ")

		switch cmd {
		case "exit", "quit":
			printlnFn("Пока!")
			return
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}
			continue
		case "register", "login":
			if a.isLoggedIn() {
				printlnFn("Вы уже вошли, сначала logout")
				continue
			}
			if cmd == "register" {
				_ = a.Register(ctx)
			} else {
				_ = a.Login(ctx)
			}
			continue
		}

		if !a.isLoggedIn() {
			printlnFn("Сначала войдите: login или register")
			continue
		}

		if usage, missing := requiresArg[cmd]; missing && arg == "" {
			printlnFn("Использование:", usage)
			continue
		}

		switch cmd {
		case "home", "wallet", "exchange", "friends":
			t, _ := views.ParseTab(cmd)
			a.Show(t)
		case "show", "render":
			a.Render()
		case "topup":
			a.TopUp()
		case "send":
			a.Send()
		case "amount":
			a.SetAmount(arg)
		case "from":
			a.SetFrom(arg)
		case "to":
			a.SetTo(arg)
		case "swap":
			a.Swap()
		case "search":
			a.Search(arg)
		case "pay":
			a.Pay(arg)
		case "recipient":
			a.Recipient(arg)
		case "sendamount":
			a.SendAmount(arg)
		case "sendcurrency":
			a.SendCurrency(arg)
		case "refresh":
			_ = a.Refresh(ctx)
		case "logout":
			_ = a.Logout(ctx)
		default:
			printlnFn("Неизвестная команда:", cmd)
		}
	}
}

var requiresArg = map[string]string{
	"amount":       "amount <число>",
	"from":         "from <RUB|USDT|BTC|ETH>",
	"to":           "to <RUB|USDT|BTC|ETH>",
	"pay":          "pay <username>",
	"recipient":    "recipient <username>",
	"sendamount":   "sendamount <число>",
	"sendcurrency": "sendcurrency <RUB|USDT|BTC|ETH>",
}
