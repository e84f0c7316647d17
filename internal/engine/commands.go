package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"trade_console/internal/event"
)

const commandHelp = `commands:
  type <raw> [@caret]   edit the stake input (e.g. "type 12 USD")
  inc | dec             step the stake
  focus | blur          focus or blur the stake input
  sheet                 tap the stake field on mobile
  tab <id|label>        switch the market tab
  search <query>        filter markets
  clear                 clear the search
  fav <symbol>          toggle a favorite
  select <symbol>       select a market
  currency <code>       switch the account currency
  show                  print the current view
  help | quit`

// RunCommands reads line commands from in, posts them to the console and
// prints views to out. It returns when in is exhausted, on "quit", or when
// ctx is cancelled.
func RunCommands(ctx context.Context, in io.Reader, out io.Writer, c *Console) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch name {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, commandHelp)
			continue
		case "show":
			if err := c.Sync(ctx); err != nil {
				return err
			}
			WriteView(out, c.View())
			continue
		}

		ev, err := parseCommand(name, arg)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if err := c.Post(ctx, ev); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return c.Sync(ctx)
}

func parseCommand(name, arg string) (event.Event, error) {
	base := stamp()
	switch name {
	case "type":
		raw, caret := splitCaret(arg)
		ev := event.AcquireKeyInputEvent()
		ev.BaseEvent = base
		ev.Raw = raw
		ev.Caret = caret
		return ev, nil
	case "inc":
		return &event.StepEvent{BaseEvent: base, Up: true}, nil
	case "dec":
		return &event.StepEvent{BaseEvent: base}, nil
	case "focus":
		return &event.FocusEvent{BaseEvent: base, Focused: true}, nil
	case "blur":
		return &event.FocusEvent{BaseEvent: base}, nil
	case "sheet":
		return &event.MobileClickEvent{BaseEvent: base}, nil
	case "clear":
		return &event.ClearSearchEvent{BaseEvent: base}, nil
	case "search":
		return &event.SearchEvent{BaseEvent: base, Query: arg}, nil
	}

	if !needsArgument(name) {
		return nil, fmt.Errorf("unknown command %q (try help)", name)
	}
	if arg == "" {
		return nil, fmt.Errorf("%s: missing argument", name)
	}
	switch name {
	case "tab":
		return &event.TabEvent{BaseEvent: base, Tab: arg}, nil
	case "fav":
		return &event.ToggleFavoriteEvent{BaseEvent: base, Symbol: arg}, nil
	case "select":
		return &event.SelectEvent{BaseEvent: base, Symbol: arg}, nil
	default:
		return &event.CurrencyEvent{BaseEvent: base, Currency: strings.ToUpper(arg)}, nil
	}
}

func needsArgument(name string) bool {
	switch name {
	case "tab", "fav", "select", "currency":
		return true
	}
	return false
}

// splitCaret separates an optional trailing "@n" caret position. Without one
// the caret sits at the end of the raw value.
func splitCaret(arg string) (string, int) {
	if i := strings.LastIndex(arg, " @"); i >= 0 {
		if n, err := strconv.Atoi(arg[i+2:]); err == nil && n >= 0 {
			return arg[:i], n
		}
	}
	return arg, utf8.RuneCountInString(arg)
}
