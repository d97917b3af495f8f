package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("bad arguments")
)

const (
	cmdList      = "list"
	cmdShow      = "show"
	cmdFilter    = "filter"
	cmdPage      = "page"
	cmdLayout    = "layout"
	cmdAdd       = "add"
	cmdRemove    = "remove"
	cmdQty       = "qty"
	cmdCart      = "cart"
	cmdClearCart = "clear-cart"
	cmdFav       = "fav"
	cmdFavs      = "favs"
	cmdClearFavs = "clear-favs"
	cmdHelp      = "help"
)

var usage = []struct{ name, text string }{
	{cmdList, "list"},
	{cmdShow, "show PRODUCT_ID"},
	{cmdFilter, "filter [reset] [min=N] [max=N] [category=ID] [sub=ID] [sort=KEY]"},
	{cmdPage, "page N"},
	{cmdLayout, "layout 2|3|4"},
	{cmdAdd, "add PRODUCT_ID [QTY] [name=value...]"},
	{cmdRemove, "remove LINE_ID"},
	{cmdQty, "qty LINE_ID N"},
	{cmdCart, "cart"},
	{cmdClearCart, "clear-cart"},
	{cmdFav, "fav PRODUCT_ID"},
	{cmdFavs, "favs"},
	{cmdClearFavs, "clear-favs"},
	{cmdHelp, "help"},
}

func usageOf(name string) string {
	for _, u := range usage {
		if u.name == name {
			return u.text
		}
	}
	return ""
}

type command interface {
	name() string
}

type (
	simpleCmd struct{ cmd string }

	filterCmd struct {
		reset bool
		edits []filterEdit
	}

	applyFilterCmd struct{ filter domain.Filter }

	pageCmd   struct{ page int }
	layoutCmd struct{ layout domain.Layout }

	addCmd struct {
		productID  string
		qty        int
		selections map[string]string
	}

	removeCmd struct{ lineItemID string }

	qtyCmd struct {
		lineItemID string
		qty        int
	}

	favCmd struct{ productID string }

	showCmd struct{ productID string }

	failedCmd struct {
		cmd string
		err error
	}
)

func (c simpleCmd) name() string { return c.cmd }
func (filterCmd) name() string { return cmdFilter }
func (applyFilterCmd) name() string { return cmdFilter }
func (pageCmd) name() string { return cmdPage }
func (layoutCmd) name() string { return cmdLayout }
func (addCmd) name() string { return cmdAdd }
func (removeCmd) name() string { return cmdRemove }
func (qtyCmd) name() string { return cmdQty }
func (favCmd) name() string { return cmdFav }
func (showCmd) name() string { return cmdShow }
func (c failedCmd) name() string { return c.cmd }

type filterEdit struct {
	key   string
	price *decimal.Decimal
	text  string
}

// apply returns f with the edits of c applied in order. Changing the
// category drops the subcategory unless the same command sets one.
func (c filterCmd) apply(f domain.Filter) domain.Filter {
	if c.reset {
		f = domain.Filter{}
	}
	for _, e := range c.edits {
		switch e.key {
		case "min":
			f.MinPrice = e.price
		case "max":
			f.MaxPrice = e.price
		case "category":
			if f.Category != e.text {
				f.SubCategory = ""
			}
			f.Category = e.text
		case "sub":
			f.SubCategory = e.text
		case "sort":
			f.Sort = domain.SortKey(e.text)
		}
	}
	return f
}

// parse reads one input line. Blank lines yield a nil command.
func parse(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	name, args := fields[0], fields[1:]

	switch name {
	case cmdList, cmdCart, cmdClearCart, cmdFavs, cmdClearFavs, cmdHelp:
		if len(args) != 0 {
			return nil, usageErr(name)
		}
		return simpleCmd{name}, nil
	case cmdFilter:
		return parseFilter(args)
	case cmdPage:
		if len(args) != 1 {
			return nil, usageErr(name)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, usageErr(name)
		}
		return pageCmd{n}, nil
	case cmdLayout:
		if len(args) != 1 {
			return nil, usageErr(name)
		}
		l, err := domain.ParseLayout(args[0])
		if err != nil {
			return nil, err
		}
		return layoutCmd{l}, nil
	case cmdAdd:
		return parseAdd(args)
	case cmdRemove:
		if len(args) != 1 {
			return nil, usageErr(name)
		}
		return removeCmd{args[0]}, nil
	case cmdQty:
		if len(args) != 2 {
			return nil, usageErr(name)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, usageErr(name)
		}
		return qtyCmd{args[0], n}, nil
	case cmdFav:
		if len(args) != 1 {
			return nil, usageErr(name)
		}
		return favCmd{args[0]}, nil
	case cmdShow:
		if len(args) != 1 {
			return nil, usageErr(name)
		}
		return showCmd{args[0]}, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownCommand)
}

func parseFilter(args []string) (command, error) {
	if len(args) == 0 {
		return nil, usageErr(cmdFilter)
	}

	var c filterCmd
	for _, arg := range args {
		if arg == "reset" {
			c.reset = true
			continue
		}

		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, usageErr(cmdFilter)
		}

		e := filterEdit{key: key}
		switch key {
		case "min", "max":
			if value != "" {
				d, err := decimal.NewFromString(value)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", key, usageErr(cmdFilter))
				}
				e.price = &d
			}
		case "category", "sub", "sort":
			e.text = value
		default:
			return nil, fmt.Errorf("%q: %w", key, usageErr(cmdFilter))
		}
		c.edits = append(c.edits, e)
	}
	return c, nil
}

func parseAdd(args []string) (command, error) {
	if len(args) == 0 {
		return nil, usageErr(cmdAdd)
	}

	c := addCmd{productID: args[0], qty: 1}
	args = args[1:]

	if len(args) != 0 && !strings.Contains(args[0], "=") {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, usageErr(cmdAdd)
		}
		c.qty = n
		args = args[1:]
	}

	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, usageErr(cmdAdd)
		}
		if c.selections == nil {
			c.selections = make(map[string]string)
		}
		c.selections[k] = v
	}
	return c, nil
}

func usageErr(name string) error {
	return fmt.Errorf("%w: usage: %s", ErrUsage, usageOf(name))
}
