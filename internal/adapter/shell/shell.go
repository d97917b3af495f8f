// Package shell serves a storefront session over a line oriented text
// stream: one command per input line, one JSON object per response.
package shell

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/debounce"
)

type Shell struct {
	svc      service.Service
	in       io.Reader
	out      io.Writer
	debounce time.Duration
}

// New returns a Shell reading commands from in and writing responses
// to out. Filter edits are applied once d passes without another one;
// d <= 0 applies every edit at once.
func New(
	svc service.Service, in io.Reader, out io.Writer, d time.Duration,
) Shell {
	return Shell{svc: svc, in: in, out: out, debounce: d}
}

// Run serves until the input is exhausted or ctx is done, then calls
// stopFn.
func (sh Shell) Run(ctx context.Context, stopFn context.CancelFunc) {
	const op = "Shell.Run"
	log := slog.With("op", op)

	defer stopFn()
	if err := sh.Serve(ctx); err != nil {
		log.Error("unexpected shell shutdown", "err", err)
		return
	}
	log.Info("input closed")
}

// Serve runs a single session. Session state is owned by the calling
// goroutine; the input is read on a separate one.
func (sh Shell) Serve(ctx context.Context) error {
	const op = "Shell.Serve"

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		cmds    = make(chan command)
		drafts  chan domain.Filter
		filters <-chan domain.Filter
		readErr = make(chan error, 1)
	)
	if sh.debounce > 0 {
		drafts = make(chan domain.Filter)
		filters = debounce.Run(ctx, drafts, sh.debounce)
	}

	go func() {
		readErr <- sh.read(ctx, cmds, drafts)
		if drafts != nil {
			close(drafts)
		}
		close(cmds)
	}()

	enc := json.NewEncoder(sh.out)
	s := service.NewSession()

	for cmds != nil || filters != nil {
		var (
			c  command
			ok bool
		)
		select {
		case <-ctx.Done():
			return nil
		case c, ok = <-cmds:
			if !ok {
				cmds = nil
				continue
			}
		case f, fok := <-filters:
			if !fok {
				filters = nil
				continue
			}
			c = applyFilterCmd{f}
		}

		var resp response
		s, resp = sh.exec(s, c)
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := <-readErr; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// read parses input lines until EOF. It owns the draft filter: filter
// edits are validated against it here and only valid drafts travel on.
func (sh Shell) read(
	ctx context.Context, cmds chan<- command, drafts chan<- domain.Filter,
) error {
	send := func(c command) bool {
		select {
		case cmds <- c:
			return true
		case <-ctx.Done():
			return false
		}
	}

	var draft domain.Filter
	sc := bufio.NewScanner(sh.in)
	for sc.Scan() {
		c, err := parse(sc.Text())
		if err != nil {
			c = failedCmd{cmd: firstField(sc.Text()), err: err}
		}
		if c == nil {
			continue
		}

		if fc, ok := c.(filterCmd); ok {
			next := fc.apply(draft)
			switch err := next.Validate(); {
			case err != nil:
				c = failedCmd{cmd: cmdFilter, err: err}
			case drafts != nil:
				draft = next
				select {
				case drafts <- draft:
				case <-ctx.Done():
					return nil
				}
				continue
			default:
				draft = next
				c = applyFilterCmd{draft}
			}
		}

		if !send(c) {
			return nil
		}
	}
	return sc.Err()
}

func (sh Shell) exec(s service.Session, c command) (service.Session, response) {
	const op = "Shell.exec"
	log := slog.With("op", op, "cmd", c.name())

	var (
		data any
		err  error
	)

	switch c := c.(type) {
	case failedCmd:
		err = c.err
	case simpleCmd:
		switch c.cmd {
		case cmdList:
			data = toPage(sh.svc.Browse(s), s)
		case cmdCart:
			data = toCart(s.Cart)
		case cmdClearCart:
			s = sh.svc.ClearCart(s)
			data = toCart(s.Cart)
		case cmdFavs:
			data = toFavorites(s.Favorites)
		case cmdClearFavs:
			s = sh.svc.ClearFavorites(s)
			data = toFavorites(s.Favorites)
		case cmdHelp:
			lines := make([]string, 0, len(usage))
			for _, u := range usage {
				lines = append(lines, u.text)
			}
			data = lines
		}
	case applyFilterCmd:
		s, err = sh.svc.ApplyFilter(s, c.filter)
		if err == nil {
			data = toPage(sh.svc.Browse(s), s)
		}
	case pageCmd:
		s = sh.svc.SetPage(s, c.page)
		data = toPage(sh.svc.Browse(s), s)
	case layoutCmd:
		s = sh.svc.SetLayout(s, c.layout)
		data = toPage(sh.svc.Browse(s), s)
	case addCmd:
		s, err = sh.svc.AddToCart(s, c.productID, c.qty, c.selections)
		if err == nil {
			data = toCart(s.Cart)
		}
	case removeCmd:
		s = sh.svc.RemoveFromCart(s, c.lineItemID)
		data = toCart(s.Cart)
	case qtyCmd:
		s, err = sh.svc.SetQuantity(s, c.lineItemID, c.qty)
		if err == nil {
			data = toCart(s.Cart)
		}
	case showCmd:
		var p domain.Product
		p, err = sh.svc.Product(c.productID)
		if err == nil {
			data = toProductDetail(p, s)
		}
	case favCmd:
		var fav bool
		s, fav, err = sh.svc.ToggleFavorite(s, c.productID)
		if err == nil {
			data = FavoriteToggle{
				ProductID: c.productID,
				Favorite:  fav,
				Count:     s.Favorites.Count,
			}
		}
	default:
		err = fmt.Errorf("%T: %w", c, ErrUnknownCommand)
	}

	if err != nil {
		if !errors.Is(err, ErrUsage) && !errors.Is(err, ErrUnknownCommand) {
			log.Warn("command failed", "err", err)
		}
		return s, response{Cmd: c.name(), Error: err.Error()}
	}

	log.Debug("command done")
	return s, response{Cmd: c.name(), OK: true, Data: data}
}

func firstField(line string) string {
	if f := strings.Fields(line); len(f) != 0 {
		return f[0]
	}
	return ""
}
