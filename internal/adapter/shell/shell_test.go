package shell

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	Cmd   string          `json:"cmd"`
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func testService(t *testing.T, opts ...service.Option) service.Service {
	t.Helper()
	at := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	mk := func(id, cat, sub string, price int64, age int) domain.Product {
		return domain.Product{
			ProductID:   id,
			Name:        "product " + id,
			Price:       decimal.NewFromInt(price),
			Category:    cat,
			SubCategory: sub,
			Images:      []string{id + ".jpg"},
			Stock:       10,
			Rating:      4,
			CreatedAt:   at.Add(time.Duration(age) * time.Hour),
		}
	}
	s1 := mk("s1", "shoes", "running", 120, 1)
	s1.Description = "light running shoe"
	s1.Specifications = map[string][]string{"size": {"41", "42"}}

	store, err := catalog.NewStore([]domain.Product{
		s1,
		mk("s2", "shoes", "casual", 80, 2),
		mk("b1", "bags", "backpack", 60, 3),
		mk("b2", "bags", "handbag", 150, 4),
	})
	require.NoError(t, err)
	return service.New(store, domain.PageSizes{Two: 2, Three: 3, Four: 4}, opts...)
}

func serve(t *testing.T, d time.Duration, lines ...string) []result {
	t.Helper()
	return serveWith(t, testService(t), d, lines...)
}

func serveWith(
	t *testing.T, svc service.Service, d time.Duration, lines ...string,
) []result {
	t.Helper()
	var out strings.Builder
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")

	sh := New(svc, in, &out, d)
	require.NoError(t, sh.Serve(t.Context()))

	var rs []result
	dec := json.NewDecoder(strings.NewReader(out.String()))
	for dec.More() {
		var r result
		require.NoError(t, dec.Decode(&r))
		rs = append(rs, r)
	}
	return rs
}

func decodeData[T any](t *testing.T, r result) T {
	t.Helper()
	require.True(t, r.OK, r.Error)
	var v T
	require.NoError(t, json.Unmarshal(r.Data, &v))
	return v
}

func pageIDs(p Page) []string {
	out := make([]string, len(p.Items))
	for i, item := range p.Items {
		out[i] = item.ProductID
	}
	return out
}

func TestServeBrowse(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		rs := serve(t, 0, "list")
		require.Len(t, rs, 1)
		assert.Equal(t, "list", rs[0].Cmd)

		p := decodeData[Page](t, rs[0])
		assert.Equal(t, []string{"s1", "s2", "b1"}, pageIDs(p))
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 3, p.PageSize)
		assert.Equal(t, 2, p.TotalPages)
		assert.Equal(t, 4, p.Total)
		assert.Equal(t, "3", p.Layout)
		assert.Equal(t, "s1.jpg", p.Items[0].Image)
	})

	t.Run("FilterAndSort", func(t *testing.T) {
		rs := serve(t, 0, "filter category=bags sort=price-desc")
		require.Len(t, rs, 1)
		assert.Equal(t, "filter", rs[0].Cmd)

		p := decodeData[Page](t, rs[0])
		assert.Equal(t, []string{"b2", "b1"}, pageIDs(p))
		assert.Equal(t, "bags", p.Filter.Category)
		assert.Equal(t, "price-desc", p.Filter.Sort)
	})

	t.Run("FilterEditsAccumulate", func(t *testing.T) {
		rs := serve(t, 0,
			"filter category=shoes",
			"filter sort=price-asc",
			"filter reset max=100",
		)
		require.Len(t, rs, 3)
		assert.Equal(t, []string{"s2", "s1"}, pageIDs(decodeData[Page](t, rs[1])))

		p := decodeData[Page](t, rs[2])
		assert.Equal(t, []string{"s2", "b1"}, pageIDs(p))
		assert.Empty(t, p.Filter.Category)
		require.NotNil(t, p.Filter.MaxPrice)
		assert.Equal(t, "100", p.Filter.MaxPrice.String())
	})

	t.Run("InvalidFilterKeepsPrevious", func(t *testing.T) {
		rs := serve(t, 0,
			"filter category=bags",
			"filter min=200 max=100",
			"list",
		)
		require.Len(t, rs, 3)
		assert.False(t, rs[1].OK)
		assert.Contains(t, rs[1].Error, domain.ErrInvalidPriceRange.Error())

		p := decodeData[Page](t, rs[2])
		assert.Equal(t, []string{"b1", "b2"}, pageIDs(p))
		assert.Nil(t, p.Filter.MinPrice)
	})

	t.Run("LayoutAndPage", func(t *testing.T) {
		rs := serve(t, 0, "page 2", "layout 2", "page 2", "page 9")
		require.Len(t, rs, 4)

		p := decodeData[Page](t, rs[0])
		assert.Equal(t, []string{"b2"}, pageIDs(p))

		p = decodeData[Page](t, rs[1])
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 2, p.PageSize)
		assert.Equal(t, "2", p.Layout)

		p = decodeData[Page](t, rs[2])
		assert.Equal(t, []string{"b1", "b2"}, pageIDs(p))

		p = decodeData[Page](t, rs[3])
		assert.Empty(t, p.Items)
		assert.Equal(t, 2, p.TotalPages)
	})
}

func sequentialIDs() service.Option {
	n := 0
	return service.LineItemIDsOpt(func() string {
		n++
		return "li-" + strconv.Itoa(n)
	})
}

func TestServeCart(t *testing.T) {
	t.Parallel()

	rs := serveWith(t, testService(t, sequentialIDs()), 0,
		"add s1 2 size=42",
		"add s1 size=42",
		"add b1",
		"qty li-1 5",
		"remove li-2",
		"add nope",
		"add s1 0",
		"cart",
		"add s1 size=43",
		"add s1",
		"add s1 6 size=41",
		"qty li-1 11",
		"clear-cart",
	)
	require.Len(t, rs, 13)

	c := decodeData[Cart](t, rs[1])
	require.Len(t, c.Items, 1)
	assert.Equal(t, "li-1", c.Items[0].ID)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, map[string]string{"size": "42"}, c.Items[0].Selections)
	assert.Equal(t, "360", c.Total.String())

	c = decodeData[Cart](t, rs[3])
	assert.Equal(t, 6, c.Count)
	assert.Equal(t, "660", c.Total.String())
	assert.Equal(t, "600", c.Items[0].Subtotal.String())

	c = decodeData[Cart](t, rs[4])
	assert.Equal(t, 5, c.Count)

	assert.False(t, rs[5].OK)
	assert.Contains(t, rs[5].Error, domain.ErrProductNotFound.Error())
	assert.False(t, rs[6].OK)
	assert.Contains(t, rs[6].Error, domain.ErrInvalidQuantity.Error())

	c = decodeData[Cart](t, rs[7])
	assert.Equal(t, 5, c.Count)
	assert.Equal(t, "600", c.Total.String())

	for _, r := range rs[8:10] {
		assert.False(t, r.OK)
		assert.Contains(t, r.Error, domain.ErrInvalidSelection.Error())
	}
	for _, r := range rs[10:12] {
		assert.False(t, r.OK)
		assert.Contains(t, r.Error, domain.ErrInsufficientStock.Error())
	}

	c = decodeData[Cart](t, rs[12])
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.Count)
	assert.Equal(t, "0", c.Total.String())
}

func TestServeShow(t *testing.T) {
	t.Parallel()

	rs := serve(t, 0, "fav s1", "add s1 2 size=41", "show s1", "show b1", "show nope", "show")
	require.Len(t, rs, 6)

	d := decodeData[ProductDetail](t, rs[2])
	assert.Equal(t, "show", rs[2].Cmd)
	assert.Equal(t, "s1", d.ProductID)
	assert.Equal(t, "light running shoe", d.Description)
	assert.Equal(t, []string{"s1.jpg"}, d.Images)
	assert.Equal(t, map[string][]string{"size": {"41", "42"}}, d.Specifications)
	assert.True(t, d.Favorite)
	assert.Equal(t, 2, d.InCart)

	d = decodeData[ProductDetail](t, rs[3])
	assert.False(t, d.Favorite)
	assert.Zero(t, d.InCart)
	assert.Empty(t, d.Specifications)

	assert.False(t, rs[4].OK)
	assert.Contains(t, rs[4].Error, domain.ErrProductNotFound.Error())
	assert.False(t, rs[5].OK)
	assert.Contains(t, rs[5].Error, "usage: show PRODUCT_ID")
}

func TestServeFavorites(t *testing.T) {
	rs := serve(t, 0, "fav s1", "fav b2", "fav s1", "favs", "fav nope", "clear-favs")
	require.Len(t, rs, 6)

	ft := decodeData[FavoriteToggle](t, rs[0])
	assert.True(t, ft.Favorite)
	assert.Equal(t, 1, ft.Count)

	ft = decodeData[FavoriteToggle](t, rs[2])
	assert.False(t, ft.Favorite)
	assert.Equal(t, 1, ft.Count)

	f := decodeData[Favorites](t, rs[3])
	require.Len(t, f.Items, 1)
	assert.Equal(t, "b2", f.Items[0].ProductID)

	assert.False(t, rs[4].OK)

	f = decodeData[Favorites](t, rs[5])
	assert.Empty(t, f.Items)
	assert.Equal(t, 0, f.Count)
}

func TestServeBadInput(t *testing.T) {
	rs := serve(t, 0, "", "   ", "bogus 1", "page x", "layout 5", "help")
	require.Len(t, rs, 4)

	assert.Equal(t, "bogus", rs[0].Cmd)
	assert.Contains(t, rs[0].Error, ErrUnknownCommand.Error())
	assert.Equal(t, "page", rs[1].Cmd)
	assert.Contains(t, rs[1].Error, "usage: page N")
	assert.Contains(t, rs[2].Error, domain.ErrInvalidLayout.Error())

	lines := decodeData[[]string](t, rs[3])
	assert.Len(t, lines, len(usage))
}

func TestServeDebounced(t *testing.T) {
	t.Run("BurstCollapses", func(t *testing.T) {
		rs := serve(t, time.Hour,
			"filter category=bags",
			"filter category=shoes",
			"filter sort=price-asc",
			"list",
		)
		require.Len(t, rs, 2)

		assert.Equal(t, "list", rs[0].Cmd)
		assert.Equal(t, 4, decodeData[Page](t, rs[0]).Total)

		assert.Equal(t, "filter", rs[1].Cmd)
		p := decodeData[Page](t, rs[1])
		assert.Equal(t, []string{"s2", "s1"}, pageIDs(p))
	})

	t.Run("AppliedAfterQuietPeriod", func(t *testing.T) {
		inR, inW := io.Pipe()
		outR, outW := io.Pipe()

		sh := New(testService(t), inR, outW, 10*time.Millisecond)
		done := make(chan error, 1)
		go func() {
			done <- sh.Serve(t.Context())
			outW.Close()
		}()

		out := bufio.NewScanner(outR)
		roundTrip := func(line string) result {
			_, err := io.WriteString(inW, line+"\n")
			require.NoError(t, err)
			require.True(t, out.Scan())
			var r result
			require.NoError(t, json.Unmarshal(out.Bytes(), &r))
			return r
		}

		r := roundTrip("filter category=bags")
		assert.Equal(t, "filter", r.Cmd)
		assert.Equal(t, 2, decodeData[Page](t, r).Total)

		r = roundTrip("list")
		assert.Equal(t, "bags", decodeData[Page](t, r).Filter.Category)

		require.NoError(t, inW.Close())
		require.NoError(t, <-done)
	})
}

func TestServeCanceled(t *testing.T) {
	inR, inW := io.Pipe()
	t.Cleanup(func() { inW.Close() })

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	var out strings.Builder
	err := New(testService(t), inR, &out, 0).Serve(ctx)
	require.NoError(t, err)
	assert.Empty(t, out.String())
}
