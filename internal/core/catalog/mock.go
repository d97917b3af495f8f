package catalog

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultMockSize fills three pages of the three column layout.
const DefaultMockSize = 27

var (
	mockKinds = []struct {
		name        string
		category    string
		subCategory string
	}{
		{"Running Shoes", "shoes", "running"},
		{"Casual Shoes", "shoes", "casual"},
		{"Backpack", "bags", "backpack"},
		{"Handbag", "bags", "handbag"},
		{"T-Shirt", "clothing", "tshirt"},
		{"Jeans", "clothing", "jeans"},
	}
	mockTags   = []string{"new", "hot", "recommended"}
	mockColors = []string{"black", "white", "grey", "blue"}
	mockSizes  = []string{"S", "M", "L", "XL"}
)

// MockProducts generates n products from seed. The same seed and now
// always give the same catalog.
func MockProducts(n int, seed uint64, now time.Time) []domain.Product {
	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	now = now.UTC().Truncate(time.Millisecond)

	ps := make([]domain.Product, 0, n)
	for i := range n {
		kind := mockKinds[i%len(mockKinds)]
		id := strconv.Itoa(i + 1)

		price := decimal.NewFromInt(int64(rnd.IntN(1500) + 200))
		original := price.Add(decimal.NewFromInt(int64(rnd.IntN(800))))
		rating := decimal.NewFromFloat(rnd.Float64()*2 + 3).Round(1).InexactFloat64()
		age := time.Duration(rnd.IntN(30)) * 24 * time.Hour

		ps = append(ps, domain.Product{
			ProductID:     id,
			Name:          fmt.Sprintf("Product %d %s", i+1, kind.name),
			Description:   "Product description",
			Price:         price,
			OriginalPrice: &original,
			Category:      kind.category,
			SubCategory:   kind.subCategory,
			Images:        []string{"https://picsum.photos/400/400?random=" + id},
			Tags:          []string{mockTags[rnd.IntN(len(mockTags))]},
			Stock:         rnd.IntN(100) + 10,
			Rating:        rating,
			Reviews:       rnd.IntN(200) + 1,
			Specifications: map[string][]string{
				"color": pick(rnd, mockColors, 2),
				"size":  pick(rnd, mockSizes, 3),
			},
			CreatedAt: now.Add(-age),
			UpdatedAt: now,
		})
	}
	return ps
}

func pick(rnd *rand.Rand, from []string, k int) []string {
	idx := rnd.Perm(len(from))[:k]
	out := make([]string, k)
	for i, j := range idx {
		out[i] = from[j]
	}
	return out
}
