package catalogfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hamba/avro/v2"
	"github.com/hamba/avro/v2/ocf"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
)

// ErrSchemaMismatch is returned when a file was written with a schema
// other than the current product schema.
var ErrSchemaMismatch = errors.New("catalog file schema mismatch")

var (
	_ port.CatalogSource = (*Repository)(nil)
	_ port.CatalogSink   = (*Repository)(nil)
)

// A Repository keeps a catalog snapshot as an Avro object container
// file.
type Repository struct {
	fs   afero.Fs
	path string
}

func NewRepository(fs afero.Fs, path string) Repository {
	return Repository{fs, path}
}

func (r Repository) WriteProducts(
	ctx context.Context, ps []domain.Product,
) (writeErr error) {
	const op = "Repository.WriteProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	f, err := r.fs.Create(r.path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := f.Close(); err != nil && writeErr == nil {
			writeErr = fmt.Errorf("%s: %w", op, err)
		}
	}()

	enc, err := ocf.NewEncoder(
		schema.ProductSchemaTextV1, f, ocf.WithCodec(ocf.Deflate),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, p := range ps {
		if err := enc.Encode(productToSchemaV1(p)); err != nil {
			return fmt.Errorf("%s: %s: %w", op, p.ProductID, err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("catalog written", "path", r.path, "nProducts", len(ps))
	return nil
}

func (r Repository) ReadProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Repository.ReadProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f, err := r.fs.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Error("failed to close file", "err", err)
		}
	}()

	dec, err := ocf.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := checkSchema(dec.Metadata()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var ps []domain.Product
	for dec.HasNext() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		var v schema.ProductV1
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		p, err := productFromSchemaV1(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := dec.Error(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("catalog read", "path", r.path, "nProducts", len(ps))
	return ps, nil
}

func checkSchema(meta map[string][]byte) error {
	fileSchema, err := avro.Parse(string(meta["avro.schema"]))
	if err != nil {
		return err
	}
	if fileSchema.Fingerprint() != schema.ProductV1Avro().Fingerprint() {
		return ErrSchemaMismatch
	}
	return nil
}

func productToSchemaV1(v domain.Product) (s schema.ProductV1) {
	s.ProductID = v.ProductID
	s.Name = v.Name
	s.Description = v.Description
	s.Price = v.Price.String()
	if v.OriginalPrice != nil {
		orig := v.OriginalPrice.String()
		s.OriginalPrice = &orig
	}
	s.Category = v.Category
	s.SubCategory = v.SubCategory
	s.Images = nonNil(v.Images)
	s.Tags = nonNil(v.Tags)
	s.Stock = int64(v.Stock)
	s.Rating = v.Rating
	s.Reviews = int64(v.Reviews)
	s.Specifications = v.Specifications
	if s.Specifications == nil {
		s.Specifications = map[string][]string{}
	}
	s.CreatedAt = v.CreatedAt
	s.UpdatedAt = v.UpdatedAt
	return
}

func productFromSchemaV1(s schema.ProductV1) (domain.Product, error) {
	price, err := decimal.NewFromString(s.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: price: %w", s.ProductID, err)
	}

	v := domain.Product{
		ProductID:      s.ProductID,
		Name:           s.Name,
		Description:    s.Description,
		Price:          price,
		Category:       s.Category,
		SubCategory:    s.SubCategory,
		Images:         s.Images,
		Tags:           s.Tags,
		Stock:          int(s.Stock),
		Rating:         s.Rating,
		Reviews:        int(s.Reviews),
		Specifications: s.Specifications,
		CreatedAt:      s.CreatedAt.UTC(),
		UpdatedAt:      s.UpdatedAt.UTC(),
	}

	if s.OriginalPrice != nil {
		orig, err := decimal.NewFromString(*s.OriginalPrice)
		if err != nil {
			return domain.Product{}, fmt.Errorf(
				"%s: original price: %w", s.ProductID, err,
			)
		}
		v.OriginalPrice = &orig
	}
	return v, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
