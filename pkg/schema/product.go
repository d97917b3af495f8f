package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

// ProductSchemaTextV1 describes a catalog product record. Prices are
// decimal strings so that no precision is lost.
const ProductSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "product",
	"fields": [
		{"name": "product_id", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "description", "type": "string", "default": ""},
		{"name": "price", "type": "string"},
		{"name": "original_price", "type": ["null", "string"], "default": null},
		{"name": "category", "type": "string"},
		{"name": "sub_category", "type": "string", "default": ""},
		{"name": "images", "type": {"type": "array", "items": "string"}},
		{"name": "tags", "type": {"type": "array", "items": "string"}},
		{"name": "stock", "type": "long"},
		{"name": "rating", "type": "double"},
		{"name": "reviews", "type": "long"},
		{"name": "specifications", "type": {
			"type": "map",
			"values": {"type": "array", "items": "string"}
		}},
		{"name": "created_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
		{"name": "updated_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type ProductV1 struct {
	ProductID      string              `avro:"product_id"`
	Name           string              `avro:"name"`
	Description    string              `avro:"description"`
	Price          string              `avro:"price"`
	OriginalPrice  *string             `avro:"original_price"`
	Category       string              `avro:"category"`
	SubCategory    string              `avro:"sub_category"`
	Images         []string            `avro:"images"`
	Tags           []string            `avro:"tags"`
	Stock          int64               `avro:"stock"`
	Rating         float64             `avro:"rating"`
	Reviews        int64               `avro:"reviews"`
	Specifications map[string][]string `avro:"specifications"`
	CreatedAt      time.Time           `avro:"created_at"`
	UpdatedAt      time.Time           `avro:"updated_at"`
}

// ProductV1Avro returns the parsed product schema. It panics on a
// malformed schema text.
func ProductV1Avro() avro.Schema {
	return avro.MustParse(ProductSchemaTextV1)
}
