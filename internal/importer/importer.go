package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type CartDispatcher interface {
	Dispatch(ctx context.Context, scope string, a cartsvc.Action) (domain.Cart, error)
}

// CSVImporter reads cart line exports (id,title,price,thumbnail,quantity)
// and adds every row to the cart of one scope.
type CSVImporter struct {
	reader *csv.Reader
	carts  CartDispatcher
	scope  string
}

func NewCSVImporter(r io.Reader, carts CartDispatcher, scope string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader: csvr,
		carts:  carts,
		scope:  scope,
	}
}

// Run parses CSV rows and adds each as an ADD_TO_CART action. Repeated
// product ids merge into one line, as they would in the storefront.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["id"]; !ok {
		return 0, errors.New("missing id column")
	}

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		item, qty, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if item == nil {
			continue
		}
		if _, err := i.carts.Dispatch(ctx, i.scope, cartsvc.AddToCart(*item, qty)); err != nil {
			return imported, fmt.Errorf("add product %d: %w", item.ProductID, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

// parseRow returns a nil item for blank rows.
func parseRow(record []string, index map[string]int) (*domain.LineItem, int, error) {
	idStr := pick(record, index, "id")
	if idStr == "" {
		return nil, 0, nil
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return nil, 0, fmt.Errorf("invalid id %q", idStr)
	}
	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil || price.IsNegative() {
		return nil, 0, fmt.Errorf("invalid price for product %d", id)
	}
	qty := 1
	if q := pick(record, index, "quantity"); q != "" {
		qty, err = strconv.Atoi(q)
		if err != nil || qty < 1 {
			return nil, 0, fmt.Errorf("invalid quantity %q for product %d", q, id)
		}
	}

	return &domain.LineItem{
		ProductID: id,
		Title:     pick(record, index, "title"),
		Price:     price,
		Thumbnail: pick(record, index, "thumbnail"),
	}, qty, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
