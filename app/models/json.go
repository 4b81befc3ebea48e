package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// The store keeps items, coordinates and size variants as JSON text
// columns. These types serialise on write and parse on read; the store
// never inspects their internal shape.

// OrderItem is one ordered line item.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Total    int    `json:"total"`
}

// OrderItems is a JSON text column holding the ordered line items.
type OrderItems []OrderItem

func (i OrderItems) Value() (driver.Value, error) {
	if i == nil {
		i = OrderItems{}
	}
	raw, err := json.Marshal(i)
	if err != nil {
		return nil, fmt.Errorf("models: marshal items: %w", err)
	}
	return string(raw), nil
}

func (i *OrderItems) Scan(src interface{}) error {
	raw, err := jsonBytes(src)
	if err != nil || len(raw) == 0 {
		return err
	}
	return json.Unmarshal(raw, i)
}

// JSONMap is a JSON text column holding an arbitrary object, such as the
// geocoordinates attached to an order.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		m = JSONMap{}
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("models: marshal map: %w", err)
	}
	return string(raw), nil
}

func (m *JSONMap) Scan(src interface{}) error {
	raw, err := jsonBytes(src)
	if err != nil || len(raw) == 0 {
		return err
	}
	return json.Unmarshal(raw, m)
}

// RawJSON is a JSON text column stored and returned verbatim.
type RawJSON json.RawMessage

func (r RawJSON) Value() (driver.Value, error) {
	if len(r) == 0 {
		return nil, nil
	}
	return string(r), nil
}

func (r *RawJSON) Scan(src interface{}) error {
	raw, err := jsonBytes(src)
	if err != nil {
		return err
	}
	*r = RawJSON(raw)
	return nil
}

func (r RawJSON) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

func (r *RawJSON) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

func jsonBytes(src interface{}) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("models: cannot scan %T as JSON column", src)
	}
}
