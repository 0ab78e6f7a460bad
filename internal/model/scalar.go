package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"reflect"
)

// Scalar is a free-form display value such as cook time or serving count.
// It decodes from either a JSON string or a JSON number and is stored as text.
type Scalar string

// NewScalar returns a pointer to s, handy for optional fields
func NewScalar(s string) *Scalar {
	v := Scalar(s)
	return &v
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(*s)}
	}
	*s = Scalar(n.String())
	return nil
}

// Value implements the driver.Valuer interface
func (s Scalar) Value() (driver.Value, error) {
	return string(s), nil
}

// Scan implements the sql.Scanner interface
func (s *Scalar) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = ""
	case string:
		*s = Scalar(v)
	case []byte:
		*s = Scalar(v)
	case int64:
		*s = Scalar(fmt.Sprintf("%d", v))
	case float64:
		*s = Scalar(fmt.Sprintf("%g", v))
	default:
		return fmt.Errorf("cannot scan %T into Scalar", value)
	}
	return nil
}
