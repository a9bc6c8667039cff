package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// DateLayout é o formato yyyy-MM-dd usado em todas as datas do wire.
const DateLayout = "2006-01-02"

var (
	errZeroDate  = errors.New("zero date cannot be encoded")
	errYearRange = errors.New("date year must be between 0000 and 9999")
)

// Date é uma data de calendário, sem hora e sem fuso.
//
// O valor zero representa "data ausente".
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate aceita somente yyyy-MM-dd. Em caso de erro retorna *DateFormatError
// sem o nome do campo (quem chama preenche Field).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &DateFormatError{Value: s, Err: err}
	}
	return Date{t: t}, nil
}

func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool    { return d.t.IsZero() }
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return nil, errZeroDate
	}
	// yyyy tem exatamente quatro dígitos
	if y := d.t.Year(); y < 0 || y > 9999 {
		return nil, errYearRange
	}
	b := make([]byte, 0, len(DateLayout)+2)
	b = append(b, '"')
	b = d.t.AppendFormat(b, DateLayout)
	return append(b, '"'), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
