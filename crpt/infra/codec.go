package infra

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"crpt-client/crpt/domain"

	"github.com/go-playground/validator/v10"
)

// JSONCodec converte domain.Document para o JSON de wire e de volta.
//
// A saída é determinística: ordem dos campos vem da struct e datas saem
// sempre como yyyy-MM-dd.
type JSONCodec struct {
	validate *validator.Validate
}

func NewJSONCodec() *JSONCodec {
	v := validator.New(validator.WithRequiredStructEnabled())
	// erros citam o nome do campo no wire (doc_type, reg_date...)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Date zero conta como ausente para "required".
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(domain.Date); ok {
			return d.String()
		}
		return nil
	}, domain.Date{})

	return &JSONCodec{validate: v}
}

// Encode implementa domain.Encoder. Falha com *domain.EncodingError apenas
// quando falta um campo obrigatório.
func (c *JSONCodec) Encode(doc domain.Document) ([]byte, error) {
	if err := c.validate.Struct(doc); err != nil {
		return nil, &domain.EncodingError{Err: fmt.Errorf("missing required fields: %w", err)}
	}

	// doc é cópia; o slice do chamador não é tocado.
	if doc.Products == nil {
		doc.Products = []domain.Product{}
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, &domain.EncodingError{Err: err}
	}
	return b, nil
}

// Decode lê o JSON de wire. Usado pelo endpoint stub e pelos testes.
func (c *JSONCodec) Decode(data []byte) (domain.Document, error) {
	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Document{}, &domain.EncodingError{Err: fmt.Errorf("decode document: %w", err)}
	}
	return doc, nil
}
