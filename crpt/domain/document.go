package domain

// DocType identifica o tipo do documento no sistema de rastreabilidade.
type DocType string

const DocTypeLPIntroduceGoods DocType = "LP_INTRODUCE_GOODS"

func (t DocType) Valid() bool { return t == DocTypeLPIntroduceGoods }

// Participant identifica a pessoa jurídica que envia o documento.
type Participant struct {
	ParticipantInn string `json:"participantInn" validate:"required"`
}

// Document é um pedido de introdução de mercadorias em circulação.
//
// A ordem dos campos é a ordem do JSON de wire; os nomes das tags fazem parte
// do contrato externo e não podem mudar.
type Document struct {
	Description    Participant `json:"description"`
	DocID          string      `json:"doc_id"`
	DocStatus      string      `json:"doc_status"`
	DocType        DocType     `json:"doc_type" validate:"required,oneof=LP_INTRODUCE_GOODS"`
	ImportRequest  bool        `json:"importRequest"`
	OwnerInn       string      `json:"owner_inn"`
	ParticipantInn string      `json:"participant_inn"`
	ProducerInn    string      `json:"producer_inn"`
	ProductionDate Date        `json:"production_date" validate:"required"`
	ProductionType string      `json:"production_type"`
	Products       []Product   `json:"products" validate:"dive"`
	RegDate        Date        `json:"reg_date" validate:"required"`
	RegNumber      string      `json:"reg_number"`
}

// Product é um item do documento.
type Product struct {
	CertificateDocument       string `json:"certificate_document"`
	CertificateDocumentDate   Date   `json:"certificate_document_date" validate:"required"`
	CertificateDocumentNumber string `json:"certificate_document_number"`
	OwnerInn                  string `json:"owner_inn"`
	ProducerInn               string `json:"producer_inn"`
	ProductionDate            Date   `json:"production_date" validate:"required"`
	TnvedCode                 string `json:"tnved_code"`
	UitCode                   string `json:"uit_code"`
	UituCode                  string `json:"uitu_code"`
}
