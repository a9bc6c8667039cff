package domain

// Construtores a partir de strings brutas (datas em yyyy-MM-dd).
// Uma data inválida sempre resulta em *DateFormatError; nunca há data padrão.

func NewParticipant(inn string) Participant {
	return Participant{ParticipantInn: inn}
}

type ProductInput struct {
	CertificateDocument       string
	CertificateDocumentDate   string
	CertificateDocumentNumber string
	OwnerInn                  string
	ProducerInn               string
	ProductionDate            string
	TnvedCode                 string
	UitCode                   string
	UituCode                  string
}

func NewProduct(in ProductInput) (Product, error) {
	certDate, err := parseField("certificate_document_date", in.CertificateDocumentDate)
	if err != nil {
		return Product{}, err
	}
	prodDate, err := parseField("production_date", in.ProductionDate)
	if err != nil {
		return Product{}, err
	}
	return Product{
		CertificateDocument:       in.CertificateDocument,
		CertificateDocumentDate:   certDate,
		CertificateDocumentNumber: in.CertificateDocumentNumber,
		OwnerInn:                  in.OwnerInn,
		ProducerInn:               in.ProducerInn,
		ProductionDate:            prodDate,
		TnvedCode:                 in.TnvedCode,
		UitCode:                   in.UitCode,
		UituCode:                  in.UituCode,
	}, nil
}

type DocumentInput struct {
	Description    Participant
	DocID          string
	DocStatus      string
	DocType        DocType
	ImportRequest  bool
	OwnerInn       string
	ParticipantInn string
	ProducerInn    string
	ProductionDate string
	ProductionType string
	Products       []Product
	RegDate        string
	RegNumber      string
}

func NewDocument(in DocumentInput) (Document, error) {
	prodDate, err := parseField("production_date", in.ProductionDate)
	if err != nil {
		return Document{}, err
	}
	regDate, err := parseField("reg_date", in.RegDate)
	if err != nil {
		return Document{}, err
	}
	docType := in.DocType
	if docType == "" {
		docType = DocTypeLPIntroduceGoods
	}
	return Document{
		Description:    in.Description,
		DocID:          in.DocID,
		DocStatus:      in.DocStatus,
		DocType:        docType,
		ImportRequest:  in.ImportRequest,
		OwnerInn:       in.OwnerInn,
		ParticipantInn: in.ParticipantInn,
		ProducerInn:    in.ProducerInn,
		ProductionDate: prodDate,
		ProductionType: in.ProductionType,
		// cópia: o documento não pode enxergar alterações posteriores no slice do chamador
		Products:  append([]Product(nil), in.Products...),
		RegDate:   regDate,
		RegNumber: in.RegNumber,
	}, nil
}

func parseField(field, value string) (Date, error) {
	d, err := ParseDate(value)
	if err != nil {
		if dfe, ok := err.(*DateFormatError); ok {
			dfe.Field = field
		}
		return Date{}, err
	}
	return d, nil
}
