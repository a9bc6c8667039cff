package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"crpt-client/crpt/domain"
	"crpt-client/crpt/infra"

	"github.com/spf13/cobra"
)

// sampleDocument monta o documento de demonstração a partir de strings
// brutas, passando pelos construtores que validam as datas.
func sampleDocument() (domain.Document, error) {
	product, err := domain.NewProduct(domain.ProductInput{
		CertificateDocument:       "string",
		CertificateDocumentDate:   "2020-01-23",
		CertificateDocumentNumber: "string",
		OwnerInn:                  "string",
		ProducerInn:               "string",
		ProductionDate:            "2020-01-23",
		TnvedCode:                 "string",
		UitCode:                   "string",
		UituCode:                  "string",
	})
	if err != nil {
		return domain.Document{}, err
	}

	return domain.NewDocument(domain.DocumentInput{
		Description:    domain.NewParticipant("string"),
		DocID:          "string",
		DocStatus:      "string",
		DocType:        domain.DocTypeLPIntroduceGoods,
		ImportRequest:  true,
		OwnerInn:       "string",
		ParticipantInn: "string",
		ProducerInn:    "string",
		ProductionDate: "2020-01-23",
		ProductionType: "string",
		Products:       []domain.Product{product},
		RegDate:        "2020-01-23",
		RegNumber:      "string",
	})
}

func newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print the demo document as wire JSON",
		Args:  cobra.NoArgs,
		// sample não precisa de configuração
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := sampleDocument()
			if err != nil {
				return err
			}
			b, err := infra.NewJSONCodec().Encode(doc)
			if err != nil {
				return err
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, b, "", "  "); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
			return nil
		},
	}
}
