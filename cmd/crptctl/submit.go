package main

import (
	"fmt"
	"os"

	"crpt-client/crpt/domain"
	"crpt-client/crpt/infra"

	"github.com/spf13/cobra"
)

type submitFlags struct {
	file      string
	signature string
}

func newSubmitCmd(a *app) *cobra.Command {
	f := &submitFlags{}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit one document and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(f.file)
			if err != nil {
				return err
			}

			c, closeFn, err := a.newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			res := c.Submit(cmd.Context(), doc, f.signature)
			printResult(cmd, res)
			if !res.OK() {
				return fmt.Errorf("submit failed: %s", res.Kind())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Document JSON file (demo document when empty)")
	cmd.Flags().StringVar(&f.signature, "signature", "signature", "Document signature")
	return cmd
}

// loadDocument lê o JSON de wire de path; vazio usa o documento de demonstração.
func loadDocument(path string) (domain.Document, error) {
	if path == "" {
		return sampleDocument()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read document: %w", err)
	}
	return infra.NewJSONCodec().Decode(data)
}
