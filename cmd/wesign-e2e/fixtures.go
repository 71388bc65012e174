package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesign-io/wesign-e2e/internal/fixtures"
	"github.com/wesign-io/wesign-e2e/internal/logging"
)

// fixturesCmd materializes the standard fixture set into the fixture dir so
// local runs and CI images don't regenerate them per test.
var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Generate the upload fixtures used by the suite",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.L()
		dir := cfg.FixtureDir

		pdfs := map[string]int{
			"contract-1p.pdf":  1,
			"contract-3p.pdf":  3,
			"agreement-5p.pdf": 5,
		}
		for name, pages := range pdfs {
			path := filepath.Join(dir, name)
			if err := fixtures.SamplePDF(path, "WeSign Test Agreement", pages); err != nil {
				return err
			}
			if err := fixtures.ValidatePDF(path); err != nil {
				return err
			}
			log.Info("wrote pdf fixture", zap.String("path", path), zap.Int("pages", pages))
		}

		sig := filepath.Join(dir, "signature.png")
		if err := fixtures.SignatureImagePNG(sig); err != nil {
			return err
		}
		log.Info("wrote signature image", zap.String("path", sig))

		contacts := filepath.Join(dir, "contacts-import.xlsx")
		if err := fixtures.ContactsXLSX(contacts, []fixtures.Contact{
			{Name: "דנה לוי", Email: "dana.levi@example.com", Phone: "050-1234567"},
			{Name: "יוסי כהן", Email: "yossi.cohen@example.com", Phone: "052-7654321"},
			{Name: "John Smith", Email: "john.smith@example.com", Phone: "054-1112223"},
		}); err != nil {
			return err
		}
		log.Info("wrote contacts import sheet", zap.String("path", contacts))

		batch := filepath.Join(dir, "batch.xml")
		if err := fixtures.BatchXML(batch, []fixtures.BatchDocument{
			{Title: "NDA Batch 1", Recipient: "dana.levi@example.com", Template: "nda"},
			{Title: "NDA Batch 2", Recipient: "yossi.cohen@example.com", Template: "nda"},
		}); err != nil {
			return err
		}
		log.Info("wrote batch xml", zap.String("path", batch))

		fmt.Printf("fixtures ready in %s\n", dir)
		return nil
	},
}
