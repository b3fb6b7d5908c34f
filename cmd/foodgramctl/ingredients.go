package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"foodgram-backend/internal/domains/ingredient/model"
	"foodgram-backend/pkg/container"

	"github.com/spf13/cobra"
)

func newLoadIngredientsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "load-ingredients",
		Short: "Bulk import ingredients from a JSON file",
		Long: `Reads [{"name": "...", "measurement_unit": "..."}] and inserts every
ingredient that does not exist yet. Running it twice is harmless.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open %s: %w", file, err)
			}
			defer f.Close()

			items, err := decodeIngredients(f)
			if err != nil {
				return err
			}

			c, err := container.NewContainer()
			if err != nil {
				return err
			}
			defer c.Cleanup()

			inserted, err := c.IngredientService.Import(cmd.Context(), items)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Read %d ingredients, inserted %d\n", len(items), inserted)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the ingredients JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func decodeIngredients(r io.Reader) ([]model.CreateIngredientRequest, error) {
	var items []model.CreateIngredientRequest

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("decode ingredients: %w", err)
	}
	return items, nil
}
