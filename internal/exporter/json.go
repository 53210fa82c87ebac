package exporter

import (
	"encoding/json"
	"fmt"
	"io"

	"boxscorecli/internal/dataprocessing"
)

// WriteJSON writes the table as {"headers":[...],"rows":[...]}. Undefined
// numbers are written as null.
func WriteJSON(w io.Writer, table *dataprocessing.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dataprocessing.Features(table)); err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	return nil
}
