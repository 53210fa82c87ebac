// Package exporter writes feature tables as CSV, XLSX or JSON.
//
// CSVWriter wraps encoding/csv and can prefix the file with a UTF-8 BOM so
// Excel opens it with the right encoding. ExcelWriter builds a single-sheet
// workbook with excelize. WriteJSON emits the headers/rows wire form shared
// with the HTTP API.
//
// Numbers are rendered with the shortest representation that round-trips;
// undefined values are empty in CSV, empty cells in XLSX and null in JSON.
//
// Example usage:
//
//	exp := exporter.New(logger)
//	err := exp.WriteFile("out/features.csv", config.FormatCSV, table, exporter.WriteOptions{BOMPrefix: true})
package exporter
