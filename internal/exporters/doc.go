// Package exporters provides implementations of the Exporter interface
// for the document formats the curated archive can be rendered to.
//
//   - rows: JSON array of spreadsheet-ready rows
//   - xlsx: the same rows as an Excel workbook
//   - markdown: a printable study sheet with YAML front matter
//
// Exporters are registered with the ExportService at startup.
package exporters
