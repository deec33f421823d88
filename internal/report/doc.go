// Package report renders processed scorecards and team standings.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - MarkdownWriter: Markdown for sharing with the league
//   - JSONWriter / FullJSONWriter: Structured JSON for tool integration
//   - XLSXWriter: An Excel workbook, one sheet per scorecard
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
