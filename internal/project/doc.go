// Package project hoists scalar header values into table columns.
//
// A projected column repeats one resolved header value once per row. Columns
// are collected in a Table and exported as Apache Arrow arrays and records.
package project
