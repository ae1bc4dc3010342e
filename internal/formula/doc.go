// Package formula parses formula source text and evaluates it against field
// values. A formula is a single native expression (hclsyntax); field
// references are bare identifiers, so `Subtotal * TaxRate` reads the fields
// named Subtotal and TaxRate.
//
// The package reports which fields a formula references so the dependency
// graph can be maintained, and evaluates the expression under a closed,
// data-driven function table. There is no dynamic code execution.
package formula
