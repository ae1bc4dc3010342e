// Package config defines the format-agnostic table model: tables, fields,
// and field types. Concrete loaders, such as the HCL one, translate their
// own schema structs into this model; everything downstream of loading
// (engine, CLI) depends only on this package.
package config
