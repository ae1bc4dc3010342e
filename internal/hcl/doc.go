// Package hcl loads table definition files and translates them into the
// format-agnostic model in the config package. It is the only package that
// knows definitions live in HCL.
package hcl
