package lockstep

// Package lockstep keeps client-side request/response validation in lockstep
// with a server-declared API contract. It provides:
//
// - A stable error model via Issues (JSON Pointer, code, message)
// - A structured validator model under schema/ compiled from OpenAPI contracts
// - Generation of typed declarations, runtime validators and an endpoint table
// - An advisory auditor reporting drift between contract and generated client
//
// Design policy:
// - Keep only public APIs in the root package; put renderers under internal/.
// - Place the contract loader under contract/, the compiler under openapi/,
//   model transforms under reinforce/ and overrides/, and the CLI under
//   cmd/lockstep.
// - Library packages return errors and Diag warnings; only the CLI logs.
//
// Typical usage:
//
//	doc, diag, err := contract.LoadFile("openapi.json")
//	set, err := openapi.Compile(doc, openapi.Options{})
//	reinforce.Apply(set)
//	err = catalog.Apply(set)
//	artifacts, err := gen.Render(set)
