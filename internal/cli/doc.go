// Package cli implements the qk command tree.
//
// Every command parses its positional arguments, runs one or more query
// pipelines inside an observability operation and renders the result as text
// or as a JSON envelope:
//
//	{"status":"ok","data":[1,2,3]}
//	{"status":"error","error":{"code":"INVALID_ARGUMENT","message":"..."}}
package cli
