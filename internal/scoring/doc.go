// Package scoring turns a test definition and a respondent's answers into
// category scores and the report view-model. Everything here is a pure
// function of its inputs and safe to call concurrently.
package scoring
