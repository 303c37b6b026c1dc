// Package ai generates study questions and answer explanations from
// document text using the Anthropic Messages API.
//
// The package owns:
//   - prompt construction per question type and difficulty
//   - response parsing and shape validation
//   - retry with exponential backoff on transient API failures
//   - a Redis cache keyed by content hash and generation parameters
package ai
