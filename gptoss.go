// Package gptoss augments prompts for a locally hosted language model with
// two kinds of supplementary context: user-supplied file contents and ranked
// web-search results. It optimizes search queries into variants, scores and
// deduplicates results, renders length-bounded context blocks, merges them
// under a priority policy and streams the model's answer back to the caller.
//
// This package contains domain types, interfaces and pure context-assembly
// logic following Ben Johnson's Standard Package Layout. Implementations live
// in subdirectories named after their primary dependency (e.g., serpapi/,
// ollama/, sqlite/, fs/).
package gptoss
