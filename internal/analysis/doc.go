// Package analysis holds the optional analysers the scoring engine can use in
// place of its built-in fallbacks: a LanguageTool grammar checker, a VADER
// sentiment analyser and a Gemini embedding similarity scorer.
package analysis
