// Package main provides the introscore CLI.
//
// introscore scores self-introduction transcripts against the rubric, either
// through a running scored server or in-process.
//
// Usage:
//
//	introscore score intro.txt
//	introscore score --sample --format markdown
//	introscore rubric export --format csv
package main

func main() {
	Execute()
}
