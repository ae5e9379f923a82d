// Package main is the entry point for the lolmetrics CLI, which scores
// League of Legends games and recommends builds.
package main

import "github.com/pable/go-lol-metrics/cmd"

func main() {
	cmd.Execute()
}
