package main

import "github.com/oshokin/update-bundler/cmd/update-bundler/cmd"

func main() {
	cmd.Execute()
}
