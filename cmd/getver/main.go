// Command getver prints the version of a Go module as the running build records it.
package main

import "github.com/oshokin/getver/cmd/getver/cmd"

func main() {
	cmd.Execute()
}
