// Command getver-server answers version queries over gRPC.
package main

import "github.com/oshokin/getver/cmd/getver-server/cmd"

func main() {
	cmd.Execute()
}
