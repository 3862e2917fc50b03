package main

import "github.com/nfrund/authpanel/cmd/authpanel-cli/cmd"

func main() {
	cmd.Execute()
}
