package main

import "github.com/meysamhadeli/codesense/cmd"

func main() {
	cmd.Execute()
}
