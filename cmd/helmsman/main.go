package main

import "github.com/cameronsjo/helmsman/internal/cmd"

func main() {
	cmd.Execute()
}
