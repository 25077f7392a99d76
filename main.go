package main

import "github.com/KaramelBytes/personagni/cmd"

func main() {
	cmd.Execute()
}
