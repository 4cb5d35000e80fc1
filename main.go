package main

import "github.com/jinyoung/classdiag/cmd"

func main() {
	cmd.Execute()
}
