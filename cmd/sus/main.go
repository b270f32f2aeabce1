/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/sus/cmd/sus/cmd"

func main() {
	cmd.Execute()
}
