// Package main provides hermesctl, a command line client for the hermes bus.
package main

func main() {
	Execute()
}
