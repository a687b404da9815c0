package main

import "github.com/golly-go/messageplugin"

func main() {
	messageplugin.Run(messageplugin.Options{Name: "messageplugin"})
}
