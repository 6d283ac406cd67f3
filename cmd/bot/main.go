package main

import (
	protocol "github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/protocal"

	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeBot()
	if err != nil {
		logrus.Println(err)
	}
}
