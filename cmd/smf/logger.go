package main

import "go.uber.org/zap"

var logger = zap.NewNop()

func setupLogging(debug bool) error {
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	return err
}
