package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

func newClient() *resty.Client {
	return resty.New().
		SetBaseURL(apiFlag).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)
}

// printResponse echoes the raw envelope to stdout and turns HTTP failures
// into a non-zero exit.
func printResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(os.Stdout, string(resp.Body()))
	if resp.IsError() {
		return fmt.Errorf("http %d", resp.StatusCode())
	}
	return nil
}
