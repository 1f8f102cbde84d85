package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	timersCmd := &cobra.Command{Use: "timers", Short: "Timer operations"}

	// create
	var duration int64
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if duration <= 0 {
				return fmt.Errorf("--duration must be a positive number of seconds")
			}
			resp, err := newClient().R().
				SetBody(map[string]interface{}{"duration": duration}).
				Post("/timers")
			return printResponse(resp, err)
		},
	}
	createCmd.Flags().Int64VarP(&duration, "duration", "d", 0, "Countdown length in seconds (required)")
	_ = createCmd.MarkFlagRequired("duration")
	timersCmd.AddCommand(createCmd)

	// list
	timersCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all timers, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Get("/timers")
			return printResponse(resp, err)
		},
	})

	// current
	timersCmd.AddCommand(&cobra.Command{
		Use:   "current",
		Short: "Show the most recently created timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Get("/timers/current")
			return printResponse(resp, err)
		},
	})

	// get
	timersCmd.AddCommand(&cobra.Command{
		Use:   "get TIMER_ID",
		Short: "Get a timer by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Get("/timers/" + args[0])
			return printResponse(resp, err)
		},
	})

	// start / pause / reset
	for _, action := range []string{"start", "pause", "reset"} {
		action := action
		timersCmd.AddCommand(&cobra.Command{
			Use:   action + " TIMER_ID",
			Short: capitalized(action) + " a timer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := newClient().R().Put("/timers/" + args[0] + "/" + action)
				return printResponse(resp, err)
			},
		})
	}

	// duration
	timersCmd.AddCommand(&cobra.Command{
		Use:   "duration TIMER_ID SECONDS",
		Short: "Change a timer's duration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			secs, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("SECONDS must be an integer: %w", err)
			}
			resp, err := newClient().R().
				SetBody(map[string]interface{}{"duration": secs}).
				Put("/timers/" + args[0] + "/duration")
			return printResponse(resp, err)
		},
	})

	// delete
	timersCmd.AddCommand(&cobra.Command{
		Use:   "delete TIMER_ID",
		Short: "Delete a timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Delete("/timers/" + args[0])
			return printResponse(resp, err)
		},
	})

	rootCmd.AddCommand(timersCmd)
}

func capitalized(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
